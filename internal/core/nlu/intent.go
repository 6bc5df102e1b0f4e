package nlu

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent 使用者意圖
type Intent string

const (
	IntentQuit          Intent = "quit"
	IntentHelp          Intent = "help"
	IntentFindRecipe    Intent = "find_recipe"
	IntentRecipeDetails Intent = "get_recipe_details"
	IntentUnknown       Intent = "unknown"
)

// Classification 意圖分類結果
type Classification struct {
	Intent      Intent
	RecipeIndex *int
	RecipeName  string
}

var ordinals = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
}

var (
	leadingNameNoise  = regexp.MustCompile(`^(?:the|a|an|recipe for|recipe|your|that|this)\s+`)
	trailingNameNoise = regexp.MustCompile(`\s+(?:recipe|recipes|please|dish|again)$`)
)

// genericNames 不是食譜名稱的受詞，例如 "how do i make something with chicken"
var genericNames = map[string]bool{
	"something": true, "anything": true, "it": true, "that": true, "this": true,
	"dinner": true, "lunch": true, "breakfast": true, "dessert": true,
	"a meal": true, "a dish": true, "food": true,
}

// Classifier 依規則表順序判斷意圖
type Classifier struct {
	rules []IntentRule
}

// NewClassifier 建立意圖分類器
func NewClassifier(rules []IntentRule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify 回傳第一個命中規則的意圖，皆未命中時為 find_recipe
//
// text 應為前處理後的文字。
func (c *Classifier) Classify(text string) Classification {
	text = strings.Join(strings.Fields(strings.ReplaceAll(text, ",", " ")), " ")
	if text == "" {
		return Classification{Intent: IntentUnknown}
	}

	for _, rule := range c.rules {
		for _, re := range rule.Patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			result, ok := buildClassification(rule.Intent, re, m)
			if ok {
				return result
			}
		}
	}
	return Classification{Intent: IntentFindRecipe}
}

// buildClassification 從命名群組取出編號或名稱，名稱不合理時回傳 false 讓下一條規則比對
func buildClassification(intent Intent, re *regexp.Regexp, m []string) (Classification, bool) {
	result := Classification{Intent: intent}
	for i, name := range re.SubexpNames() {
		if i == 0 || i >= len(m) || m[i] == "" {
			continue
		}
		switch name {
		case "index":
			// 0 或溢位的編號仍視為選擇，交由查詢細節時回報超出範圍
			idx := -1
			if n, err := strconv.Atoi(m[i]); err == nil && n > 0 {
				idx = n - 1
			}
			result.RecipeIndex = &idx
		case "ordinal":
			if n, ok := ordinals[m[i]]; ok {
				idx := n - 1
				result.RecipeIndex = &idx
			}
		case "name":
			name := cleanRecipeName(m[i])
			if !plausibleRecipeName(name) {
				return Classification{}, false
			}
			result.RecipeName = name
		}
	}
	return result, true
}

func cleanRecipeName(s string) string {
	s = strings.TrimSpace(s)
	for {
		trimmed := trailingNameNoise.ReplaceAllString(leadingNameNoise.ReplaceAllString(s, ""), "")
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

func plausibleRecipeName(name string) bool {
	if name == "" || genericNames[name] {
		return false
	}
	for _, w := range []string{" with ", " using ", " without "} {
		if strings.Contains(" "+name+" ", w) {
			return false
		}
	}
	first := strings.Fields(name)[0]
	return !genericNames[first]
}
