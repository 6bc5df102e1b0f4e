// Package nlu turns free-text cooking queries into structured constraints:
// intent, ingredients to include or exclude, dietary preferences, category
// and recipe selectors.
package nlu

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"recipe-bot/internal/core/diet"
	"recipe-bot/internal/pkg/common"
)

// ParsedQuery 查詢解析結果
type ParsedQuery struct {
	Intent             Intent     `json:"intent"`
	IncludeIngredients []string   `json:"include_ingredients"`
	ExcludeIngredients []string   `json:"exclude_ingredients"`
	DietaryPreferences []diet.Tag `json:"dietary_preferences"`
	RecipeCategory     string     `json:"recipe_category,omitempty"`
	RecipeIndex        *int       `json:"recipe_index,omitempty"`
	RecipeName         string     `json:"recipe_name,omitempty"`
}

// HasConstraints 是否有任何可用於搜尋的條件
func (q ParsedQuery) HasConstraints() bool {
	return len(q.IncludeIngredients) > 0 || len(q.DietaryPreferences) > 0 || q.RecipeCategory != ""
}

func emptyQuery(intent Intent) ParsedQuery {
	return ParsedQuery{
		Intent:             intent,
		IncludeIngredients: []string{},
		ExcludeIngredients: []string{},
		DietaryPreferences: []diet.Tag{},
	}
}

// Parser 組合意圖分類、食材抽取、飲食偏好與分類偵測
type Parser struct {
	rules      *Rules
	classifier *Classifier
	extractor  *Extractor
	categories *CategoryExtractor
}

// NewParser 建立解析器，rules 為 nil 時使用預設規則
func NewParser(resolver *Resolver, rules *Rules) *Parser {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Parser{
		rules:      rules,
		classifier: NewClassifier(rules.Intents),
		extractor:  NewExtractor(resolver, rules),
		categories: NewCategoryExtractor(rules),
	}
}

// Parse 解析查詢，不會回傳錯誤；任何內部錯誤都降級為 unknown
func (p *Parser) Parse(text string) (q ParsedQuery) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError("查詢解析失敗",
				zap.String("text", text),
				zap.String("panic", fmt.Sprint(r)),
			)
			q = emptyQuery(IntentUnknown)
		}
	}()

	normalized := Preprocess(text)
	if strings.TrimSpace(normalized) == "" {
		return emptyQuery(IntentUnknown)
	}

	cls := p.classifier.Classify(normalized)
	q = emptyQuery(cls.Intent)

	switch cls.Intent {
	case IntentRecipeDetails:
		q.RecipeIndex = cls.RecipeIndex
		q.RecipeName = cls.RecipeName
	case IntentFindRecipe:
		q.IncludeIngredients, q.ExcludeIngredients = p.extractor.Extract(normalized)
		q.DietaryPreferences = p.DetectDietary(normalized)
		q.RecipeCategory = p.categories.Extract(normalized)
	}

	common.LogDebug("查詢解析完成",
		zap.String("intent", string(q.Intent)),
		zap.Strings("include", q.IncludeIngredients),
		zap.Strings("exclude", q.ExcludeIngredients),
		zap.String("category", q.RecipeCategory),
	)
	return q
}

// DetectDietary 依飲食偏好表順序回傳查詢中提到的偏好
func (p *Parser) DetectDietary(text string) []diet.Tag {
	joined := strings.Join(tokenize(Preprocess(text)).words, " ")
	tags := []diet.Tag{}
	for _, pref := range p.rules.Taxonomy {
		for _, kw := range pref.Keywords {
			if ContainsPhrase(joined, NormalizeTerm(kw)) {
				tags = append(tags, pref.Tag)
				break
			}
		}
	}
	return tags
}

// Constraints 將外部提供的食材清單對應到詞彙表，排序去重，兩邊都有的食材以排除為準
//
// 無法解析的詞保留正規化後的原文。
func (p *Parser) Constraints(include, exclude []string) (in, ex []string) {
	inSet, exSet := p.resolveTerms(include), p.resolveTerms(exclude)
	for term := range exSet {
		delete(inSet, term)
	}
	return sortedKeys(inSet), sortedKeys(exSet)
}

func (p *Parser) resolveTerms(terms []string) map[string]struct{} {
	out := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		n := NormalizeTerm(t)
		if n == "" {
			continue
		}
		if p.extractor.resolver != nil {
			if canon, ok := p.extractor.resolver.Resolve(n); ok {
				n = canon
			}
		}
		out[n] = struct{}{}
	}
	return out
}

// Rules 回傳解析器使用的規則表
func (p *Parser) Rules() *Rules {
	return p.rules
}
