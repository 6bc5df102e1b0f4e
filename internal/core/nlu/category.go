package nlu

import "strings"

// CategoryExtractor 從查詢中找出餐點分類或品質修飾詞
type CategoryExtractor struct {
	rules *Rules
}

// NewCategoryExtractor 建立分類抽取器
func NewCategoryExtractor(rules *Rules) *CategoryExtractor {
	return &CategoryExtractor{rules: rules}
}

// Extract 回傳分類字串，沒有分類時為空字串
//
// 含排除提示詞的查詢視為食材排除查詢，不回傳分類。
// 修飾詞可與同時出現的主要分類組合成 "quick dinner" 這類複合分類。
func (c *CategoryExtractor) Extract(text string) string {
	t := tokenize(Preprocess(text))
	if len(t.words) == 0 {
		return ""
	}
	joined := strings.Join(t.words, " ")

	for _, cue := range c.rules.CategoryExclusionCues {
		if ContainsPhrase(joined, cue) {
			return ""
		}
	}

	words := c.maskFoodNames(t.words)
	joined = strings.Join(words, " ")

	for _, m := range c.rules.Modifiers {
		for _, term := range m.Terms {
			if !ContainsPhrase(joined, term) {
				continue
			}
			if primary := c.combinablePrimary(joined, term); primary != "" {
				return m.Name + " " + primary
			}
			return m.Name
		}
	}

	for _, cat := range c.rules.Categories {
		for _, term := range cat.Terms {
			if c.mentions(words, term) {
				return cat.Name
			}
		}
	}
	return ""
}

// maskFoodNames 以 "_" 遮蔽 "hot dog" 這類食物名稱，避免其中的詞被當成修飾詞或分類
func (c *CategoryExtractor) maskFoodNames(words []string) []string {
	out := append([]string(nil), words...)
	for _, name := range c.rules.FoodNames {
		for i := 0; i+len(name) <= len(out); i++ {
			if equalWords(out[i:i+len(name)], name) {
				for k := range name {
					out[i+k] = "_"
				}
			}
		}
	}
	return out
}

// combinablePrimary 找出與修飾詞同時出現的主要分類，修飾詞本身包含的分類不算
func (c *CategoryExtractor) combinablePrimary(joined, modifierTerm string) string {
	for _, primary := range c.rules.CombinablePrimaries {
		if ContainsPhrase(modifierTerm, primary) {
			continue
		}
		cat, ok := c.rules.category(primary)
		if !ok {
			continue
		}
		rest := strings.Replace(joined, modifierTerm, " ", 1)
		for _, term := range cat.Terms {
			if ContainsPhrase(rest, term) {
				return primary
			}
		}
	}
	return ""
}

// mentions 檢查分類詞是否出現；常見食材只有在前一個詞是分類指示詞時才算分類
func (c *CategoryExtractor) mentions(words []string, term string) bool {
	termWords := strings.Fields(term)
	common := c.rules.CommonIngredients[term]
	for i := 0; i+len(termWords) <= len(words); i++ {
		if !equalWords(words[i:i+len(termWords)], termWords) {
			continue
		}
		if !common {
			return true
		}
		if i > 0 && c.rules.CategoryIndicators[words[i-1]] {
			return true
		}
	}
	return false
}
