package recipe

import (
	"strings"

	"recipe-bot/internal/core/diet"
	"recipe-bot/internal/core/nlu"
)

// PassesDietary 食譜食材不含任何所選飲食偏好的禁用食材時回傳 true
//
// 以完整詞比對並接受複數形，例如 "potatoes" 會命中 "potato"。
func PassesDietary(ingredients []string, tags []diet.Tag, taxonomy diet.Taxonomy) bool {
	if len(tags) == 0 {
		return true
	}
	normalized := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		normalized = append(normalized, nlu.NormalizeTerm(ing))
	}
	for _, tag := range tags {
		pref, ok := taxonomy.Lookup(tag)
		if !ok {
			continue
		}
		for _, forbidden := range pref.Forbidden {
			for _, ing := range normalized {
				if nlu.ContainsPhrasePlural(ing, forbidden) {
					return false
				}
			}
		}
	}
	return true
}

// CategoryFilter 依分類或修飾詞縮小候選食譜
type CategoryFilter struct {
	rules *nlu.Rules
}

// NewCategoryFilter 建立分類篩選器
func NewCategoryFilter(rules *nlu.Rules) *CategoryFilter {
	return &CategoryFilter{rules: rules}
}

// Filter 保留在任一搜尋欄位中命中分類條件的候選
//
// 複合分類（例如 "quick dinner"）需同時命中修飾詞與主要分類的關鍵字。
func (f *CategoryFilter) Filter(c *Corpus, candidates []Match, category string, fields []Field) []Match {
	groups := f.rules.CategoryTerms(category)
	if len(groups) == 0 {
		return candidates
	}
	for gi, group := range groups {
		terms := make([]string, 0, len(group))
		for _, t := range group {
			if n := nlu.NormalizeTerm(t); n != "" {
				terms = append(terms, n)
			}
		}
		groups[gi] = terms
	}

	out := make([]Match, 0, len(candidates))
	for _, m := range candidates {
		if matchesAll(c, m.Position, groups, fields) {
			out = append(out, m)
		}
	}
	return out
}

func matchesAll(c *Corpus, pos int, groups [][]string, fields []Field) bool {
	for _, group := range groups {
		if !matchesAny(c, pos, group, fields) {
			return false
		}
	}
	return true
}

func matchesAny(c *Corpus, pos int, terms []string, fields []Field) bool {
	for _, f := range fields {
		text := c.text(pos, f)
		if text == "" {
			continue
		}
		text = strings.ReplaceAll(text, ",", "")
		for _, term := range terms {
			if nlu.ContainsPhrasePlural(text, term) {
				return true
			}
		}
	}
	return false
}
