// Package recipe scores, filters and ranks a recipe corpus against a parsed
// query, and resolves follow-up detail requests.
package recipe

import (
	"strings"

	"recipe-bot/internal/core/nlu"
)

// Recipe 食譜資料
type Recipe struct {
	ID                 string   `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	RawIngredients     []string `json:"raw_ingredients" yaml:"raw_ingredients"`
	CleanedIngredients []string `json:"cleaned_ingredients" yaml:"cleaned_ingredients"`
	Instructions       []string `json:"instructions" yaml:"instructions"`
	Category           string   `json:"category,omitempty" yaml:"category,omitempty"`
	Tags               []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Keywords           []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`
	Cuisine            string   `json:"cuisine,omitempty" yaml:"cuisine,omitempty"`
	CookTime           string   `json:"cook_time,omitempty" yaml:"cook_time,omitempty"`
	Rating             float64  `json:"rating,omitempty" yaml:"rating,omitempty"`
	URL                string   `json:"url,omitempty" yaml:"url,omitempty"`
}

// Field 可供分類篩選搜尋的欄位
type Field string

const (
	FieldCategory     Field = "category"
	FieldName         Field = "name"
	FieldTags         Field = "tags"
	FieldKeywords     Field = "keywords"
	FieldDescription  Field = "description"
	FieldInstructions Field = "instructions"
)

// fallbackFields 沒有分類欄位時依序聯集搜尋的欄位
var fallbackFields = []Field{FieldName, FieldTags, FieldKeywords, FieldDescription, FieldInstructions}

// FieldText 回傳欄位的原始文字，清單欄位以換行連接
func (r *Recipe) FieldText(f Field) string {
	switch f {
	case FieldCategory:
		return r.Category
	case FieldName:
		return r.Name
	case FieldTags:
		return strings.Join(r.Tags, "\n")
	case FieldKeywords:
		return strings.Join(r.Keywords, "\n")
	case FieldDescription:
		return r.Description
	case FieldInstructions:
		return strings.Join(r.Instructions, "\n")
	default:
		return ""
	}
}

// MatchResult 單一食譜的比對結果
type MatchResult struct {
	CommonIngredients []string `json:"common_ingredients"`
	MatchCount        int      `json:"match_count"`
	MatchRatio        float64  `json:"match_ratio"`
	CoverageRatio     float64  `json:"coverage_ratio"`
	Score             float64  `json:"score"`
}

// Match 排序結果中的一筆，Position 為食譜在語料庫中的順序
type Match struct {
	Recipe   *Recipe     `json:"recipe"`
	Result   MatchResult `json:"result"`
	Position int         `json:"position"`
}

// Config 比對參數，建立後不可修改
type Config struct {
	FuzzyThreshold   float64
	NameThreshold    float64
	MatchWeight      float64
	CoverageWeight   float64
	ExclusionPenalty float64
	MinScore         float64
	MustHaveRatio    float64
	DefaultLimit     int
}

// DefaultConfig 預設比對參數
func DefaultConfig() Config {
	return Config{
		FuzzyThreshold:   nlu.DefaultFuzzyThreshold,
		NameThreshold:    0.7,
		MatchWeight:      0.7,
		CoverageWeight:   0.3,
		ExclusionPenalty: 0.5,
		MinScore:         0.1,
		MustHaveRatio:    0.9,
		DefaultLimit:     10,
	}
}

// distinctTerms 正規化並去重，保留原順序
func distinctTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		n := nlu.NormalizeTerm(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
