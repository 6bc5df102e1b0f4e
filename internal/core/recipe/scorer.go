package recipe

import (
	"recipe-bot/internal/core/nlu"
)

// Scorer 計算查詢食材與食譜食材的比對分數
type Scorer struct {
	cfg Config
}

// NewScorer 建立評分器
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score 計算單一食譜的比對結果
//
// 分數為 MatchWeight*MatchRatio + CoverageWeight*CoverageRatio，
// 沒有指定食材時基礎分數為 1。每個出現在食譜中的排除食材扣 ExclusionPenalty，最低為 0。
func (s *Scorer) Score(include, recipeIngredients, exclude []string) MatchResult {
	return s.score(distinctTerms(include), nlu.NewVocabulary(recipeIngredients), distinctTerms(exclude))
}

func (s *Scorer) score(include []string, ingredients *nlu.Vocabulary, exclude []string) MatchResult {
	// 食譜食材本身已是標準詞，不套用別名
	resolver := nlu.NewResolver(ingredients, nil, s.cfg.FuzzyThreshold)

	result := MatchResult{CommonIngredients: []string{}}
	seen := make(map[string]struct{}, len(include))
	for _, ing := range include {
		found, ok := resolver.Resolve(ing)
		if !ok {
			continue
		}
		if _, dup := seen[found]; dup {
			continue
		}
		seen[found] = struct{}{}
		result.CommonIngredients = append(result.CommonIngredients, found)
	}
	result.MatchCount = len(result.CommonIngredients)

	if len(include) > 0 {
		result.MatchRatio = float64(result.MatchCount) / float64(len(include))
	}
	if ingredients.Len() > 0 {
		result.CoverageRatio = float64(result.MatchCount) / float64(ingredients.Len())
	}

	score := 1.0
	if len(include) > 0 {
		score = s.cfg.MatchWeight*result.MatchRatio + s.cfg.CoverageWeight*result.CoverageRatio
	}
	for _, ing := range exclude {
		if _, ok := resolver.Resolve(ing); ok {
			score -= s.cfg.ExclusionPenalty
		}
	}
	result.Score = clamp01(score)
	return result
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
