package recipe

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"recipe-bot/internal/core/nlu"
	"recipe-bot/internal/pkg/common"
)

// Matcher 依解析後的查詢篩選、評分並排序食譜
type Matcher struct {
	cfg        Config
	rules      *nlu.Rules
	scorer     *Scorer
	categories *CategoryFilter
}

// NewMatcher 建立比對器，rules 為 nil 時使用預設規則
func NewMatcher(cfg Config, rules *nlu.Rules) *Matcher {
	if rules == nil {
		rules = nlu.DefaultRules()
	}
	return &Matcher{
		cfg:        cfg,
		rules:      rules,
		scorer:     NewScorer(cfg),
		categories: NewCategoryFilter(rules),
	}
}

// Config 回傳比對參數
func (m *Matcher) Config() Config {
	return m.cfg
}

// Match 回傳依分數由高到低排序的食譜，同分時依語料庫順序
//
// limit 小於 0 時使用預設上限，等於 0 時不回傳結果。
// 只有 ctx 被取消時才回傳錯誤。
func (m *Matcher) Match(ctx context.Context, q nlu.ParsedQuery, c *Corpus, limit int) ([]Match, error) {
	start := time.Now()
	if limit < 0 {
		limit = m.cfg.DefaultLimit
	}
	if limit == 0 || !q.HasConstraints() {
		return []Match{}, nil
	}
	if !c.Ready() {
		common.LogWarn("語料庫缺少食譜名稱或清理後的食材，無法比對",
			zap.Int("recipes", c.Len()),
		)
		return []Match{}, nil
	}

	candidates := make([]Match, c.Len())
	for i := range candidates {
		candidates[i] = Match{Recipe: c.At(i), Position: i}
	}

	if q.RecipeCategory != "" {
		candidates = m.categories.Filter(c, candidates, q.RecipeCategory, c.SearchFields())
		common.LogDebug("分類篩選完成",
			zap.String("category", q.RecipeCategory),
			zap.Int("remaining", len(candidates)),
		)
		if len(candidates) == 0 {
			return []Match{}, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	include := distinctTerms(q.IncludeIngredients)
	exclude := distinctTerms(q.ExcludeIngredients)
	scored := candidates[:0]
	for _, cand := range candidates {
		if len(q.DietaryPreferences) > 0 &&
			!PassesDietary(cand.Recipe.CleanedIngredients, q.DietaryPreferences, m.rules.Taxonomy) {
			continue
		}
		cand.Result = m.scorer.score(include, c.perVocab[cand.Position], exclude)
		scored = append(scored, cand)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(include) >= 2 {
		scored = m.mustHaveMost(scored, len(include))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Result.Score != scored[j].Result.Score {
			return scored[i].Result.Score > scored[j].Result.Score
		}
		return scored[i].Position < scored[j].Position
	})

	if len(include) > 0 {
		kept := scored[:0]
		for _, s := range scored {
			if s.Result.Score >= m.cfg.MinScore {
				kept = append(kept, s)
			}
		}
		scored = kept
	}

	if len(scored) > limit {
		scored = scored[:limit]
	}

	common.LogDebug("食譜比對完成",
		zap.Strings("include", include),
		zap.Strings("exclude", exclude),
		zap.Int("results", len(scored)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return scored, nil
}

// mustHaveMost 只保留涵蓋大部分指定食材的食譜，若因此沒有結果則保留原集合
func (m *Matcher) mustHaveMost(scored []Match, requested int) []Match {
	need := m.cfg.MustHaveRatio * float64(requested)
	var strict []Match
	for _, s := range scored {
		if float64(s.Result.MatchCount)+1e-9 >= need {
			strict = append(strict, s)
		}
	}
	if len(strict) == 0 {
		return scored
	}
	return strict
}
