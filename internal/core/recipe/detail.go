package recipe

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"recipe-bot/internal/core/nlu"
)

var (
	// ErrRecipeNotFound 找不到符合的食譜
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrIndexOutOfRange 編號超出上次搜尋結果的範圍
	ErrIndexOutOfRange = errors.New("recipe index out of range")
)

// ResolveDetail 依編號或名稱找出使用者要查看的食譜
//
// 編號是 lastResults 的零起算位置。名稱依序嘗試完全相符、子字串、模糊比對，
// 先在上次搜尋結果中找，找不到再搜尋整個語料庫；模糊比對最高分平手時視為找不到。
func ResolveDetail(q nlu.ParsedQuery, lastResults []string, c *Corpus, threshold float64) (*Recipe, error) {
	if c == nil {
		return nil, ErrRecipeNotFound
	}
	if q.RecipeIndex != nil {
		idx := *q.RecipeIndex
		if idx < 0 || idx >= len(lastResults) {
			return nil, ErrIndexOutOfRange
		}
		r, ok := c.ByID(lastResults[idx])
		if !ok {
			return nil, ErrRecipeNotFound
		}
		return r, nil
	}

	name := nlu.NormalizeTerm(q.RecipeName)
	if name == "" {
		return nil, ErrRecipeNotFound
	}

	var recent []int
	for _, id := range lastResults {
		if i, ok := c.byID[id]; ok {
			recent = append(recent, i)
		}
	}
	if i, ok := c.findByName(name, recent, threshold); ok {
		return c.At(i), nil
	}
	all := make([]int, c.Len())
	for i := range all {
		all[i] = i
	}
	if i, ok := c.findByName(name, all, threshold); ok {
		return c.At(i), nil
	}
	return nil, ErrRecipeNotFound
}

func (c *Corpus) findByName(name string, positions []int, threshold float64) (int, bool) {
	if len(positions) == 0 {
		return 0, false
	}
	for _, i := range positions {
		if c.names[i] == name {
			return i, true
		}
	}

	best, bestLen := -1, 0
	for _, i := range positions {
		if !strings.Contains(c.names[i], name) {
			continue
		}
		l := utf8.RuneCountInString(c.names[i])
		if best < 0 || l < bestLen || (l == bestLen && i < best) {
			best, bestLen = i, l
		}
	}
	if best >= 0 {
		return best, true
	}

	var bestScore float32
	tie := false
	for _, i := range positions {
		if c.names[i] == "" {
			continue
		}
		score, err := edlib.StringsSimilarity(name, c.names[i], edlib.Levenshtein)
		if err != nil {
			continue
		}
		switch {
		case score > bestScore:
			best, bestScore, tie = i, score, false
		case score == bestScore && best >= 0 && c.names[i] != c.names[best]:
			tie = true
		}
	}
	if best < 0 || tie || float64(bestScore) <= threshold {
		return 0, false
	}
	return best, true
}
