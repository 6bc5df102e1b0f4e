package nlu

import (
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// DefaultFuzzyThreshold 模糊比對的預設相似度門檻
const DefaultFuzzyThreshold = 0.8

// minCompoundRunes 複合詞部分比對的最短片語長度
const minCompoundRunes = 3

// Resolver 將任意片語對應到詞彙表中的標準食材
type Resolver struct {
	vocab     *Vocabulary
	aliases   map[string]string
	threshold float64
}

// NewResolver 建立解析器，threshold 不在 (0,1) 範圍時使用預設值
func NewResolver(vocab *Vocabulary, aliases map[string]string, threshold float64) *Resolver {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultFuzzyThreshold
	}
	return &Resolver{vocab: vocab, aliases: aliases, threshold: threshold}
}

// Vocabulary 回傳解析器使用的詞彙表
func (r *Resolver) Vocabulary() *Vocabulary {
	return r.vocab
}

// Resolve 依序嘗試別名、完全比對、單複數、模糊比對與複合詞部分比對，第一個命中即回傳
func (r *Resolver) Resolve(phrase string) (string, bool) {
	p := NormalizeTerm(phrase)
	if p == "" || r.vocab.Len() == 0 {
		return "", false
	}

	if canon, ok := r.alias(p); ok {
		return canon, true
	}
	if r.vocab.Contains(p) {
		return p, true
	}
	for _, form := range pluralForms(p) {
		if r.vocab.Contains(form) {
			return form, true
		}
	}
	if m, ok := r.fuzzy(p); ok {
		return m, true
	}
	if m, ok := r.compound(p); ok {
		return m, true
	}
	return "", false
}

func (r *Resolver) alias(p string) (string, bool) {
	if len(r.aliases) == 0 {
		return "", false
	}
	if canon, ok := r.aliases[p]; ok && r.vocab.Contains(canon) {
		return canon, true
	}
	return "", false
}

// pluralForms 產生單複數變化：去 s、去 es、加 s、加 es
func pluralForms(p string) []string {
	forms := make([]string, 0, 4)
	if strings.HasSuffix(p, "s") && len(p) > 2 {
		forms = append(forms, p[:len(p)-1])
	}
	if strings.HasSuffix(p, "es") && len(p) > 3 {
		forms = append(forms, p[:len(p)-2])
	}
	return append(forms, p+"s", p+"es")
}

// fuzzy 以 Levenshtein 相似度找最佳候選，同分時視為模糊不清
func (r *Resolver) fuzzy(p string) (string, bool) {
	pl := utf8.RuneCountInString(p)
	best := ""
	var bestScore float32
	tie := false

	for _, term := range r.vocab.sorted {
		tl := utf8.RuneCountInString(term)
		if !r.lengthCompatible(pl, tl) {
			continue
		}
		score, err := edlib.StringsSimilarity(p, term, edlib.Levenshtein)
		if err != nil {
			continue
		}
		switch {
		case score > bestScore:
			best, bestScore, tie = term, score, false
		case score == bestScore && best != "":
			tie = true
		}
	}

	if best == "" || tie || float64(bestScore) <= r.threshold {
		return "", false
	}
	return best, true
}

// lengthCompatible 長度差過大時相似度不可能超過門檻
func (r *Resolver) lengthCompatible(a, b int) bool {
	longer, diff := a, a-b
	if b > a {
		longer, diff = b, b-a
	}
	if longer == 0 {
		return false
	}
	return 1-float64(diff)/float64(longer) > r.threshold
}

// compound 片語為多詞條目中的完整詞（或連續詞組）時命中，取最短條目
func (r *Resolver) compound(p string) (string, bool) {
	if utf8.RuneCountInString(p) < minCompoundRunes {
		return "", false
	}
	for _, entry := range r.vocab.compounds {
		if entry != p && ContainsPhrase(entry, p) {
			return entry, true
		}
	}
	return "", false
}
