package nlu

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Vocabulary 標準食材詞彙表，建立後唯讀，可安全地併發讀取
type Vocabulary struct {
	terms     map[string]struct{}
	sorted    []string
	compounds []string // 多詞條目，依長度再依字典序排列
}

// NewVocabulary 由食材字串建立詞彙表，自動正規化與去重
func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{terms: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		n := NormalizeTerm(t)
		if n == "" {
			continue
		}
		if _, ok := v.terms[n]; ok {
			continue
		}
		v.terms[n] = struct{}{}
		v.sorted = append(v.sorted, n)
		if strings.ContainsAny(n, " -") {
			v.compounds = append(v.compounds, n)
		}
	}
	sort.Strings(v.sorted)
	sort.Slice(v.compounds, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(v.compounds[i]), utf8.RuneCountInString(v.compounds[j])
		if li != lj {
			return li < lj
		}
		return v.compounds[i] < v.compounds[j]
	})
	return v
}

// Contains 檢查詞彙是否存在
func (v *Vocabulary) Contains(term string) bool {
	if v == nil {
		return false
	}
	_, ok := v.terms[term]
	return ok
}

// Terms 回傳排序後的詞彙副本
func (v *Vocabulary) Terms() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.sorted))
	copy(out, v.sorted)
	return out
}

// Len 詞彙數量
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.sorted)
}
