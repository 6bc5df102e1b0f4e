package nlu

import (
	"sort"
	"strings"
	"unicode"
)

const (
	maxNegationSpan = 4
	maxNGram        = 3
	maxSegmentSpan  = 6
)

// Extractor 從查詢中抽出要包含與要排除的食材
type Extractor struct {
	resolver *Resolver
	rules    *Rules
	cueWords map[string]bool
}

// NewExtractor 建立食材抽取器
func NewExtractor(resolver *Resolver, rules *Rules) *Extractor {
	cw := make(map[string]bool)
	for _, cue := range rules.NegationCues {
		if len(cue) == 1 {
			cw[cue[0]] = true
		}
	}
	return &Extractor{resolver: resolver, rules: rules, cueWords: cw}
}

type span struct {
	start, end int
}

// extraction 單次抽取的暫存狀態
type extraction struct {
	t        tokens
	consumed []bool
	include  map[string]struct{}
	exclude  map[string]struct{}
}

func (x *extraction) free(s span) bool {
	for i := s.start; i < s.end; i++ {
		if x.consumed[i] {
			return false
		}
	}
	return true
}

func (x *extraction) consume(s span) {
	for i := s.start; i < s.end; i++ {
		x.consumed[i] = true
	}
}

// Extract 回傳排序且去重的包含與排除食材，同一食材同時出現時以排除為準
func (e *Extractor) Extract(text string) (include, exclude []string) {
	x := &extraction{
		t:       tokenize(Preprocess(text)),
		include: make(map[string]struct{}),
		exclude: make(map[string]struct{}),
	}
	x.consumed = make([]bool, len(x.t.words))

	e.negations(x)
	e.consumeDietary(x)
	e.includes(x)

	for term := range x.exclude {
		delete(x.include, term)
	}
	return sortedKeys(x.include), sortedKeys(x.exclude)
}

// negations 處理否定提示詞之後的片語，列舉連接詞與逗號後可解析的食材延續否定範圍
func (e *Extractor) negations(x *extraction) {
	words := x.t.words
	for i := 0; i < len(words); {
		cueLen := e.matchCue(words, i)
		if cueLen == 0 {
			i++
			continue
		}
		x.consume(span{i, i + cueLen})

		s, canon, ok := e.negatedSpan(x, i+cueLen)
		if !ok {
			i += cueLen
			continue
		}
		x.exclude[canon] = struct{}{}
		x.consume(s)

		for {
			next, canon, ok := e.continuation(x, s.end)
			if !ok {
				break
			}
			x.exclude[canon] = struct{}{}
			x.consume(span{s.end, next.end})
			s = next
		}
		i = s.end
	}
}

// continuation 否定片語結束於 end 時，回傳列舉中的下一個食材
func (e *Extractor) continuation(x *extraction, end int) (span, string, bool) {
	words := x.t.words
	if end <= 0 || end >= len(words) {
		return span{}, "", false
	}
	if e.rules.ListContinuers[words[end]] {
		return e.negatedSpan(x, end+1)
	}
	if x.t.segment[end] != x.t.segment[end-1] {
		return e.resolveFrom(x, end)
	}
	return span{}, "", false
}

func (e *Extractor) matchCue(words []string, i int) int {
	for _, cue := range e.rules.NegationCues {
		if i+len(cue) > len(words) {
			continue
		}
		hit := true
		for k, w := range cue {
			if words[i+k] != w {
				hit = false
				break
			}
		}
		if hit {
			return len(cue)
		}
	}
	return 0
}

// negatedSpan 從 pos 開始找最長可解析的片語，找不到時略過填充詞再試一次
func (e *Extractor) negatedSpan(x *extraction, pos int) (span, string, bool) {
	if s, canon, ok := e.resolveFrom(x, pos); ok {
		return s, canon, true
	}
	skip := pos
	for skip < len(x.t.words) && e.rules.Fillers[x.t.words[skip]] {
		skip++
	}
	if skip == pos {
		return span{}, "", false
	}
	return e.resolveFrom(x, skip)
}

func (e *Extractor) resolveFrom(x *extraction, pos int) (span, string, bool) {
	n := len(x.t.words)
	for size := maxNegationSpan; size >= 1; size-- {
		s := span{pos, pos + size}
		if s.end > n || !x.t.sameSegment(s.start, s.end) || !x.free(s) || !e.usable(x.t, s) {
			continue
		}
		if canon, ok := e.resolver.Resolve(x.t.phrase(s.start, s.end)); ok {
			return s, canon, true
		}
	}
	return span{}, "", false
}

// consumeDietary 標記飲食偏好用語，避免被當成食材
func (e *Extractor) consumeDietary(x *extraction) {
	words := x.t.words
	for _, kw := range e.rules.Taxonomy.Keywords() {
		kwWords := strings.Fields(NormalizeTerm(kw))
		if len(kwWords) == 0 {
			continue
		}
		for i := 0; i+len(kwWords) <= len(words); i++ {
			if equalWords(words[i:i+len(kwWords)], kwWords) {
				x.consume(span{i, i + len(kwWords)})
			}
		}
	}
}

// includes 解析剩餘的候選片語，長片語優先
func (e *Extractor) includes(x *extraction) {
	for _, s := range e.candidates(x.t) {
		if !x.free(s) {
			continue
		}
		phrase := x.t.phrase(s.start, s.end)
		if e.rules.IsDietaryTerm(phrase) {
			continue
		}
		if e.rules.IsCategoryTerm(phrase) && !e.rules.CommonIngredients[phrase] {
			continue
		}
		canon, ok := e.resolver.Resolve(phrase)
		if !ok {
			continue
		}
		x.include[canon] = struct{}{}
		x.consume(s)
	}
}

// candidates 逗號與連接詞切出的片段，加上不跨逗號的 1 至 3 詞 n-gram
func (e *Extractor) candidates(t tokens) []span {
	seen := make(map[span]bool)
	var out []span
	add := func(s span) {
		if seen[s] || !e.usable(t, s) {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	start := 0
	for i := 0; i <= len(t.words); i++ {
		boundary := i == len(t.words) || e.rules.Connectives[t.words[i]] ||
			(i > 0 && t.segment[i] != t.segment[i-1])
		if !boundary {
			continue
		}
		if i-start <= maxSegmentSpan && i > start {
			add(span{start, i})
		}
		start = i
		if i < len(t.words) && e.rules.Connectives[t.words[i]] {
			start = i + 1
		}
	}

	for size := maxNGram; size >= 1; size-- {
		for i := 0; i+size <= len(t.words); i++ {
			if t.sameSegment(i, i+size) {
				add(span{i, i + size})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		li, lj := out[i].end-out[i].start, out[j].end-out[j].start
		if li != lj {
			return li > lj
		}
		return out[i].start < out[j].start
	})
	return out
}

// usable 片語邊界不可為停用詞、連接詞、否定詞或數字，內部不可有連接詞
func (e *Extractor) usable(t tokens, s span) bool {
	first, last := t.words[s.start], t.words[s.end-1]
	for _, w := range []string{first, last} {
		if e.rules.Stopwords[w] || e.cueWords[w] || isNumeric(w) {
			return false
		}
	}
	for i := s.start; i < s.end; i++ {
		if e.rules.Connectives[t.words[i]] {
			return false
		}
	}
	return true
}

func isNumeric(w string) bool {
	return strings.IndexFunc(w, func(r rune) bool { return !unicode.IsDigit(r) }) < 0
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
