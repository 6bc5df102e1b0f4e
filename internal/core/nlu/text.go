package nlu

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics 去除重音符號，例如 "jalapeño" -> "jalapeno"
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == '`'
}

// Preprocess 正規化查詢文字
//
// 轉小寫、去除重音、刪除撇號，保留逗號與複合詞中的連字號，其餘標點轉為空白並壓縮空白。
// 對已正規化的文字再次處理不會改變結果。
func Preprocess(text string) string {
	rs := []rune(foldDiacritics(strings.ToLower(text)))

	var b strings.Builder
	b.Grow(len(rs))
	for i, r := range rs {
		switch {
		case isApostrophe(r):
			continue
		case isWordRune(r):
			b.WriteRune(r)
		case r == ',':
			b.WriteString(" , ")
		case r == '-' && i > 0 && i < len(rs)-1 && isWordRune(rs[i-1]) && isWordRune(rs[i+1]):
			b.WriteRune('-')
		default:
			b.WriteRune(' ')
		}
	}

	words := make([]string, 0, 8)
	pendingComma := false
	for _, f := range strings.Fields(b.String()) {
		if f == "," {
			pendingComma = len(words) > 0
			continue
		}
		if pendingComma {
			words[len(words)-1] += ","
			pendingComma = false
		}
		words = append(words, f)
	}
	return strings.Join(words, " ")
}

// tokens 前處理後的詞序列，segment 以逗號分段
type tokens struct {
	words   []string
	segment []int
}

// tokenize 將已前處理的文字切成詞與逗號分段
func tokenize(text string) tokens {
	var t tokens
	seg := 0
	for _, f := range strings.Fields(text) {
		comma := strings.HasSuffix(f, ",")
		f = strings.TrimRight(f, ",")
		if f != "" {
			t.words = append(t.words, f)
			t.segment = append(t.segment, seg)
		}
		if comma {
			seg++
		}
	}
	return t
}

func (t tokens) phrase(start, end int) string {
	return strings.Join(t.words[start:end], " ")
}

// sameSegment 檢查 [start, end) 是否位於同一逗號分段
func (t tokens) sameSegment(start, end int) bool {
	return t.segment[start] == t.segment[end-1]
}

// Tokenize 回傳前處理後的詞列表（不含逗號）
func Tokenize(text string) []string {
	return tokenize(Preprocess(text)).words
}

// ContainsPhrase 檢查 phrase 是否以完整詞的形式出現在 text 中
func ContainsPhrase(text, phrase string) bool {
	return indexPhrase(text, phrase, false) >= 0
}

// ContainsPhrasePlural 同 ContainsPhrase，並接受 phrase 後接 "s" 或 "es"
func ContainsPhrasePlural(text, phrase string) bool {
	return indexPhrase(text, phrase, true) >= 0
}

func indexPhrase(text, phrase string, plural bool) int {
	if phrase == "" || len(phrase) > len(text) {
		return -1
	}
	for start := 0; start <= len(text)-len(phrase); {
		i := strings.Index(text[start:], phrase)
		if i < 0 {
			return -1
		}
		i += start
		end := i + len(phrase)
		if boundaryBefore(text, i) {
			if boundaryAfter(text, end) {
				return i
			}
			if plural {
				if strings.HasPrefix(text[end:], "s") && boundaryAfter(text, end+1) {
					return i
				}
				if strings.HasPrefix(text[end:], "es") && boundaryAfter(text, end+2) {
					return i
				}
			}
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		start = i + size
	}
	return -1
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

// NormalizeTerm 將詞彙或片語正規化為比對用形式（不含逗號）
func NormalizeTerm(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(Preprocess(s), ",", " ")), " ")
}
