package recipe

import (
	"recipe-bot/internal/core/nlu"
)

// Corpus 不可變的食譜集合與其食材詞彙表，可安全地併發讀取
type Corpus struct {
	recipes  []Recipe
	byID     map[string]int
	vocab    *nlu.Vocabulary
	perVocab []*nlu.Vocabulary
	names    []string
	texts    []map[Field]string
	fields   map[Field]bool
	ready    bool
}

// NewCorpus 建立語料庫並由所有清理後的食材建立詞彙表
//
// 重複的 ID 只保留第一筆的索引。
func NewCorpus(recipes []Recipe) *Corpus {
	c := &Corpus{
		recipes:  make([]Recipe, len(recipes)),
		byID:     make(map[string]int, len(recipes)),
		perVocab: make([]*nlu.Vocabulary, len(recipes)),
		names:    make([]string, len(recipes)),
		texts:    make([]map[Field]string, len(recipes)),
		fields:   make(map[Field]bool),
	}
	copy(c.recipes, recipes)

	var all []string
	for i := range c.recipes {
		r := &c.recipes[i]
		if _, ok := c.byID[r.ID]; !ok && r.ID != "" {
			c.byID[r.ID] = i
		}
		all = append(all, r.CleanedIngredients...)
		c.perVocab[i] = nlu.NewVocabulary(r.CleanedIngredients)
		c.names[i] = nlu.NormalizeTerm(r.Name)
		if r.Name != "" && len(r.CleanedIngredients) > 0 {
			c.ready = true
		}

		c.texts[i] = make(map[Field]string, len(fallbackFields)+1)
		for _, f := range append([]Field{FieldCategory}, fallbackFields...) {
			text := r.FieldText(f)
			if text == "" {
				continue
			}
			c.fields[f] = true
			c.texts[i][f] = nlu.Preprocess(text)
		}
	}
	c.vocab = nlu.NewVocabulary(all)
	return c
}

// Len 食譜數量
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.recipes)
}

// At 依語料庫順序取得食譜
func (c *Corpus) At(i int) *Recipe {
	return &c.recipes[i]
}

// ByID 依 ID 取得食譜
func (c *Corpus) ByID(id string) (*Recipe, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.recipes[i], true
}

// Vocabulary 語料庫的標準食材詞彙表
func (c *Corpus) Vocabulary() *nlu.Vocabulary {
	if c == nil {
		return nlu.NewVocabulary(nil)
	}
	return c.vocab
}

// HasField 是否有任何食譜帶有該欄位
func (c *Corpus) HasField(f Field) bool {
	return c != nil && c.fields[f]
}

// Ready 是否至少有一筆食譜同時具備名稱與清理後的食材
func (c *Corpus) Ready() bool {
	return c != nil && c.ready
}

// SearchFields 分類篩選使用的欄位：有分類欄位時只用分類欄位，否則聯集其他描述欄位
func (c *Corpus) SearchFields() []Field {
	if c.HasField(FieldCategory) {
		return []Field{FieldCategory}
	}
	var out []Field
	for _, f := range fallbackFields {
		if c.HasField(f) {
			out = append(out, f)
		}
	}
	return out
}

func (c *Corpus) text(i int, f Field) string {
	return c.texts[i][f]
}
