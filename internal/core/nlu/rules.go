package nlu

import (
	"regexp"
	"strings"

	"recipe-bot/internal/core/diet"
)

// IntentRule 意圖規則，依序比對第一個命中的樣式
type IntentRule struct {
	Intent   Intent
	Patterns []*regexp.Regexp
}

// Modifier 品質修飾詞，例如 quick、spicy
type Modifier struct {
	Name     string   // 分類名稱
	Terms    []string // 查詢中的觸發詞
	Keywords []string // 篩選食譜時搜尋的關鍵字
}

// Category 主要分類
type Category struct {
	Name  string
	Terms []string
}

// Rules 查詢理解使用的規則表，建立後不可修改
type Rules struct {
	Intents []IntentRule

	NegationCues   [][]string // 多詞在前
	Fillers        map[string]bool
	ListContinuers map[string]bool
	Connectives    map[string]bool
	Stopwords      map[string]bool

	Taxonomy diet.Taxonomy

	CategoryExclusionCues []string
	Modifiers             []Modifier
	CombinablePrimaries   []string
	Categories            []Category
	CategoryIndicators    map[string]bool
	CommonIngredients     map[string]bool
	FoodNames             [][]string // 含修飾詞或分類詞的食物名稱，不視為分類
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

func cues(phrases ...string) [][]string {
	out := make([][]string, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, strings.Fields(p))
	}
	// 多詞提示優先比對
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

var (
	quitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(?:ok |okay |thanks |thank you |alright )?(?:quit|exit|bye|bye bye|goodbye|good bye|stop|close|end|see you|see ya)(?: now| please| thanks| thank you| bye)?$`),
		regexp.MustCompile(`^(?:i want to|i wanna|lets|let me|id like to|i would like to) (?:quit|exit|leave|stop)(?: now)?$`),
		regexp.MustCompile(`\b(?:close|end|stop|exit|quit) (?:the |this )?(?:chat|session|conversation|program|bot)\b`),
		regexp.MustCompile(`^shut ?down$`),
	}

	helpPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(?:help|help me|commands|usage|menu|i need help|need help|please help|help please)$`),
		regexp.MustCompile(`^what (?:can|should) (?:you|i) (?:do|ask|say|type)(?: here)?$`),
		regexp.MustCompile(`\bhow (?:does|do) (?:this|you|it) work\b`),
		regexp.MustCompile(`\bhow (?:do|can) i use (?:this|you|it)\b`),
		regexp.MustCompile(`^(?:show|list|what are)(?: me| us)?(?: the| your)? (?:commands|options|features)$`),
		regexp.MustCompile(`\bwhat commands\b`),
	}

	selectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(?P<index>\d+)$`),
		regexp.MustCompile(`^(?:show|get|view|see|display|open|give|pick|select|choose|i want|ill take|i ll take|lets see|let me see|can i see)(?: me| us)?(?: the)?(?: recipe| option| number| result)?(?: number| no)? (?P<index>\d+)(?:st|nd|rd|th)?(?: one| recipe| option)?(?: please)?$`),
		regexp.MustCompile(`^(?:recipe|option|number|result|no)(?: number)? (?P<index>\d+)(?: please)?$`),
		regexp.MustCompile(`^(?:the )?(?P<index>\d+)(?:st|nd|rd|th)(?: one| recipe| option)?(?: please)?$`),
		regexp.MustCompile(`^(?:details|instructions|ingredients|steps)(?: for| of)? (?:recipe |option |number )?(?P<index>\d+)$`),
		regexp.MustCompile(`^(?:show me |give me |i want )?(?:the )?(?P<ordinal>first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth)(?: one| recipe| option)?(?: please)?$`),
	}

	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(?:tell me|tell us)(?: more)? about (?P<name>.+)$`),
		regexp.MustCompile(`^(?:show|give|get|send)(?: me| us)?(?: the)? (?:details|instructions|steps|directions|ingredients|full recipe|recipe details)(?: for| of| to| on) (?P<name>.+)$`),
		regexp.MustCompile(`^(?:what are |whats |what is )?(?:the )?(?:ingredients|instructions|steps|directions|details)(?: needed)? (?:for|of|in|to make) (?P<name>.+)$`),
		regexp.MustCompile(`^how (?:do|can|would|should) (?:i|you|we) (?:make|prepare|cook) (?P<name>.+)$`),
		regexp.MustCompile(`^(?:view|open|see) recipe (?P<name>\D.*)$`),
		regexp.MustCompile(`^recipe (?:details )?for (?P<name>.+)$`),
	}
)

// DefaultRules 預設規則表
func DefaultRules() *Rules {
	return &Rules{
		Intents: []IntentRule{
			{Intent: IntentQuit, Patterns: quitPatterns},
			{Intent: IntentHelp, Patterns: helpPatterns},
			{Intent: IntentRecipeDetails, Patterns: selectionPatterns},
			{Intent: IntentRecipeDetails, Patterns: namePatterns},
		},

		NegationCues: cues(
			"no", "not", "without", "except", "excluding", "exclude", "dont",
			"none", "no more", "avoid", "free from", "free of", "minus",
			"leave out", "skip", "omit", "cannot have", "cant have",
			"allergic to", "allergy to", "sensitive to", "intolerant to",
			"anything but", "rather not", "instead of", "but no", "but not",
			"other than", "remove", "nothing with", "nothing containing",
			"hold the",
		),
		Fillers: set(
			"any", "a", "an", "the", "some", "want", "like", "use", "using",
			"include", "including", "have", "contain", "containing", "eat",
			"more", "added", "extra",
		),
		ListContinuers: set("and", "or", "nor", "n"),
		Connectives:    set("and", "or", "with", "plus", "nor", "n"),
		Stopwords: set(
			"a", "an", "the", "and", "or", "with", "plus", "nor", "but",
			"find", "search", "look", "looking", "show", "give", "get",
			"recipe", "recipes", "dish", "dishes", "meal", "meals", "idea",
			"ideas", "food", "foods", "something", "anything", "some", "any",
			"me", "us", "i", "im", "id", "ive", "my", "we", "our", "you",
			"your", "want", "would", "like", "love", "need", "to", "make",
			"cook", "cooking", "prepare", "bake", "can", "could", "should",
			"what", "which", "how", "for", "of", "in", "on", "at", "from",
			"using", "use", "used", "containing", "contain", "contains",
			"have", "has", "had", "got", "please", "that", "this", "these",
			"those", "is", "are", "be", "it", "suggest", "recommend", "about",
			"tonight", "today", "good", "great", "best", "delicious", "tasty",
			"nice", "new", "lots", "lot", "bit", "little", "only", "just",
			"also", "too", "really", "very", "made", "ingredients",
			"ingredient", "all", "both", "either", "other", "there", "where",
			"when", "do", "does", "did", "so", "up", "out", "into", "over",
			"under", "minutes", "minute", "min", "mins", "hour", "hours",
		),

		Taxonomy: diet.DefaultTaxonomy(),

		CategoryExclusionCues: []string{"without", "no", "not containing", "excluding"},
		Modifiers: []Modifier{
			{Name: "dinner party", Terms: []string{"dinner party"}, Keywords: []string{"dinner party", "party", "entertaining"}},
			{Name: "quick", Terms: []string{"quick", "fast"}, Keywords: []string{"quick", "fast", "ready in", "30 min", "30 minutes", "20 minutes"}},
			{Name: "easy", Terms: []string{"easy", "simple"}, Keywords: []string{"easy", "simple", "beginner"}},
			{Name: "fancy", Terms: []string{"fancy", "elegant", "gourmet"}, Keywords: []string{"fancy", "elegant", "gourmet"}},
			{Name: "party", Terms: []string{"party", "celebration"}, Keywords: []string{"party", "celebration", "crowd"}},
			{Name: "holiday", Terms: []string{"holiday"}, Keywords: []string{"holiday", "christmas", "thanksgiving", "easter"}},
			{Name: "spicy", Terms: []string{"spicy", "hot"}, Keywords: []string{"spicy", "hot", "chili", "cayenne", "jalapeno"}},
			{Name: "picnic", Terms: []string{"picnic"}, Keywords: []string{"picnic"}},
			{Name: "bbq", Terms: []string{"bbq", "barbecue"}, Keywords: []string{"bbq", "barbecue", "grill"}},
			{Name: "grilled", Terms: []string{"grilled"}, Keywords: []string{"grilled", "grill"}},
			{Name: "baked", Terms: []string{"baked"}, Keywords: []string{"baked", "bake", "oven"}},
			{Name: "roasted", Terms: []string{"roasted"}, Keywords: []string{"roasted", "roast"}},
			{Name: "fried", Terms: []string{"fried"}, Keywords: []string{"fried", "fry"}},
			{Name: "healthy", Terms: []string{"healthy", "light"}, Keywords: []string{"healthy", "light", "low-fat", "low fat"}},
		},
		CombinablePrimaries: []string{"breakfast", "lunch", "dinner", "dessert", "soup", "salad", "appetizer"},
		Categories: []Category{
			{Name: "dessert", Terms: []string{"dessert", "desserts", "sweet", "sweets", "cake", "cakes", "cookies", "pie", "pastry", "pastries", "baked goods"}},
			{Name: "breakfast", Terms: []string{"breakfast", "morning meal", "brunch"}},
			{Name: "lunch", Terms: []string{"lunch", "midday meal"}},
			{Name: "dinner", Terms: []string{"dinner", "supper", "evening meal"}},
			{Name: "appetizer", Terms: []string{"appetizer", "appetizers", "starter", "starters", "hors doeuvre", "hors doeuvres", "snack", "snacks"}},
			{Name: "main", Terms: []string{"main course", "main dish", "entree", "main"}},
			{Name: "side", Terms: []string{"side dish", "side", "sides", "accompaniment"}},
			{Name: "soup", Terms: []string{"soup", "soups", "stew", "stews", "bisque", "chowder"}},
			{Name: "salad", Terms: []string{"salad", "salads"}},
			{Name: "bread", Terms: []string{"bread", "breads", "roll", "rolls", "bun", "buns"}},
			{Name: "drink", Terms: []string{"drink", "drinks", "beverage", "beverages", "cocktail", "cocktails", "smoothie", "smoothies"}},
			{Name: "seafood", Terms: []string{"seafood", "fish", "shrimp", "crab", "lobster", "scallop", "scallops", "oyster", "oysters"}},
			{Name: "meat", Terms: []string{"meat", "beef", "pork", "lamb", "chicken", "turkey", "duck", "goose"}},
			{Name: "pasta", Terms: []string{"pasta", "noodle", "noodles", "spaghetti", "lasagna", "macaroni"}},
		},
		CategoryIndicators: set(
			"recipe", "recipes", "dish", "dishes", "meal", "meals",
			"breakfast", "lunch", "dinner", "dessert",
		),
		CommonIngredients: set(
			"chicken", "beef", "pork", "lamb", "turkey", "duck", "fish",
			"salmon", "shrimp", "crab", "lobster", "rice", "pasta", "noodle",
			"noodles", "spaghetti", "macaroni", "bean", "beans", "potato",
			"potatoes", "bread",
		),
		FoodNames: cues(
			"hot dog", "hot dogs", "hot chocolate", "hot pot",
			"sweet potato", "sweet potatoes", "sweet corn",
			"quick bread", "quick breads", "fried rice",
		),
	}
}

// IsCategoryTerm 檢查片語是否為分類或修飾詞
func (r *Rules) IsCategoryTerm(phrase string) bool {
	for _, c := range r.Categories {
		if c.Name == phrase {
			return true
		}
		for _, t := range c.Terms {
			if t == phrase {
				return true
			}
		}
	}
	for _, m := range r.Modifiers {
		for _, t := range m.Terms {
			if t == phrase {
				return true
			}
		}
	}
	return false
}

// IsDietaryTerm 檢查片語是否為飲食偏好關鍵字
func (r *Rules) IsDietaryTerm(phrase string) bool {
	for _, k := range r.Taxonomy.Keywords() {
		if k == phrase {
			return true
		}
	}
	return false
}

// CategoryTerms 將分類字串展開為比對條件
//
// 回傳多組關鍵字：每組至少需命中一個，所有組別皆需命中。
// 未知分類以原字串作為唯一條件。
func (r *Rules) CategoryTerms(category string) [][]string {
	category = strings.TrimSpace(strings.ToLower(category))
	if category == "" {
		return nil
	}
	if m, ok := r.modifier(category); ok {
		return [][]string{m.Keywords}
	}
	if c, ok := r.category(category); ok {
		return [][]string{c.Terms}
	}
	for _, m := range r.Modifiers {
		prefix := m.Name + " "
		if !strings.HasPrefix(category, prefix) {
			continue
		}
		if c, ok := r.category(strings.TrimPrefix(category, prefix)); ok {
			return [][]string{m.Keywords, c.Terms}
		}
	}
	return [][]string{{category}}
}

func (r *Rules) modifier(name string) (Modifier, bool) {
	for _, m := range r.Modifiers {
		if m.Name == name {
			return m, true
		}
	}
	return Modifier{}, false
}

func (r *Rules) category(name string) (Category, bool) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
