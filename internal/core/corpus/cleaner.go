package corpus

import (
	"regexp"
	"strings"
	"unicode"

	"recipe-bot/internal/core/nlu"
)

var parenthetical = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)

var units = []string{
	"cup", "cups", "c", "tablespoon", "tablespoons", "tbsp", "tbs", "tbl",
	"teaspoon", "teaspoons", "tsp", "pound", "pounds", "lb", "lbs", "ounce",
	"ounces", "oz", "gram", "grams", "g", "kilogram", "kilograms", "kg", "ml",
	"milliliter", "milliliters", "liter", "liters", "l", "quart", "quarts",
	"qt", "pint", "pints", "pt", "gallon", "gallons", "gal", "pinch",
	"pinches", "dash", "dashes", "bunch", "bunches", "clove", "cloves",
	"slice", "slices", "piece", "pieces", "drop", "drops", "handful",
	"handfuls", "stick", "sticks", "package", "packages", "pack", "packs",
	"can", "cans", "jar", "jars", "bottle", "bottles", "container",
	"containers", "box", "boxes", "inch", "inches", "in", "sprig", "sprigs",
	"head", "heads", "stalk", "stalks", "envelope", "envelopes",
}

var prepTerms = []string{
	"diced", "chopped", "minced", "sliced", "grated", "shredded", "peeled",
	"crushed", "mashed", "boiled", "steamed", "roasted", "baked", "fried",
	"sauteed", "grilled", "broiled", "poached", "cored", "seeded", "pitted",
	"trimmed", "washed", "cleaned", "rinsed", "dried", "deveined", "deboned",
	"skinless", "boneless", "thawed", "frozen", "melted", "softened", "cold",
	"hot", "warm", "fresh", "ground", "powdered", "whole", "halved",
	"quartered", "cubed", "julienned", "torn", "crumbled", "cooked", "raw",
	"uncooked", "beaten", "whisked", "mixed", "drained", "cut", "divided",
}

var descriptors = []string{
	"canned", "large", "small", "medium", "finely", "coarsely", "thinly",
	"roughly", "freshly", "unsalted", "salted", "organic", "extra", "virgin",
	"low-fat", "fat-free", "reduced", "packed", "heaping", "level", "sifted",
	"rolled", "steel-cut", "instant", "condensed", "sweetened", "unsweetened",
	"light", "dark", "toasted", "smoked", "lightly", "very", "about",
	"approximately", "room", "temperature",
}

var fillerWords = []string{
	"of", "and", "or", "a", "an", "the", "to", "for", "into", "plus", "taste",
	"needed", "optional", "more", "such", "as", "if", "each", "few", "some",
	"your", "favorite", "x",
}

var compoundIngredients = []string{
	"olive oil", "vegetable oil", "canola oil", "sesame oil", "coconut oil",
	"peanut oil", "all purpose flour", "all-purpose flour", "cake flour",
	"bread flour", "whole wheat flour", "baking powder", "baking soda",
	"cream cheese", "sour cream", "heavy cream", "whipping cream",
	"tomato sauce", "tomato paste", "red wine", "white wine", "rice vinegar",
	"balsamic vinegar", "maple syrup", "vanilla extract", "almond extract",
	"chicken broth", "beef broth", "vegetable broth", "soy sauce",
	"fish sauce", "worcestershire sauce", "hot sauce", "lime juice",
	"lemon juice", "orange juice", "bell pepper", "green onion", "green bean",
	"brown sugar", "powdered sugar", "confectioners sugar", "peanut butter",
	"cream of tartar", "whipped cream", "coconut milk", "almond milk",
	"buttermilk", "sea salt", "kosher salt", "black pepper", "red pepper",
}

var importantIngredients = []string{
	"chicken", "beef", "pork", "lamb", "turkey", "fish", "salmon", "tuna",
	"shrimp", "tofu", "rice", "pasta", "noodle", "bread", "potato", "bean",
	"lentil", "quinoa", "egg", "flour", "sugar", "butter", "oil", "milk",
	"cream", "yogurt", "cheese", "onion", "garlic", "tomato", "carrot",
	"celery", "pepper", "lettuce", "spinach", "broccoli", "cauliflower",
	"corn", "pea", "mushroom", "avocado", "cucumber", "apple", "banana",
	"orange", "lemon", "lime", "berry", "strawberry", "blueberry",
	"chocolate", "vanilla", "cinnamon", "nutmeg", "ginger", "cumin", "curry",
	"basil", "oregano", "thyme", "rosemary", "cilantro", "parsley", "mint",
	"salt",
}

// Cleaner 將原始食材字串轉為標準食材名稱
type Cleaner struct {
	drop      map[string]bool
	important map[string]bool
	compounds []string
}

// NewCleaner 建立食材清理器
func NewCleaner() *Cleaner {
	c := &Cleaner{
		drop:      make(map[string]bool),
		important: make(map[string]bool, len(importantIngredients)),
		compounds: compoundIngredients,
	}
	for _, list := range [][]string{units, prepTerms, descriptors, fillerWords} {
		for _, w := range list {
			c.drop[w] = true
		}
	}
	for _, w := range importantIngredients {
		c.important[w] = true
	}
	return c
}

// Clean 清理整份食材清單，去除空白結果與重複項目並保留順序
func (c *Cleaner) Clean(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		name := c.CleanOne(r)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// CleanOne 清理單一食材字串，例如 "2 cups chopped fresh spinach (packed)" -> "spinach"
//
// 優先回傳複合食材，其次是第一個主要食材，否則取最長的詞。
func (c *Cleaner) CleanOne(raw string) string {
	s := parenthetical.ReplaceAllString(strings.ToLower(raw), " ")
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	s = nlu.NormalizeTerm(s)
	if s == "" {
		return ""
	}

	for _, compound := range c.compounds {
		if nlu.ContainsPhrasePlural(s, compound) {
			return compound
		}
	}

	var words []string
	for _, w := range strings.Fields(s) {
		if c.drop[w] || !hasLetter(w) {
			continue
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return ""
	}

	for _, w := range words {
		if base, ok := c.importantForm(w); ok {
			return base
		}
	}
	longest := words[0]
	for _, w := range words[1:] {
		if len(w) > len(longest) {
			longest = w
		}
	}
	return longest
}

// importantForm 比對主要食材表，接受 "eggs"、"tomatoes"、"berries" 這類複數形
func (c *Cleaner) importantForm(w string) (string, bool) {
	if c.important[w] {
		return w, true
	}
	candidates := make([]string, 0, 3)
	if strings.HasSuffix(w, "ies") {
		candidates = append(candidates, strings.TrimSuffix(w, "ies")+"y")
	}
	if strings.HasSuffix(w, "es") {
		candidates = append(candidates, strings.TrimSuffix(w, "es"))
	}
	if strings.HasSuffix(w, "s") {
		candidates = append(candidates, strings.TrimSuffix(w, "s"))
	}
	for _, base := range candidates {
		if c.important[base] {
			return base, true
		}
	}
	return "", false
}

func hasLetter(w string) bool {
	return strings.IndexFunc(w, unicode.IsLetter) >= 0
}
