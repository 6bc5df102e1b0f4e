// Package diet defines the dietary preference taxonomy: the keywords that
// signal a preference in a query and the ingredients each preference forbids.
package diet

// Tag 飲食偏好標籤
type Tag string

const (
	Vegetarian  Tag = "vegetarian"
	Vegan       Tag = "vegan"
	Pescatarian Tag = "pescatarian"
	GlutenFree  Tag = "gluten_free"
	DairyFree   Tag = "dairy_free"
	NutFree     Tag = "nut_free"
	LowCarb     Tag = "low_carb"
	Halal       Tag = "halal"
)

// Label 回傳適合顯示給使用者的名稱
func (t Tag) Label() string {
	switch t {
	case GlutenFree:
		return "gluten-free"
	case DairyFree:
		return "dairy-free"
	case NutFree:
		return "nut-free"
	case LowCarb:
		return "low-carb"
	default:
		return string(t)
	}
}

// Preference 單一飲食偏好的定義
type Preference struct {
	Tag       Tag
	Keywords  []string // 出現在查詢中即表示此偏好
	Forbidden []string // 食譜含有任一項即不符合
}

// Taxonomy 有序的飲食偏好表
type Taxonomy []Preference

// Lookup 依標籤取得定義
func (t Taxonomy) Lookup(tag Tag) (Preference, bool) {
	for _, p := range t {
		if p.Tag == tag {
			return p, true
		}
	}
	return Preference{}, false
}

// Tags 依表格順序回傳所有標籤
func (t Taxonomy) Tags() []Tag {
	tags := make([]Tag, 0, len(t))
	for _, p := range t {
		tags = append(tags, p.Tag)
	}
	return tags
}

// Keywords 回傳所有偏好關鍵字，用於判斷片語是否為飲食用語
func (t Taxonomy) Keywords() []string {
	var out []string
	for _, p := range t {
		out = append(out, p.Keywords...)
	}
	return out
}

// Parse 將外部輸入（例如 "gluten-free"）轉為標籤
func (t Taxonomy) Parse(s string) (Tag, bool) {
	for _, p := range t {
		if string(p.Tag) == s || p.Tag.Label() == s {
			return p.Tag, true
		}
	}
	return "", false
}

var meat = []string{
	"chicken", "beef", "pork", "lamb", "bacon", "ham", "turkey", "veal",
	"duck", "goose", "venison", "bison", "rabbit", "gelatin", "lard",
	"tallow", "suet", "meat", "prosciutto", "salami", "pepperoni",
	"hot dog", "sausage", "chorizo", "pancetta", "steak", "mutton",
}

var seafood = []string{
	"fish", "salmon", "tuna", "cod", "tilapia", "anchovy", "anchovies",
	"shrimp", "prawn", "crab", "lobster", "clam", "mussel", "squid",
	"octopus", "scallop", "oyster", "fish sauce",
}

var dairy = []string{
	"milk", "cream", "butter", "cheese", "yogurt", "dairy", "whey",
	"casein", "lactose", "ghee", "ice cream", "custard", "sour cream",
	"cream cheese", "cottage cheese", "ricotta", "mozzarella", "parmesan",
	"cheddar", "brie", "feta", "gouda", "buttermilk", "half-and-half",
	"kefir",
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// DefaultTaxonomy 預設的飲食偏好表
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		{
			Tag: Vegetarian,
			Keywords: []string{
				"vegetarian", "veggie", "no meat", "meatless", "meat-free",
				"meat free", "lacto ovo", "lacto-ovo",
			},
			Forbidden: concat(meat, seafood),
		},
		{
			Tag: Vegan,
			Keywords: []string{
				"vegan", "plant-based", "plant based", "no animal",
				"no animal products", "animal-free",
			},
			Forbidden: concat(meat, seafood, dairy, []string{
				"egg", "honey", "mayo", "mayonnaise",
			}),
		},
		{
			Tag: Pescatarian,
			Keywords: []string{
				"pescatarian", "pescetarian", "pesco-vegetarian",
			},
			Forbidden: meat,
		},
		{
			Tag: GlutenFree,
			Keywords: []string{
				"gluten-free", "gluten free", "no gluten", "without gluten",
				"gluten-less", "celiac", "wheat-free", "wheat free",
			},
			Forbidden: []string{
				"wheat", "barley", "rye", "triticale", "spelt", "kamut",
				"farina", "semolina", "flour", "bread", "pasta", "couscous",
				"bulgur", "seitan", "cracker", "cake", "cookie", "pastry",
				"cereal", "beer", "malt", "soy sauce", "breadcrumb",
			},
		},
		{
			Tag: DairyFree,
			Keywords: []string{
				"dairy-free", "dairy free", "no dairy", "without dairy",
				"lactose-free", "lactose free", "non-dairy",
			},
			Forbidden: dairy,
		},
		{
			Tag: NutFree,
			Keywords: []string{
				"nut-free", "nut free", "no nuts", "without nuts",
				"peanut-free", "tree nut free", "nut allergy",
			},
			Forbidden: []string{
				"almond", "cashew", "walnut", "pecan", "pistachio",
				"hazelnut", "peanut", "pine nut", "macadamia", "brazil nut",
				"chestnut", "nut", "nut butter", "marzipan", "nougat",
				"praline", "gianduja",
			},
		},
		{
			Tag: LowCarb,
			Keywords: []string{
				"low-carb", "low carb", "keto", "ketogenic", "keto-friendly",
				"low carbohydrate", "low-carbohydrate", "no carbs",
			},
			Forbidden: []string{
				"sugar", "pasta", "rice", "potato", "bread", "flour", "corn",
				"noodle", "tortilla",
			},
		},
		{
			Tag: Halal,
			Keywords: []string{
				"halal", "zabiha", "dhabiha",
			},
			Forbidden: []string{
				"pork", "bacon", "ham", "lard", "prosciutto", "pancetta",
				"gelatin", "wine", "beer", "rum", "bourbon", "brandy",
			},
		},
	}
}
