package nlu

// DefaultAliases 常見食材別名，值為標準名稱
//
// 別名只在標準名稱存在於詞彙表時生效。
func DefaultAliases() map[string]string {
	return map[string]string{
		// 肉類
		"chicken breast": "chicken",
		"chicken thigh":  "chicken",
		"chicken leg":    "chicken",
		"chicken wing":   "chicken",
		"poultry":        "chicken",
		"ground beef":    "beef",
		"steak":          "beef",
		"hamburger":      "beef",
		"stewing beef":   "beef",
		"ham":            "pork",
		"pork chop":      "pork",
		"hotdog":         "sausage",
		"bratwurst":      "sausage",
		"kielbasa":       "sausage",
		"mutton":         "lamb",
		"prawn":          "shrimp",
		"prawns":         "shrimp",
		"scallops":       "scallop",
		"mussels":        "mussel",
		"clams":          "clam",
		"oysters":        "oyster",

		// 穀物
		"brown rice":   "rice",
		"white rice":   "rice",
		"jasmine rice": "rice",
		"basmati rice": "rice",
		"arborio rice": "rice",
		"spaghetti":    "pasta",
		"penne":        "pasta",
		"linguine":     "pasta",
		"fettuccine":   "pasta",
		"macaroni":     "pasta",
		"noodle":       "noodles",
		"ramen":        "noodles",
		"udon":         "noodles",
		"oatmeal":      "oats",

		// 蔬菜
		"potato":        "potatoes",
		"spud":          "potatoes",
		"sweet potato":  "sweet potatoes",
		"yam":           "yams",
		"tomato":        "tomatoes",
		"roma":          "tomatoes",
		"cherry tomato": "tomatoes",
		"onion":         "onions",
		"scallion":      "scallions",
		"green onion":   "scallions",
		"green onions":  "scallions",
		"carrot":        "carrots",
		"bell pepper":   "bell peppers",
		"capsicum":      "bell peppers",
		"chili":         "chili peppers",
		"chili pepper":  "chili peppers",
		"jalapenos":     "jalapeno",
		"romaine":       "lettuce",
		"maize":         "corn",
		"courgette":     "zucchini",
		"aubergine":     "eggplant",

		// 豆類
		"bean":     "beans",
		"chickpea": "chickpeas",
		"garbanzo": "chickpeas",
		"lentil":   "lentils",
		"pea":      "peas",

		// 乳製品
		"half and half": "cream",
		"cheddar":       "cheddar cheese",
		"mozzarella":    "mozzarella cheese",
		"parmesan":      "parmesan cheese",
		"feta":          "feta cheese",
		"gouda":         "gouda cheese",
		"brie":          "brie cheese",
		"yoghurt":       "yogurt",

		// 蛋白質與水果
		"egg":        "eggs",
		"apple":      "apples",
		"banana":     "bananas",
		"orange":     "oranges",
		"lemon":      "lemons",
		"lime":       "limes",
		"strawberry": "strawberries",
		"blueberry":  "blueberries",
		"raspberry":  "raspberries",
		"blackberry": "blackberries",
		"grape":      "grapes",
		"avocado":    "avocados",

		// 香料
		"coriander": "cilantro",
		"pepper":    "black pepper",
		"cayenne":   "cayenne pepper",

		// 烘焙
		"all purpose flour":   "flour",
		"all-purpose flour":   "flour",
		"wheat flour":         "flour",
		"granulated sugar":    "sugar",
		"icing sugar":         "powdered sugar",
		"confectioners sugar": "powdered sugar",
		"cocoa":               "cocoa powder",
		"vanilla":             "vanilla extract",
	}
}
