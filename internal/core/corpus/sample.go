package corpus

import "recipe-bot/internal/core/recipe"

var sampleRecipes = []recipe.Recipe{
	{
		ID:   "1",
		Name: "Chicken Fried Rice",
		RawIngredients: []string{
			"2 cups cooked white rice", "1 lb boneless chicken breast, diced",
			"2 large eggs, beaten", "3 tablespoons soy sauce",
			"1 cup frozen peas", "2 green onions, sliced", "1 tablespoon vegetable oil",
		},
		Instructions: []string{
			"Heat the oil in a wok and cook the chicken until golden.",
			"Push the chicken aside and scramble the eggs.",
			"Add rice, peas and soy sauce and stir fry for 3 minutes.",
			"Top with green onions.",
		},
		Description: "A quick weeknight dinner ready in 20 minutes.",
		Tags:        []string{"dinner", "quick", "asian"},
		Cuisine:     "Chinese",
		CookTime:    "20 min",
		Rating:      4.5,
	},
	{
		ID:   "2",
		Name: "Spaghetti Carbonara",
		RawIngredients: []string{
			"12 oz spaghetti", "4 slices bacon, chopped", "3 eggs",
			"1 cup grated parmesan cheese", "2 cloves garlic, minced", "black pepper to taste",
		},
		Instructions: []string{
			"Cook the spaghetti in salted water.",
			"Fry the bacon with the garlic.",
			"Toss the hot pasta with eggs, cheese and bacon off the heat.",
		},
		Description: "Classic Roman pasta for dinner.",
		Tags:        []string{"dinner", "pasta", "italian"},
		Cuisine:     "Italian",
		CookTime:    "25 min",
		Rating:      4.7,
	},
	{
		ID:   "3",
		Name: "Vegetable Stir Fry",
		RawIngredients: []string{
			"2 cups broccoli florets", "1 red bell pepper, sliced", "2 carrots, julienned",
			"2 tablespoons soy sauce", "1 tablespoon sesame oil", "3 cloves garlic",
			"1 cup cooked brown rice",
		},
		Instructions: []string{
			"Stir fry the vegetables in sesame oil over high heat.",
			"Add garlic and soy sauce and serve over rice.",
		},
		Description: "Fast and healthy vegetarian meal.",
		Tags:        []string{"vegetarian", "vegan", "quick", "healthy"},
		Cuisine:     "Asian",
		CookTime:    "15 min",
		Rating:      4.2,
	},
	{
		ID:   "4",
		Name: "Chicken and Rice Soup",
		RawIngredients: []string{
			"1 lb chicken thighs", "1 cup long grain rice", "2 carrots, diced",
			"2 celery stalks, diced", "1 onion, chopped", "6 cups chicken broth",
		},
		Instructions: []string{
			"Simmer the chicken in broth for 20 minutes, then shred.",
			"Add vegetables and rice and cook until tender.",
		},
		Description: "Hearty soup for cold nights.",
		Tags:        []string{"soup", "dinner", "comfort food"},
		Cuisine:     "American",
		CookTime:    "45 min",
		Rating:      4.6,
	},
	{
		ID:   "5",
		Name: "Chocolate Chip Cookies",
		RawIngredients: []string{
			"2 1/4 cups all-purpose flour", "1 cup unsalted butter, softened",
			"3/4 cup brown sugar", "2 eggs", "1 teaspoon vanilla extract",
			"2 cups chocolate chips", "1 teaspoon baking soda",
		},
		Instructions: []string{
			"Cream the butter and sugar, then beat in eggs and vanilla.",
			"Mix in flour and baking soda, fold in chocolate chips.",
			"Bake at 375F for 10 minutes.",
		},
		Description: "Chewy cookies for dessert.",
		Tags:        []string{"dessert", "baking"},
		Cuisine:     "American",
		CookTime:    "30 min",
		Rating:      4.9,
	},
	{
		ID:   "6",
		Name: "Grilled Salmon with Lemon",
		RawIngredients: []string{
			"2 salmon fillets", "1 lemon, sliced", "2 tablespoons olive oil",
			"1 teaspoon sea salt", "fresh dill",
		},
		Instructions: []string{
			"Brush the salmon with olive oil and season with salt.",
			"Grill for 4 minutes per side and serve with lemon and dill.",
		},
		Description: "Light and healthy seafood dinner.",
		Tags:        []string{"seafood", "grilled", "healthy", "gluten-free"},
		Cuisine:     "Mediterranean",
		CookTime:    "15 min",
		Rating:      4.4,
	},
	{
		ID:   "7",
		Name: "Peanut Noodle Salad",
		RawIngredients: []string{
			"8 oz rice noodles", "1/3 cup peanut butter", "2 tablespoons soy sauce",
			"1 cucumber, julienned", "1 carrot, shredded", "1/4 cup chopped peanuts",
			"2 tablespoons lime juice",
		},
		Instructions: []string{
			"Cook the noodles and rinse under cold water.",
			"Whisk peanut butter, soy sauce and lime juice.",
			"Toss everything together and top with peanuts.",
		},
		Description: "Cold noodle salad with a creamy peanut dressing.",
		Tags:        []string{"salad", "vegan", "lunch"},
		Cuisine:     "Thai",
		CookTime:    "20 min",
		Rating:      4.3,
	},
	{
		ID:   "8",
		Name: "Beef Tacos",
		RawIngredients: []string{
			"1 lb ground beef", "8 corn tortillas", "1 cup shredded cheddar cheese",
			"1 tomato, diced", "1 cup shredded lettuce", "1 packet taco seasoning",
		},
		Instructions: []string{
			"Brown the beef and stir in the seasoning.",
			"Fill the tortillas with beef, cheese, tomato and lettuce.",
		},
		Description: "Easy family dinner.",
		Tags:        []string{"dinner", "easy", "mexican"},
		Cuisine:     "Mexican",
		CookTime:    "20 min",
		Rating:      4.5,
	},
	{
		ID:   "9",
		Name: "Mushroom Risotto",
		RawIngredients: []string{
			"1 1/2 cups arborio rice", "8 oz mushrooms, sliced", "1 onion, finely chopped",
			"1/2 cup white wine", "4 cups vegetable broth", "1/2 cup parmesan cheese",
			"2 tablespoons butter",
		},
		Instructions: []string{
			"Saute the onion and mushrooms in butter.",
			"Toast the rice, add wine, then add broth a ladle at a time.",
			"Finish with parmesan.",
		},
		Description: "Creamy vegetarian risotto.",
		Tags:        []string{"vegetarian", "dinner", "italian"},
		Cuisine:     "Italian",
		CookTime:    "40 min",
		Rating:      4.6,
	},
	{
		ID:   "10",
		Name: "Greek Salad",
		RawIngredients: []string{
			"2 tomatoes, chopped", "1 cucumber, sliced", "1/2 red onion, sliced",
			"1/2 cup feta cheese", "1/4 cup kalamata olives", "2 tablespoons olive oil",
		},
		Instructions: []string{
			"Combine the vegetables and olives.",
			"Top with feta and drizzle with olive oil.",
		},
		Description: "Simple and fresh salad.",
		Tags:        []string{"salad", "vegetarian", "gluten-free", "easy"},
		Cuisine:     "Greek",
		CookTime:    "10 min",
		Rating:      4.4,
	},
	{
		ID:   "11",
		Name: "Banana Pancakes",
		RawIngredients: []string{
			"2 ripe bananas, mashed", "1 cup flour", "1 cup milk", "1 egg",
			"1 tablespoon sugar", "1 teaspoon baking powder",
		},
		Instructions: []string{
			"Whisk everything into a batter.",
			"Cook on a hot griddle until bubbles form, then flip.",
		},
		Description: "Fluffy breakfast pancakes.",
		Tags:        []string{"breakfast", "sweet"},
		Cuisine:     "American",
		CookTime:    "20 min",
		Rating:      4.8,
	},
	{
		ID:   "12",
		Name: "Lentil Curry",
		RawIngredients: []string{
			"1 cup red lentils", "1 can coconut milk", "1 onion, diced",
			"2 cloves garlic", "1 tablespoon curry powder", "1 can diced tomatoes",
			"2 cups spinach",
		},
		Instructions: []string{
			"Cook the onion, garlic and curry powder.",
			"Add lentils, tomatoes and coconut milk and simmer 25 minutes.",
			"Stir in the spinach.",
		},
		Description: "Spicy vegan curry.",
		Tags:        []string{"vegan", "gluten-free", "spicy", "dinner"},
		Cuisine:     "Indian",
		CookTime:    "35 min",
		Rating:      4.7,
	},
}

// Sample 回傳內建的範例食譜，食材已清理
func Sample() []recipe.Recipe {
	cleaner := NewCleaner()
	out := make([]recipe.Recipe, len(sampleRecipes))
	for i, r := range sampleRecipes {
		r.RawIngredients = append([]string(nil), r.RawIngredients...)
		r.Instructions = append([]string(nil), r.Instructions...)
		r.Tags = append([]string(nil), r.Tags...)
		r.CleanedIngredients = cleaner.Clean(r.RawIngredients)
		out[i] = r
	}
	return out
}
