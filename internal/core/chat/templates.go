package chat

import (
	"fmt"
	"strings"
)

const (
	welcomeMessage = "👨‍🍳 Welcome to Recipe Bot! 👩‍🍳\n\n" +
		"I can help you find recipes based on ingredients you have or want to use.\n" +
		"You can also specify dietary preferences (vegetarian, vegan, gluten-free, etc.)\n" +
		"and ingredients you want to exclude.\n\n" +
		"For example, try:\n" +
		"- 'Find recipes with chicken and rice'\n" +
		"- 'I want vegetarian pasta dishes'\n" +
		"- 'What can I make with potatoes but no meat?'\n" +
		"- 'Show me gluten-free desserts'\n\n" +
		"Type 'help' for more information or 'quit' to exit."

	helpMessage = "📚 Recipe Bot Help 📚\n\n" +
		"- Search for recipes by listing ingredients:\n" +
		"  'Find recipes with eggs and cheese'\n\n" +
		"- Exclude ingredients you don't want:\n" +
		"  'I want pasta recipes without mushrooms'\n\n" +
		"- Specify dietary preferences:\n" +
		"  'Show me vegetarian dinner ideas'\n" +
		"  (Supported: vegetarian, vegan, pescatarian, gluten-free, dairy-free, nut-free, low-carb, halal)\n\n" +
		"- Search by meal type or category:\n" +
		"  'Find dessert recipes' or 'Show me breakfast ideas'\n" +
		"  (Supported: breakfast, lunch, dinner, dessert, appetizer, soup, salad, etc.)\n\n" +
		"- Combine search criteria:\n" +
		"  'Show me gluten-free desserts with chocolate'\n\n" +
		"- Get recipe details:\n" +
		"  After seeing search results, type the recipe number\n" +
		"  or 'Show me recipe #3'\n\n" +
		"- Browse results:\n" +
		"  'more' or 'next' for the next page, 'back' for the previous one\n\n" +
		"- Other commands:\n" +
		"  'help' - Display this help message\n" +
		"  'quit' - Exit the chatbot"

	notFoundMessage = "😕 I couldn't find any matching recipes.\n\n" +
		"Try with different ingredients or dietary preferences, or be more general in your request.\n" +
		"For example: 'Find recipes with chicken' or 'Show me vegetarian meals'"

	noInputMessage   = "Please tell me what ingredients you'd like to use or what kind of recipe you're looking for."
	errorMessage     = "Sorry, I encountered an error processing your request. Please try again."
	goodbyeMessage   = "Thank you for using Recipe Bot! Happy cooking! 👨‍🍳👩‍🍳"
	noResultsYet     = "Please search for recipes first, then pick one by its number."
	noMorePages      = "That's all the recipes I found."
	firstPageAlready = "You're already on the first page of results."
)

// maxKeyIngredients 清單中每道食譜列出的食材數量
const maxKeyIngredients = 5

// Welcome 歡迎訊息
func Welcome() string {
	return welcomeMessage
}

func renderList(recipes []RecipeSummary, total, page, totalPages int) string {
	if len(recipes) == 0 {
		return notFoundMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Found %d recipes", total)
	if totalPages > 1 {
		fmt.Fprintf(&b, " (page %d of %d)", page, totalPages)
	}
	b.WriteString(":\n\n")

	for _, r := range recipes {
		fmt.Fprintf(&b, "%d. %s", r.Number, r.Name)
		if r.Rating > 0 {
			fmt.Fprintf(&b, " ⭐ %g", r.Rating)
		}
		if r.CookTime != "" {
			fmt.Fprintf(&b, " (Time: %s)", r.CookTime)
		}
		if len(r.KeyIngredients) > 0 {
			b.WriteString("\n   Key ingredients: ")
			b.WriteString(strings.Join(r.KeyIngredients, ", "))
			if r.MoreIngredients {
				b.WriteString(", ... and more")
			}
		}
		b.WriteString("\n\n")
	}

	b.WriteString("To view the details of a recipe, enter its number or say 'Show me recipe #X'")
	if page < totalPages {
		b.WriteString("\nType 'more' to see more recipes.")
	}
	return b.String()
}

func renderDetail(r *RecipeDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ %s\n\n", r.Name)
	if r.Rating > 0 {
		fmt.Fprintf(&b, "⭐ %g\n", r.Rating)
	}
	if r.CookTime != "" {
		fmt.Fprintf(&b, "⏲️ %s\n", r.CookTime)
	}
	if r.Category != "" {
		fmt.Fprintf(&b, "🍽️ Category: %s\n", r.Category)
	}
	if r.Description != "" {
		fmt.Fprintf(&b, "%s\n", r.Description)
	}

	b.WriteString("\n🧾 Ingredients:\n")
	for _, ingr := range r.Ingredients {
		fmt.Fprintf(&b, "  • %s\n", ingr)
	}

	b.WriteString("\n📝 Instructions:\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}

	if r.URL != "" {
		fmt.Fprintf(&b, "\n🔗 Source: %s", r.URL)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderIndexOutOfRange(number, total int) string {
	if total == 0 {
		return noResultsYet
	}
	return fmt.Sprintf("Sorry, there is no recipe #%d. Please choose a number between 1 and %d.", number, total)
}

func renderNameNotFound(name string) string {
	return fmt.Sprintf("Sorry, I couldn't find a recipe called '%s'.", name)
}
