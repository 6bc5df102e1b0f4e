package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecipes() []Recipe {
	return []Recipe{
		{
			ID: "1", Name: "Chicken Fried Rice",
			CleanedIngredients: []string{"chicken", "rice", "eggs", "soy sauce", "green onion"},
			Description:        "A quick weeknight dinner",
		},
		{
			ID: "2", Name: "Bacon Pasta",
			CleanedIngredients: []string{"pasta", "bacon", "cheese", "garlic"},
			Description:        "Creamy pasta",
		},
		{
			ID: "3", Name: "Vegetable Stir Fry",
			CleanedIngredients: []string{"broccoli", "carrot", "soy sauce", "garlic", "rice"},
			Tags:               []string{"vegetarian", "quick"},
		},
		{
			ID: "4", Name: "Chicken and Rice Soup",
			CleanedIngredients: []string{"chicken", "rice", "carrot", "celery", "onion"},
			Description:        "Hearty soup for dinner",
		},
		{
			ID: "5", Name: "Chocolate Cake",
			CleanedIngredients: []string{"flour", "sugar", "cocoa", "eggs", "butter"},
			Tags:               []string{"dessert"},
		},
		{
			ID: "6", Name: "Grilled Salmon",
			CleanedIngredients: []string{"salmon", "lemon", "olive oil"},
			Instructions:       []string{"Grill the salmon for 10 minutes"},
		},
	}
}

func TestNewCorpus(t *testing.T) {
	c := NewCorpus(testRecipes())

	assert.Equal(t, 6, c.Len())
	assert.True(t, c.Ready())
	assert.True(t, c.Vocabulary().Contains("soy sauce"))
	assert.Equal(t, 20, c.Vocabulary().Len())

	r, ok := c.ByID("4")
	require.True(t, ok)
	assert.Equal(t, "Chicken and Rice Soup", r.Name)
	_, ok = c.ByID("missing")
	assert.False(t, ok)

	assert.False(t, c.HasField(FieldCategory))
	assert.False(t, c.HasField(FieldKeywords))
	assert.Equal(t, []Field{FieldName, FieldTags, FieldDescription, FieldInstructions}, c.SearchFields())
}

func TestCorpusCopiesInput(t *testing.T) {
	recipes := testRecipes()
	c := NewCorpus(recipes)
	recipes[0].Name = "changed"
	assert.Equal(t, "Chicken Fried Rice", c.At(0).Name)
}

func TestCorpusWithCategoryField(t *testing.T) {
	c := NewCorpus([]Recipe{
		{ID: "a", Name: "Lemon Bars", Category: "Dessert", CleanedIngredients: []string{"lemon"}},
		{ID: "b", Name: "Cake Pops", CleanedIngredients: []string{"cake"}},
	})
	assert.Equal(t, []Field{FieldCategory}, c.SearchFields())
}

func TestCorpusNotReady(t *testing.T) {
	assert.False(t, NewCorpus(nil).Ready())
	assert.False(t, NewCorpus([]Recipe{{ID: "1", Name: "Toast"}}).Ready())

	var c *Corpus
	assert.False(t, c.Ready())
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Vocabulary().Len())
}
