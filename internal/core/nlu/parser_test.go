package nlu

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-bot/internal/core/diet"
)

func newTestParser() *Parser {
	return NewParser(NewResolver(testVocabulary(), DefaultAliases(), 0), nil)
}

func TestParseScenarios(t *testing.T) {
	p := newTestParser()

	t.Run("quit", func(t *testing.T) {
		q := p.Parse("quit")
		assert.Equal(t, IntentQuit, q.Intent)
		assert.Empty(t, q.IncludeIngredients)
	})

	t.Run("include", func(t *testing.T) {
		q := p.Parse("Find recipes with chicken and rice")
		assert.Equal(t, IntentFindRecipe, q.Intent)
		assert.Equal(t, []string{"chicken", "rice"}, q.IncludeIngredients)
		assert.Empty(t, q.ExcludeIngredients)
		assert.Empty(t, q.RecipeCategory)
	})

	t.Run("include and exclude", func(t *testing.T) {
		q := p.Parse("pasta recipes without cheese")
		assert.Equal(t, IntentFindRecipe, q.Intent)
		assert.Equal(t, []string{"pasta"}, q.IncludeIngredients)
		assert.Equal(t, []string{"cheese"}, q.ExcludeIngredients)
	})

	t.Run("exclusion list", func(t *testing.T) {
		q := p.Parse("pasta without eggs and cheese")
		assert.Equal(t, []string{"pasta"}, q.IncludeIngredients)
		assert.Equal(t, []string{"cheese", "eggs"}, q.ExcludeIngredients)

		q = p.Parse("I am allergic to peanuts and raisins")
		assert.Empty(t, q.IncludeIngredients)
		assert.Equal(t, []string{"peanuts", "raisins"}, q.ExcludeIngredients)
	})

	t.Run("selection", func(t *testing.T) {
		q := p.Parse("3")
		assert.Equal(t, IntentRecipeDetails, q.Intent)
		require.NotNil(t, q.RecipeIndex)
		assert.Equal(t, 2, *q.RecipeIndex)
		assert.Empty(t, q.IncludeIngredients)
	})

	t.Run("name", func(t *testing.T) {
		q := p.Parse("Tell me about the Salmon Teriyaki recipe")
		assert.Equal(t, IntentRecipeDetails, q.Intent)
		assert.Equal(t, "salmon teriyaki", q.RecipeName)
		assert.Nil(t, q.RecipeIndex)
	})
}

func TestParseDietaryAndCategory(t *testing.T) {
	p := newTestParser()

	q := p.Parse("Quick vegan, gluten-free dinner with mushrooms")
	assert.Equal(t, IntentFindRecipe, q.Intent)
	assert.Equal(t, []diet.Tag{diet.Vegan, diet.GlutenFree}, q.DietaryPreferences)
	assert.Equal(t, "quick dinner", q.RecipeCategory)
	assert.Equal(t, []string{"mushrooms"}, q.IncludeIngredients)
	assert.True(t, q.HasConstraints())

	q = p.Parse("nut-free desserts")
	assert.Equal(t, []diet.Tag{diet.NutFree}, q.DietaryPreferences)
	assert.Equal(t, "dessert", q.RecipeCategory)
	assert.Empty(t, q.IncludeIngredients)
}

func TestConstraints(t *testing.T) {
	p := newTestParser()

	in, ex := p.Constraints(
		[]string{"Chicken", "chiken ", "rice", "", "dragonfruit"},
		[]string{"RICE", "rice"},
	)
	assert.Equal(t, []string{"chicken", "dragonfruit"}, in)
	assert.Equal(t, []string{"rice"}, ex)

	in, ex = p.Constraints(nil, nil)
	assert.Equal(t, []string{}, in)
	assert.Equal(t, []string{}, ex)

	bare := NewParser(nil, nil)
	in, _ = bare.Constraints([]string{"Olive  Oil"}, nil)
	assert.Equal(t, []string{"olive oil"}, in)
}

func TestParseUnknown(t *testing.T) {
	p := newTestParser()
	for _, in := range []string{"", "   ", "?!", ",,,"} {
		q := p.Parse(in)
		assert.Equal(t, IntentUnknown, q.Intent, in)
		assert.NotNil(t, q.IncludeIngredients)
		assert.NotNil(t, q.ExcludeIngredients)
		assert.NotNil(t, q.DietaryPreferences)
		assert.False(t, q.HasConstraints())
	}
}

func TestParseRecoversFromPanic(t *testing.T) {
	rules := DefaultRules()
	rules.Intents = []IntentRule{{Intent: IntentFindRecipe, Patterns: []*regexp.Regexp{regexp.MustCompile(`.*`)}}}
	p := NewParser(nil, rules)

	// 缺少 resolver 時抽取食材會 panic
	q := p.Parse("chicken soup")
	assert.Equal(t, IntentUnknown, q.Intent)
	assert.Empty(t, q.IncludeIngredients)
}

func TestDetectDietary(t *testing.T) {
	p := newTestParser()
	assert.Equal(t, []diet.Tag{diet.Vegetarian}, p.DetectDietary("No meat please"))
	assert.Equal(t, []diet.Tag{diet.DairyFree, diet.LowCarb}, p.DetectDietary("keto and dairy free"))
	assert.Equal(t, []diet.Tag{}, p.DetectDietary("chicken"))
	assert.Equal(t, []diet.Tag{}, p.DetectDietary("veganism"))
}

func TestParsedQueryJSON(t *testing.T) {
	idx := 1
	q := ParsedQuery{
		Intent:             IntentRecipeDetails,
		IncludeIngredients: []string{},
		ExcludeIngredients: []string{},
		DietaryPreferences: []diet.Tag{diet.GlutenFree},
		RecipeIndex:        &idx,
	}
	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"intent": "get_recipe_details",
		"include_ingredients": [],
		"exclude_ingredients": [],
		"dietary_preferences": ["gluten_free"],
		"recipe_index": 1
	}`, string(data))
}
