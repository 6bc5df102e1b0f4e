package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultRules().Intents)

	tests := []struct {
		in     string
		intent Intent
		index  *int
		name   string
	}{
		{in: "quit", intent: IntentQuit},
		{in: "ok bye", intent: IntentQuit},
		{in: "close the chat", intent: IntentQuit},
		{in: "help", intent: IntentHelp},
		{in: "how does this work", intent: IntentHelp},
		{in: "what can i do", intent: IntentHelp},
		{in: "3", intent: IntentRecipeDetails, index: intPtr(2)},
		{in: "0", intent: IntentRecipeDetails, index: intPtr(-1)},
		{in: "show me recipe 3", intent: IntentRecipeDetails, index: intPtr(2)},
		{in: "recipe 12", intent: IntentRecipeDetails, index: intPtr(11)},
		{in: "number 1", intent: IntentRecipeDetails, index: intPtr(0)},
		{in: "the 2nd one", intent: IntentRecipeDetails, index: intPtr(1)},
		{in: "the second one", intent: IntentRecipeDetails, index: intPtr(1)},
		{in: "tell me about chicken curry", intent: IntentRecipeDetails, name: "chicken curry"},
		{in: "ingredients for the pad thai please", intent: IntentRecipeDetails, name: "pad thai"},
		{in: "how do i make lasagna", intent: IntentRecipeDetails, name: "lasagna"},
		{in: "how do i make something with chicken", intent: IntentFindRecipe},
		{in: "how do i make pasta without cheese", intent: IntentFindRecipe},
		{in: "what can i do with chicken", intent: IntentFindRecipe},
		{in: "find chicken recipes", intent: IntentFindRecipe},
		{in: "chicken, rice", intent: IntentFindRecipe},
		{in: "", intent: IntentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := c.Classify(Preprocess(tt.in))
			assert.Equal(t, tt.intent, got.Intent)
			if tt.index == nil {
				assert.Nil(t, got.RecipeIndex)
			} else {
				require.NotNil(t, got.RecipeIndex)
				assert.Equal(t, *tt.index, *got.RecipeIndex)
			}
			assert.Equal(t, tt.name, got.RecipeName)
		})
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	// 規則順序調換後仍由第一個命中的規則決定
	rules := DefaultRules().Intents
	reordered := append([]IntentRule{rules[1], rules[0]}, rules[2:]...)
	c := NewClassifier(reordered)

	assert.Equal(t, IntentQuit, c.Classify("bye").Intent)
	assert.Equal(t, IntentHelp, c.Classify("help").Intent)

	custom := NewClassifier([]IntentRule{{Intent: IntentHelp, Patterns: quitPatterns}})
	assert.Equal(t, IntentHelp, custom.Classify("quit").Intent)
}

func TestCleanRecipeName(t *testing.T) {
	assert.Equal(t, "beef stew", cleanRecipeName("the recipe for beef stew please"))
	assert.Equal(t, "tacos", cleanRecipeName(" a tacos dish "))
	assert.False(t, plausibleRecipeName("something"))
	assert.False(t, plausibleRecipeName("dinner with rice"))
	assert.True(t, plausibleRecipeName("chicken curry"))
}
