package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase and punctuation", "Find Recipes with Chicken!", "find recipes with chicken"},
		{"keeps compound hyphen", "Gluten-Free pasta", "gluten-free pasta"},
		{"drops loose hyphen", "pasta - no cheese", "pasta no cheese"},
		{"keeps commas", "chicken ,rice,  beans", "chicken, rice, beans"},
		{"drops edge commas", ", chicken,, rice ,", "chicken, rice"},
		{"deletes apostrophes", "I don't want nuts", "i dont want nuts"},
		{"folds accents", "Jalapeño crème brûlée", "jalapeno creme brulee"},
		{"collapses whitespace", "  chicken \t\n rice  ", "chicken rice"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preprocess(tt.in))
		})
	}
}

func TestPreprocessIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-zA-Z0-9éñüÉ ,.'!?&-]{0,40}`).Draw(t, "text")
		once := Preprocess(s)
		if twice := Preprocess(once); twice != once {
			t.Fatalf("Preprocess(%q) = %q, again = %q", s, once, twice)
		}
	})
}

func TestTokenizeSegments(t *testing.T) {
	tok := tokenize(Preprocess("chicken, green onion and rice"))
	assert.Equal(t, []string{"chicken", "green", "onion", "and", "rice"}, tok.words)
	assert.Equal(t, []int{0, 1, 1, 1, 1}, tok.segment)
	assert.False(t, tok.sameSegment(0, 2))
	assert.True(t, tok.sameSegment(1, 5))
	assert.Equal(t, "green onion", tok.phrase(1, 3))

	assert.Equal(t, []string{"gluten-free", "bread"}, Tokenize("Gluten-free, bread."))
}

func TestContainsPhrase(t *testing.T) {
	assert.True(t, ContainsPhrase("green onion", "onion"))
	assert.True(t, ContainsPhrase("chicken and rice", "chicken"))
	assert.False(t, ContainsPhrase("chickpeas", "chick"))
	assert.False(t, ContainsPhrase("pineapple", "apple"))
	assert.False(t, ContainsPhrase("rice", ""))

	assert.True(t, ContainsPhrasePlural("roasted potatoes", "potato"))
	assert.True(t, ContainsPhrasePlural("two eggs", "egg"))
	assert.False(t, ContainsPhrase("two eggs", "egg"))
	assert.False(t, ContainsPhrasePlural("eggplant", "egg"))
}
