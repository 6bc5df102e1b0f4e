package diet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  Tag
		want string
	}{
		{Vegetarian, "vegetarian"},
		{Vegan, "vegan"},
		{Pescatarian, "pescatarian"},
		{GlutenFree, "gluten-free"},
		{DairyFree, "dairy-free"},
		{NutFree, "nut-free"},
		{LowCarb, "low-carb"},
		{Halal, "halal"},
	}
	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tag.Label())
		})
	}
}

func TestTaxonomyParse(t *testing.T) {
	t.Parallel()

	tax := DefaultTaxonomy()
	tests := []struct {
		in   string
		want Tag
		ok   bool
	}{
		{"vegetarian", Vegetarian, true},
		{"gluten_free", GlutenFree, true},
		{"gluten-free", GlutenFree, true},
		{"dairy-free", DairyFree, true},
		{"low_carb", LowCarb, true},
		{"low-carb", LowCarb, true},
		{"halal", Halal, true},
		{"keto", "", false},
		{"Vegan", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := tax.Parse(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaxonomyLookupAndTags(t *testing.T) {
	t.Parallel()

	tax := DefaultTaxonomy()
	assert.Equal(t, []Tag{Vegetarian, Vegan, Pescatarian, GlutenFree, DairyFree, NutFree, LowCarb, Halal}, tax.Tags())

	pref, ok := tax.Lookup(Pescatarian)
	require.True(t, ok)
	assert.Contains(t, pref.Forbidden, "bacon")
	assert.NotContains(t, pref.Forbidden, "salmon")

	vegan, ok := tax.Lookup(Vegan)
	require.True(t, ok)
	assert.Subset(t, vegan.Forbidden, []string{"chicken", "shrimp", "cheese", "egg", "honey"})

	_, ok = tax.Lookup(Tag("paleo"))
	assert.False(t, ok)

	var empty Taxonomy
	assert.Empty(t, empty.Tags())
	assert.Empty(t, empty.Keywords())
}

func TestTaxonomyKeywords(t *testing.T) {
	t.Parallel()

	kws := DefaultTaxonomy().Keywords()
	assert.Contains(t, kws, "plant-based")
	assert.Contains(t, kws, "keto")
	assert.Contains(t, kws, "no nuts")
}
