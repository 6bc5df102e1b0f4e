package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCleanOne(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"2 cups chopped fresh spinach (packed)", "spinach"},
		{"3 tablespoons extra virgin olive oil", "olive oil"},
		{"1 lb boneless skinless chicken breasts, cut into strips", "chicken"},
		{"Salt and pepper to taste", "salt"},
		{"1 (15 ounce) can black beans, drained", "bean"},
		{"4 large eggs", "egg"},
		{"3 cloves garlic, minced", "garlic"},
		{"1 medium red onion, finely chopped", "onion"},
		{"1 cup shredded mozzarella cheese", "cheese"},
		{"2 1/4 cups all-purpose flour", "all-purpose flour"},
		{"1/2 cup grated parmesan cheese plus more for garnish", "cheese"},
		{"Jalapeño peppers", "pepper"},
		{"2 green onions, sliced", "green onion"},
		{"2 cups fresh blueberries", "blueberry"},
		{"1/4 cup kalamata olives", "kalamata"},
		{"2 1/2 cups", ""},
		{"", ""},
	}

	c := NewCleaner()
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.CleanOne(tt.raw))
		})
	}
}

func TestCleanDedupesAndKeepsOrder(t *testing.T) {
	t.Parallel()

	got := NewCleaner().Clean([]string{"1 cup rice", "2 eggs", "", "3 eggs, beaten", "1 tsp"})
	assert.Equal(t, []string{"rice", "egg"}, got)
}

func TestCleanNeverReturnsEmptyNames(t *testing.T) {
	t.Parallel()

	c := NewCleaner()
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.StringMatching(`[0-9a-zA-Z /(),-]{0,30}`), 0, 8).Draw(t, "raw")
		seen := map[string]bool{}
		for _, name := range c.Clean(raw) {
			if name == "" {
				t.Fatalf("empty ingredient name from %q", raw)
			}
			if seen[name] {
				t.Fatalf("duplicate ingredient %q from %q", name, raw)
			}
			seen[name] = true
		}
	})
}

func TestSample(t *testing.T) {
	t.Parallel()

	recipes := Sample()
	assert.Len(t, recipes, len(sampleRecipes))
	for _, r := range recipes {
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.CleanedIngredients, r.Name)
	}
	assert.Contains(t, recipes[0].CleanedIngredients, "soy sauce")
	assert.Contains(t, recipes[0].CleanedIngredients, "egg")
	assert.Contains(t, recipes[0].CleanedIngredients, "chicken")

	// 修改回傳值不影響內建資料
	recipes[0].Tags[0] = "changed"
	assert.Equal(t, "dinner", Sample()[0].Tags[0])
}
