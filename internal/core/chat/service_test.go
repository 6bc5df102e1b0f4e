package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-bot/internal/core/corpus"
	"recipe-bot/internal/core/nlu"
	"recipe-bot/internal/core/recipe"
	"recipe-bot/internal/core/session"
)

type recordingObserver struct {
	mu       sync.Mutex
	intents  []nlu.Intent
	searches int
}

func (o *recordingObserver) ObserveIntent(intent nlu.Intent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.intents = append(o.intents, intent)
}

func (o *recordingObserver) ObserveSearch(time.Duration, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.searches++
}

func newTestService(t *testing.T, opts ...Option) (*Service, session.Store) {
	t.Helper()

	c := recipe.NewCorpus(corpus.Sample())
	rules := nlu.DefaultRules()
	resolver := nlu.NewResolver(c.Vocabulary(), nlu.DefaultAliases(), nlu.DefaultFuzzyThreshold)
	store := session.NewMemoryStore(session.Options{}, clockwork.NewFakeClock())
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(
		nlu.NewParser(resolver, rules),
		recipe.NewMatcher(recipe.DefaultConfig(), rules),
		c,
		store,
		opts...,
	)
	return svc, store
}

func ids(recipes []RecipeSummary) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func numbers(recipes []RecipeSummary) []int {
	out := make([]int, len(recipes))
	for i, r := range recipes {
		out[i] = r.Number
	}
	return out
}

func TestWelcome(t *testing.T) {
	t.Parallel()
	assert.Contains(t, Welcome(), "Welcome to Recipe Bot")
}

func TestSearchThenSelectByNumber(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.ProcessMessage(ctx, "s1", "Find recipes with chicken and rice")
	require.NoError(t, err)
	assert.Equal(t, nlu.IntentFindRecipe, resp.Intent)
	require.NotNil(t, resp.Parsed)
	assert.Equal(t, []string{"chicken", "rice"}, resp.Parsed.IncludeIngredients)
	assert.ElementsMatch(t, []string{"1", "4"}, ids(resp.Recipes))
	assert.Equal(t, []int{1, 2}, numbers(resp.Recipes))
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Contains(t, resp.Message, "Found 2 recipes")

	detail, err := svc.ProcessMessage(ctx, "s1", "2")
	require.NoError(t, err)
	assert.Equal(t, nlu.IntentRecipeDetails, detail.Intent)
	require.NotNil(t, detail.Recipe)
	assert.Equal(t, resp.Recipes[1].ID, detail.Recipe.ID)
	assert.Contains(t, detail.Message, "Ingredients:")
	assert.Contains(t, detail.Message, detail.Recipe.Name)

	outOfRange, err := svc.ProcessMessage(ctx, "s1", "show me recipe 5")
	require.NoError(t, err)
	assert.Nil(t, outOfRange.Recipe)
	assert.Contains(t, outOfRange.Message, "between 1 and 2")

	zero, err := svc.ProcessMessage(ctx, "s1", "0")
	require.NoError(t, err)
	assert.Equal(t, nlu.IntentRecipeDetails, zero.Intent)
	assert.Nil(t, zero.Recipe)
	assert.Equal(t, "Sorry, there is no recipe #0. Please choose a number between 1 and 2.", zero.Message)
}

func TestPagination(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.ProcessMessage(ctx, "s1", "show me vegetarian recipes")
	require.NoError(t, err)
	require.Len(t, first.Recipes, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, numbers(first.Recipes))
	assert.Equal(t, 2, first.TotalPages)
	assert.Contains(t, first.Message, "page 1 of 2")
	assert.Contains(t, first.Message, "Type 'more'")

	second, err := svc.ProcessMessage(ctx, "s1", "more")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Page)
	assert.Equal(t, []int{6, 7}, numbers(second.Recipes))
	assert.NotContains(t, second.Message, "Type 'more'")

	again, err := svc.ProcessMessage(ctx, "s1", "next")
	require.NoError(t, err)
	assert.Equal(t, noMorePages, again.Message)
	assert.Equal(t, 2, again.Page)

	back, err := svc.ProcessMessage(ctx, "s1", "back")
	require.NoError(t, err)
	assert.Equal(t, 1, back.Page)
	assert.Equal(t, ids(first.Recipes), ids(back.Recipes))

	// 編號跨頁，7 代表第二頁的第二筆
	detail, err := svc.ProcessMessage(ctx, "s1", "7")
	require.NoError(t, err)
	require.NotNil(t, detail.Recipe)
	assert.Equal(t, second.Recipes[1].ID, detail.Recipe.ID)
}

func TestSearchLimit(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, WithSearchLimit(3))

	resp, err := svc.ProcessMessage(context.Background(), "s1", "show me vegetarian recipes")
	require.NoError(t, err)
	assert.Len(t, resp.Recipes, 3)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Contains(t, resp.Message, "Found 3 recipes")
}

func TestSimpleIntents(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		text    string
		intent  nlu.Intent
		message string
	}{
		{"quit", nlu.IntentQuit, goodbyeMessage},
		{"help", nlu.IntentHelp, helpMessage},
		{"   ", nlu.IntentUnknown, noInputMessage},
		{"xyzzy plugh", nlu.IntentFindRecipe, noInputMessage},
		{"more", nlu.IntentFindRecipe, noInputMessage},
		{"3", nlu.IntentRecipeDetails, noResultsYet},
	}
	for _, tt := range tests {
		resp, err := svc.ProcessMessage(ctx, "fresh-"+tt.text, tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.intent, resp.Intent, tt.text)
		assert.Equal(t, tt.message, resp.Message, tt.text)
	}
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()

	resp, err := svc.ProcessMessage(ctx, "s1", "vegan recipes with chicken")
	require.NoError(t, err)
	assert.Equal(t, notFoundMessage, resp.Message)
	assert.Empty(t, resp.Recipes)

	sc, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, sc.LastSearchResults)
}

func TestDetailsByName(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.ProcessMessage(ctx, "s1", "tell me about greek salad")
	require.NoError(t, err)
	require.NotNil(t, resp.Recipe)
	assert.Equal(t, "Greek Salad", resp.Recipe.Name)
	assert.Equal(t, "10", resp.Recipe.ID)

	missing, err := svc.ProcessMessage(ctx, "s1", "tell me about beef wellington")
	require.NoError(t, err)
	assert.Nil(t, missing.Recipe)
	assert.Contains(t, missing.Message, "beef wellington")
}

func TestRecipeByIndex(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecipeByIndex(ctx, "nobody", 0)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	resp, err := svc.ProcessMessage(ctx, "s1", "Find recipes with chicken and rice")
	require.NoError(t, err)

	d, err := svc.RecipeByIndex(ctx, "s1", 0)
	require.NoError(t, err)
	assert.Equal(t, resp.Recipes[0].ID, d.ID)
	assert.NotEmpty(t, d.Instructions)

	_, err = svc.RecipeByIndex(ctx, "s1", 99)
	assert.ErrorIs(t, err, recipe.ErrIndexOutOfRange)
}

func TestObserver(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	svc, _ := newTestService(t, WithObserver(obs))
	ctx := context.Background()

	_, err := svc.ProcessMessage(ctx, "s1", "help")
	require.NoError(t, err)
	_, err = svc.ProcessMessage(ctx, "s1", "recipes with rice")
	require.NoError(t, err)

	assert.Equal(t, []nlu.Intent{nlu.IntentHelp, nlu.IntentFindRecipe}, obs.intents)
	assert.Equal(t, 1, obs.searches)
}

func TestStoreFailure(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	require.NoError(t, store.Close())

	resp, err := svc.ProcessMessage(context.Background(), "s1", "help")
	assert.ErrorIs(t, err, session.ErrStoreClosed)
	assert.Equal(t, errorMessage, resp.Message)
	assert.Equal(t, "s1", resp.SessionID)
}

func TestCanceledContext(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := svc.ProcessMessage(ctx, "s1", "recipes with rice")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, errorMessage, resp.Message)
}

func TestConcurrentTurnsOnOneSession(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.ProcessMessage(ctx, "shared", "recipes with rice")
			_, _ = svc.ProcessMessage(ctx, "shared", "more")
		}()
	}
	wg.Wait()

	sc, err := store.Find(ctx, "shared")
	require.NoError(t, err)
	assert.NotEmpty(t, sc.LastSearchResults)
	assert.Less(t, sc.CurrentPage, sc.TotalPages())
}

func TestRenderDetailOmitsEmptyFields(t *testing.T) {
	t.Parallel()

	msg := renderDetail(&RecipeDetail{Name: "Toast", Ingredients: []string{"bread"}, Instructions: []string{"Toast it."}})
	assert.Contains(t, msg, "🍽️ Toast")
	assert.Contains(t, msg, "• bread")
	assert.Contains(t, msg, "1. Toast it.")
	assert.NotContains(t, msg, "Category")
	assert.NotContains(t, msg, "Source")
}
