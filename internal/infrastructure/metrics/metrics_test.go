package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-bot/internal/core/nlu"
)

func TestObserve(t *testing.T) {
	t.Parallel()

	m := New(func() int { return 3 })
	m.ObserveIntent(nlu.IntentFindRecipe)
	m.ObserveIntent(nlu.IntentFindRecipe)
	m.ObserveIntent(nlu.IntentHelp)
	m.ObserveSearch(2*time.Millisecond, 0)
	m.ObserveSearch(time.Millisecond, 4)
	m.ObserveHTTP(http.MethodPost, "/api/v1/chat", http.StatusOK, 10*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.IntentsTotal.WithLabelValues("find_recipe")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.IntentsTotal.WithLabelValues("help")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.EmptySearches), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.Sessions), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/chat", "200")), 0)
}

func TestHandler(t *testing.T) {
	t.Parallel()

	m := New(nil)
	m.CorpusRecipes.Set(12)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "recipebot_corpus_recipes 12")
	assert.Contains(t, string(body), "recipebot_session_active 0")
	assert.Contains(t, string(body), "go_goroutines")
}
