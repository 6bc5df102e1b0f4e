package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatHandler "recipe-bot/internal/api/handlers/chat"
	"recipe-bot/internal/core/chat"
	"recipe-bot/internal/core/corpus"
	"recipe-bot/internal/core/nlu"
	"recipe-bot/internal/core/recipe"
	"recipe-bot/internal/core/session"
	"recipe-bot/internal/infrastructure/config"
	"recipe-bot/internal/infrastructure/metrics"
	"recipe-bot/internal/pkg/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, recipes []recipe.Recipe) *gin.Engine {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := config.Default()
	cfg.RateLimit.Enabled = false
	clock := clockwork.NewFakeClock()

	c := recipe.NewCorpus(recipes)
	rules := nlu.DefaultRules()
	resolver := nlu.NewResolver(c.Vocabulary(), nlu.DefaultAliases(), cfg.Matching.FuzzyThreshold)
	store := session.NewMemoryStore(cfg.Session.Options(), clock)
	t.Cleanup(func() { _ = store.Close() })

	m := metrics.New(func() int { return store.Stats().Size })
	m.CorpusRecipes.Set(float64(c.Len()))

	svc := chat.NewService(
		nlu.NewParser(resolver, rules),
		recipe.NewMatcher(cfg.Matching.Recipe(), rules),
		c,
		store,
		chat.WithObserver(m),
	)

	router, err := SetupRouter(ctx, cfg, Dependencies{Chat: svc, Metrics: m, Clock: clock})
	require.NoError(t, err)
	return router
}

func request(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp common.ErrorResponse
	decode(t, w, &resp)
	return resp.Code
}

func TestSetupRouterRequiresChatService(t *testing.T) {
	_, err := SetupRouter(context.Background(), config.Default(), Dependencies{})
	assert.Error(t, err)
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t, corpus.Sample())

	w := request(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health struct {
		Status string `json:"status"`
		Corpus struct {
			Recipes int  `json:"recipes"`
			Ready   bool `json:"ready"`
		} `json:"corpus"`
		Sessions session.Stats `json:"sessions"`
	}
	decode(t, w, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 12, health.Corpus.Recipes)
	assert.True(t, health.Corpus.Ready)
	assert.Equal(t, "memory", health.Sessions.Backend)

	assert.Equal(t, http.StatusOK, request(t, r, http.MethodGet, "/ready", nil).Code)
	assert.Equal(t, http.StatusOK, request(t, r, http.MethodGet, "/live", nil).Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestReadyBeforeCorpusLoaded(t *testing.T) {
	r := newTestRouter(t, nil)
	w := request(t, r, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, common.ErrCodeCorpusNotReady, errorCode(t, w))
}

func TestChatFlow(t *testing.T) {
	r := newTestRouter(t, corpus.Sample())

	w := request(t, r, http.MethodPost, "/api/v1/chat", chatHandler.ChatRequest{Message: "Find recipes with chicken and rice"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp chat.Response
	decode(t, w, &resp)
	require.NotEmpty(t, resp.SessionID)
	assert.Equal(t, nlu.IntentFindRecipe, resp.Intent)
	require.Len(t, resp.Recipes, 2)
	assert.Contains(t, resp.Message, "Found 2 recipes")

	w = request(t, r, http.MethodPost, "/api/v1/chat", chatHandler.ChatRequest{Message: "2", SessionID: resp.SessionID})
	require.Equal(t, http.StatusOK, w.Code)
	var detail chat.Response
	decode(t, w, &detail)
	assert.Equal(t, resp.SessionID, detail.SessionID)
	require.NotNil(t, detail.Recipe)
	assert.Equal(t, resp.Recipes[1].ID, detail.Recipe.ID)

	w = request(t, r, http.MethodGet, "/api/v1/recipes/0?session_id="+resp.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var byIndex struct {
		Index  int               `json:"index"`
		Recipe chat.RecipeDetail `json:"recipe"`
	}
	decode(t, w, &byIndex)
	assert.Equal(t, resp.Recipes[0].ID, byIndex.Recipe.ID)
	assert.NotEmpty(t, byIndex.Recipe.Ingredients)
}

func TestChatValidation(t *testing.T) {
	r := newTestRouter(t, corpus.Sample())

	w := request(t, r, http.MethodPost, "/api/v1/chat", map[string]string{"session_id": "s1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, common.ErrCodeInvalidRequest, errorCode(t, w))
}

func TestRecipeByIndexErrors(t *testing.T) {
	r := newTestRouter(t, corpus.Sample())

	w := request(t, r, http.MethodPost, "/api/v1/chat", chatHandler.ChatRequest{Message: "recipes with chicken and rice", SessionID: "s1"})
	require.Equal(t, http.StatusOK, w.Code)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"non numeric index", "/api/v1/recipes/abc?session_id=s1", http.StatusBadRequest, common.ErrCodeInvalidIndex},
		{"negative index", "/api/v1/recipes/-1?session_id=s1", http.StatusBadRequest, common.ErrCodeInvalidIndex},
		{"missing session id", "/api/v1/recipes/0", http.StatusBadRequest, common.ErrCodeInvalidRequest},
		{"unknown session", "/api/v1/recipes/0?session_id=nope", http.StatusNotFound, common.ErrCodeSessionNotFound},
		{"index out of range", "/api/v1/recipes/9?session_id=s1", http.StatusNotFound, common.ErrCodeRecipeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, r, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestParseEndpoint(t *testing.T) {
	r := newTestRouter(t, corpus.Sample())

	w := request(t, r, http.MethodPost, "/api/v1/parse", chatHandler.ParseRequest{Message: "chicken without onion"})
	require.Equal(t, http.StatusOK, w.Code)
	var q nlu.ParsedQuery
	decode(t, w, &q)
	assert.Equal(t, nlu.IntentFindRecipe, q.Intent)
	assert.Equal(t, []string{"chicken"}, q.IncludeIngredients)
	assert.Equal(t, []string{"onion"}, q.ExcludeIngredients)

	assert.Equal(t, http.StatusBadRequest, request(t, r, http.MethodPost, "/api/v1/parse", map[string]string{}).Code)
}

func TestMatchEndpoint(t *testing.T) {
	r := newTestRouter(t, corpus.Sample())

	w := request(t, r, http.MethodPost, "/api/v1/match", chatHandler.MatchRequest{Include: []string{"Chicken", "rice"}})
	require.Equal(t, http.StatusOK, w.Code)
	var resp chatHandler.MatchResponse
	decode(t, w, &resp)
	require.Equal(t, 2, resp.Count)
	got := []string{resp.Results[0].ID, resp.Results[1].ID}
	assert.ElementsMatch(t, []string{"1", "4"}, got)
	assert.Equal(t, 1, resp.Results[0].Rank)
	assert.GreaterOrEqual(t, resp.Results[0].Score, resp.Results[1].Score)

	w = request(t, r, http.MethodPost, "/api/v1/match", chatHandler.MatchRequest{Dietary: []string{"vegetarian"}, Limit: 3})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, 3, resp.Count)

	w = request(t, r, http.MethodPost, "/api/v1/match", chatHandler.MatchRequest{Dietary: []string{"keto"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, common.ErrCodeInvalidRequest, errorCode(t, w))

	w = request(t, r, http.MethodPost, "/api/v1/match", chatHandler.MatchRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(t, r, http.MethodPost, "/api/v1/match", map[string]interface{}{"include": []string{"rice"}, "limit": 500})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchEndpointOverlappingConstraints(t *testing.T) {
	r := newTestRouter(t, corpus.Sample())

	w := request(t, r, http.MethodPost, "/api/v1/match", chatHandler.MatchRequest{
		Include: []string{"chicken", "Chicken ", "chiken", "rice"},
		Exclude: []string{"RICE", "rice"},
		Dietary: []string{"gluten-free", "Gluten-Free"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp chatHandler.MatchResponse
	decode(t, w, &resp)
	assert.Equal(t, []string{"chicken"}, resp.Query.IncludeIngredients)
	assert.Equal(t, []string{"rice"}, resp.Query.ExcludeIngredients)
	assert.Len(t, resp.Query.DietaryPreferences, 1)
	for _, item := range resp.Results {
		assert.NotContains(t, item.CommonIngredients, "rice")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, corpus.Sample())

	request(t, r, http.MethodPost, "/api/v1/chat", chatHandler.ChatRequest{Message: "help"})

	w := request(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "recipebot_corpus_recipes 12")
	assert.Contains(t, body, `recipebot_chat_intents_total{intent="help"} 1`)
	assert.Contains(t, body, "recipebot_session_active 1")
}

func TestNoRoute(t *testing.T) {
	r := newTestRouter(t, corpus.Sample())

	w := request(t, r, http.MethodGet, "/api/v1/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, common.ErrCodeNotFound, errorCode(t, w))
}
