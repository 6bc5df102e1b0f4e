// Package chat runs one conversational turn: it parses the message, searches
// or resolves a recipe, keeps the session state and renders the reply.
package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"recipe-bot/internal/core/diet"
	"recipe-bot/internal/core/nlu"
	"recipe-bot/internal/core/recipe"
	"recipe-bot/internal/core/session"
	"recipe-bot/internal/pkg/common"
)

// RecipeSummary 清單中的單一食譜，Number 為整體結果中的一起算編號
type RecipeSummary struct {
	Number          int      `json:"number"`
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	CookTime        string   `json:"cook_time,omitempty"`
	KeyIngredients  []string `json:"key_ingredients"`
	MoreIngredients bool     `json:"-"`
}

// RecipeDetail 食譜完整內容
type RecipeDetail struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category,omitempty"`
	Cuisine      string   `json:"cuisine,omitempty"`
	CookTime     string   `json:"cook_time,omitempty"`
	Rating       float64  `json:"rating,omitempty"`
	Description  string   `json:"description,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	URL          string   `json:"url,omitempty"`
}

// Response 單輪對話的回應
type Response struct {
	SessionID  string           `json:"session_id"`
	Message    string           `json:"response"`
	Intent     nlu.Intent       `json:"intent"`
	Parsed     *nlu.ParsedQuery `json:"parsed,omitempty"`
	Recipes    []RecipeSummary  `json:"recipes,omitempty"`
	Recipe     *RecipeDetail    `json:"recipe,omitempty"`
	Page       int              `json:"page,omitempty"`
	TotalPages int              `json:"total_pages,omitempty"`
}

// Observer 接收對話統計，metrics 套件實作
type Observer interface {
	ObserveIntent(intent nlu.Intent)
	ObserveSearch(elapsed time.Duration, results int)
}

type nopObserver struct{}

func (nopObserver) ObserveIntent(nlu.Intent)         {}
func (nopObserver) ObserveSearch(time.Duration, int) {}

var (
	nextCommands = map[string]bool{
		"more": true, "next": true, "next page": true, "show more": true, "more recipes": true,
	}
	prevCommands = map[string]bool{
		"previous": true, "prev": true, "back": true, "previous page": true, "go back": true,
	}
)

// Service 對話服務
type Service struct {
	parser   *nlu.Parser
	matcher  *recipe.Matcher
	corpus   *recipe.Corpus
	store    session.Store
	observer Observer
	limit    int
}

// Option 對話服務選項
type Option func(*Service)

// WithObserver 設定統計接收者
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithSearchLimit 設定每次搜尋保留的結果數量，負數表示使用比對器預設值
func WithSearchLimit(n int) Option {
	return func(s *Service) {
		s.limit = n
	}
}

// NewService 建立對話服務
func NewService(parser *nlu.Parser, matcher *recipe.Matcher, corpus *recipe.Corpus, store session.Store, opts ...Option) *Service {
	s := &Service{
		parser:   parser,
		matcher:  matcher,
		corpus:   corpus,
		store:    store,
		observer: nopObserver{},
		limit:    -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessMessage 處理一則訊息，同一會話的訊息依序處理
//
// 回傳的 error 只代表儲存層失敗或請求被取消，此時 Response 仍帶有錯誤訊息。
func (s *Service) ProcessMessage(ctx context.Context, sessionID, text string) (Response, error) {
	unlock := s.store.Lock(sessionID)
	defer unlock()

	sc, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return s.failure(sessionID, err), fmt.Errorf("failed to load session: %w", err)
	}

	resp, err := s.turn(ctx, sc, text)
	if err != nil {
		common.LogError("對話處理失敗",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return s.failure(sessionID, err), err
	}
	s.observer.ObserveIntent(resp.Intent)

	if err := s.store.Save(ctx, sc); err != nil {
		return s.failure(sessionID, err), fmt.Errorf("failed to save session: %w", err)
	}
	return resp, nil
}

func (s *Service) failure(sessionID string, err error) Response {
	common.LogWarn("回傳錯誤訊息", zap.String("session_id", sessionID), zap.Error(err))
	return Response{SessionID: sessionID, Message: errorMessage, Intent: nlu.IntentUnknown}
}

func (s *Service) turn(ctx context.Context, sc *session.Context, text string) (Response, error) {
	normalized := nlu.NormalizeTerm(text)
	if len(sc.LastSearchResults) > 0 {
		switch {
		case nextCommands[normalized]:
			if !sc.NextPage() {
				resp := s.page(sc)
				resp.Message = noMorePages
				return resp, nil
			}
			return s.page(sc), nil
		case prevCommands[normalized]:
			if !sc.PrevPage() {
				resp := s.page(sc)
				resp.Message = firstPageAlready
				return resp, nil
			}
			return s.page(sc), nil
		}
	}

	q := s.parser.Parse(text)
	resp := Response{SessionID: sc.ID, Intent: q.Intent, Parsed: &q}

	switch q.Intent {
	case nlu.IntentQuit:
		resp.Message = goodbyeMessage
	case nlu.IntentHelp:
		resp.Message = helpMessage
	case nlu.IntentRecipeDetails:
		s.details(sc, q, &resp)
	case nlu.IntentFindRecipe:
		if !q.HasConstraints() {
			resp.Message = noInputMessage
			return resp, nil
		}
		return s.search(ctx, sc, q)
	default:
		resp.Message = noInputMessage
	}
	return resp, nil
}

func (s *Service) search(ctx context.Context, sc *session.Context, q nlu.ParsedQuery) (Response, error) {
	start := time.Now()
	matches, err := s.matcher.Match(ctx, q, s.corpus, s.limit)
	if err != nil {
		return Response{}, err
	}
	s.observer.ObserveSearch(time.Since(start), len(matches))

	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.Recipe.ID
	}
	sc.SetResults(ids, &q)

	if len(matches) == 0 {
		return Response{
			SessionID: sc.ID,
			Message:   notFoundMessage,
			Intent:    q.Intent,
			Parsed:    &q,
		}, nil
	}

	common.LogDebug("搜尋完成",
		zap.String("session_id", sc.ID),
		zap.Int("results", len(matches)),
		zap.Duration("elapsed", time.Since(start)),
	)
	resp := s.page(sc)
	resp.Intent = q.Intent
	resp.Parsed = &q
	return resp, nil
}

// page 呈現會話目前所在頁面
func (s *Service) page(sc *session.Context) Response {
	start, end := sc.PageBounds()
	summaries := make([]RecipeSummary, 0, end-start)
	for i := start; i < end; i++ {
		r, ok := s.corpus.ByID(sc.LastSearchResults[i])
		if !ok {
			continue
		}
		summaries = append(summaries, summarize(r, i+1))
	}

	page, total := sc.CurrentPage+1, sc.TotalPages()
	return Response{
		SessionID:  sc.ID,
		Message:    renderList(summaries, len(sc.LastSearchResults), page, total),
		Intent:     nlu.IntentFindRecipe,
		Parsed:     sc.LastQuery,
		Recipes:    summaries,
		Page:       page,
		TotalPages: total,
	}
}

func (s *Service) details(sc *session.Context, q nlu.ParsedQuery, resp *Response) {
	r, err := recipe.ResolveDetail(q, sc.LastSearchResults, s.corpus, s.matcher.Config().NameThreshold)
	switch {
	case err == nil:
		resp.Recipe = detail(r)
		resp.Message = renderDetail(resp.Recipe)
	case errors.Is(err, recipe.ErrIndexOutOfRange):
		resp.Message = renderIndexOutOfRange(*q.RecipeIndex+1, len(sc.LastSearchResults))
	case q.RecipeName != "":
		resp.Message = renderNameNotFound(q.RecipeName)
	default:
		resp.Message = noResultsYet
	}
}

// RecipeByIndex 依零起算編號取出會話上次搜尋結果中的食譜
func (s *Service) RecipeByIndex(ctx context.Context, sessionID string, index int) (*RecipeDetail, error) {
	unlock := s.store.Lock(sessionID)
	defer unlock()

	sc, err := s.store.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	q := nlu.ParsedQuery{Intent: nlu.IntentRecipeDetails, RecipeIndex: &index}
	r, err := recipe.ResolveDetail(q, sc.LastSearchResults, s.corpus, s.matcher.Config().NameThreshold)
	if err != nil {
		return nil, err
	}
	return detail(r), nil
}

// Parse 只解析查詢，不影響會話
func (s *Service) Parse(text string) nlu.ParsedQuery {
	return s.parser.Parse(text)
}

// Constraints 以解析器的詞彙表整理外部提供的食材條件
func (s *Service) Constraints(include, exclude []string) (in, ex []string) {
	return s.parser.Constraints(include, exclude)
}

// Match 不經會話直接比對
func (s *Service) Match(ctx context.Context, q nlu.ParsedQuery, limit int) ([]recipe.Match, error) {
	start := time.Now()
	matches, err := s.matcher.Match(ctx, q, s.corpus, limit)
	if err != nil {
		return nil, err
	}
	s.observer.ObserveSearch(time.Since(start), len(matches))
	return matches, nil
}

// Taxonomy 解析器使用的飲食偏好表
func (s *Service) Taxonomy() diet.Taxonomy {
	return s.parser.Rules().Taxonomy
}

// Corpus 回傳對話服務使用的語料庫
func (s *Service) Corpus() *recipe.Corpus {
	return s.corpus
}

// Sessions 回傳會話儲存
func (s *Service) Sessions() session.Store {
	return s.store
}

func summarize(r *recipe.Recipe, number int) RecipeSummary {
	key := r.CleanedIngredients
	more := false
	if len(key) > maxKeyIngredients {
		key, more = key[:maxKeyIngredients], true
	}
	return RecipeSummary{
		Number:          number,
		ID:              r.ID,
		Name:            r.Name,
		Category:        r.Category,
		Rating:          r.Rating,
		CookTime:        r.CookTime,
		KeyIngredients:  append([]string{}, key...),
		MoreIngredients: more,
	}
}

func detail(r *recipe.Recipe) *RecipeDetail {
	ingredients := r.RawIngredients
	if len(ingredients) == 0 {
		ingredients = r.CleanedIngredients
	}
	return &RecipeDetail{
		ID:           r.ID,
		Name:         r.Name,
		Category:     r.Category,
		Cuisine:      r.Cuisine,
		CookTime:     r.CookTime,
		Rating:       r.Rating,
		Description:  r.Description,
		Ingredients:  append([]string{}, ingredients...),
		Instructions: append([]string{}, r.Instructions...),
		URL:          r.URL,
	}
}
