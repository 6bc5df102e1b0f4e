package chat

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	chatService "recipe-bot/internal/core/chat"
	"recipe-bot/internal/core/diet"
	"recipe-bot/internal/core/nlu"
	"recipe-bot/internal/core/recipe"
	"recipe-bot/internal/core/session"
	"recipe-bot/internal/pkg/common"
)

// ChatRequest 對話請求
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

// ParseRequest 解析請求
type ParseRequest struct {
	Message string `json:"message" binding:"required"`
}

// MatchRequest 直接比對請求，Limit 為 0 時使用預設上限
type MatchRequest struct {
	Include  []string `json:"include"`
	Exclude  []string `json:"exclude"`
	Dietary  []string `json:"dietary"`
	Category string   `json:"category"`
	Limit    int      `json:"limit" binding:"min=0,max=100"`
}

// MatchItem 比對結果中的一筆
type MatchItem struct {
	Rank              int      `json:"rank"`
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Category          string   `json:"category,omitempty"`
	Score             float64  `json:"score"`
	MatchCount        int      `json:"match_count"`
	MatchRatio        float64  `json:"match_ratio"`
	CoverageRatio     float64  `json:"coverage_ratio"`
	CommonIngredients []string `json:"common_ingredients"`
}

// MatchResponse 直接比對回應
type MatchResponse struct {
	Query   nlu.ParsedQuery `json:"query"`
	Count   int             `json:"count"`
	Results []MatchItem     `json:"results"`
}

// Handler 對話與查詢 API 處理器
type Handler struct {
	svc *chatService.Service
}

// NewHandler 建立處理器
func NewHandler(svc *chatService.Service) *Handler {
	return &Handler{svc: svc}
}

// HandleChat 處理一輪對話，未帶 session_id 時建立新會話
func (h *Handler) HandleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	sessionID := common.NormalizeSessionID(req.SessionID)
	resp, err := h.svc.ProcessMessage(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		common.LogError("對話處理失敗",
			zap.Error(err),
			zap.String("session_id", sessionID),
			zap.String("request_id", requestid.Get(c)),
		)
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleRecipeByIndex 依零起算編號回傳會話上次搜尋結果中的食譜
func (h *Handler) HandleRecipeByIndex(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		common.WriteError(c, common.ErrInvalidIndex)
		return
	}
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		common.WriteError(c, common.ErrInvalidRequest.WithMessage("缺少 session_id"))
		return
	}

	detail, err := h.svc.RecipeByIndex(c.Request.Context(), sessionID, index)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"index":      index,
		"recipe":     detail,
	})
}

// HandleParse 回傳查詢解析結果，不影響任何會話
func (h *Handler) HandleParse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, h.svc.Parse(req.Message))
}

// HandleMatch 以明確條件比對食譜
func (h *Handler) HandleMatch(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	q, err := h.buildQuery(req)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	if !q.HasConstraints() {
		common.WriteError(c, common.ErrInvalidRequest.WithMessage("至少需要一個食材、飲食偏好或分類條件"))
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = -1
	}
	matches, err := h.svc.Match(c.Request.Context(), q, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items := make([]MatchItem, len(matches))
	for i, m := range matches {
		items[i] = MatchItem{
			Rank:              i + 1,
			ID:                m.Recipe.ID,
			Name:              m.Recipe.Name,
			Category:          m.Recipe.Category,
			Score:             m.Result.Score,
			MatchCount:        m.Result.MatchCount,
			MatchRatio:        m.Result.MatchRatio,
			CoverageRatio:     m.Result.CoverageRatio,
			CommonIngredients: m.Result.CommonIngredients,
		}
	}
	c.JSON(http.StatusOK, MatchResponse{Query: q, Count: len(items), Results: items})
}

// buildQuery 將請求轉為解析結果，未知的飲食偏好回傳 400
func (h *Handler) buildQuery(req MatchRequest) (nlu.ParsedQuery, error) {
	q := nlu.ParsedQuery{
		Intent:             nlu.IntentFindRecipe,
		DietaryPreferences: []diet.Tag{},
		RecipeCategory:     nlu.NormalizeTerm(req.Category),
	}
	q.IncludeIngredients, q.ExcludeIngredients = h.svc.Constraints(req.Include, req.Exclude)

	taxonomy := h.svc.Taxonomy()
	seen := make(map[diet.Tag]bool, len(req.Dietary))
	for _, raw := range req.Dietary {
		tag, ok := taxonomy.Parse(strings.ToLower(strings.TrimSpace(raw)))
		if !ok {
			return q, common.NewValidationError("未知的飲食偏好: " + raw)
		}
		if !seen[tag] {
			seen[tag] = true
			q.DietaryPreferences = append(q.DietaryPreferences, tag)
		}
	}
	return q, nil
}

// writeServiceError 將服務層錯誤對應到 API 錯誤
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		common.WriteError(c, common.ErrSessionNotFound.Wrap(err))
	case errors.Is(err, recipe.ErrIndexOutOfRange), errors.Is(err, recipe.ErrRecipeNotFound):
		common.WriteError(c, common.ErrRecipeNotFound.Wrap(err))
	case errors.Is(err, context.DeadlineExceeded):
		common.WriteError(c, common.ErrGatewayTimeout.Wrap(err))
	case errors.Is(err, session.ErrStoreClosed):
		common.WriteError(c, common.ErrServiceUnavailable.Wrap(err))
	default:
		common.WriteError(c, err)
	}
}
