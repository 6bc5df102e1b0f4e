package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"recipe-bot/internal/core/recipe"
	"recipe-bot/internal/core/session"
	"recipe-bot/internal/pkg/common"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Runtime   map[string]interface{} `json:"runtime"`
	Corpus    CorpusStatus           `json:"corpus"`
	Sessions  session.Stats          `json:"sessions"`
}

// CorpusStatus 語料庫狀態
type CorpusStatus struct {
	Recipes int  `json:"recipes"`
	Ready   bool `json:"ready"`
}

// Handler 健康檢查處理器
type Handler struct {
	version  string
	corpus   *recipe.Corpus
	sessions session.Store
	clock    clockwork.Clock
	started  time.Time
}

// NewHandler 建立健康檢查處理器，clock 為 nil 時使用系統時間
func NewHandler(version string, corpus *recipe.Corpus, sessions session.Store, clock clockwork.Clock) *Handler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Handler{
		version:  version,
		corpus:   corpus,
		sessions: sessions,
		clock:    clock,
		started:  clock.Now(),
	}
}

func (h *Handler) corpusStatus() CorpusStatus {
	if h.corpus == nil {
		return CorpusStatus{}
	}
	return CorpusStatus{Recipes: h.corpus.Len(), Ready: h.corpus.Ready()}
}

// HealthCheck 回傳版本、執行期資訊、語料庫大小與會話統計
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := HealthResponse{
		Status:    "ok",
		Timestamp: h.clock.Now(),
		Version:   h.version,
		Uptime:    h.clock.Since(h.started).Round(time.Second).String(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Corpus: h.corpusStatus(),
	}
	if h.sessions != nil {
		resp.Sessions = h.sessions.Stats()
	}

	c.JSON(http.StatusOK, resp)
}

// ReadinessCheck 語料庫載入完成前回傳 503
func (h *Handler) ReadinessCheck(c *gin.Context) {
	st := h.corpusStatus()
	if !st.Ready {
		common.WriteError(c, common.ErrCorpusNotReady)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"corpus": st,
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
