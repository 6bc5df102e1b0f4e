package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"recipe-bot/internal/infrastructure/metrics"
)

// Metrics 記錄請求數、耗時與進行中的請求數
//
// 未匹配路由的請求以 "unmatched" 作為路徑標籤，避免標籤爆量。
func Metrics(m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.ActiveRequests.Inc()
		defer m.ActiveRequests.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
