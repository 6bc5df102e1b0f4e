package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"recipe-bot/internal/pkg/common"
)

// Deduplicator 拒絕時間窗內重複送出的相同 POST 請求
type Deduplicator struct {
	mu       sync.Mutex
	requests map[string]time.Time
	window   time.Duration
	clock    clockwork.Clock
}

// NewDeduplicator 建立去重器，ctx 結束時停止清理工作
func NewDeduplicator(ctx context.Context, window time.Duration, clock clockwork.Clock) *Deduplicator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if window <= 0 {
		window = time.Second
	}
	d := &Deduplicator{
		requests: make(map[string]time.Time),
		window:   window,
		clock:    clock,
	}
	go d.cleanupLoop(ctx)
	return d
}

// Seen 記錄指紋並回傳是否在時間窗內已出現過
func (d *Deduplicator) Seen(fingerprint string) bool {
	now := d.clock.Now()
	d.mu.Lock()
	defer d.mu.Unlock()
	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// Len 目前記錄的指紋數量
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

func (d *Deduplicator) cleanupLoop(ctx context.Context) {
	ticker := d.clock.NewTicker(10 * d.window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			d.cleanup()
		}
	}
}

func (d *Deduplicator) cleanup() {
	now := d.clock.Now()
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, t := range d.requests {
		if now.Sub(t) > d.window {
			delete(d.requests, k)
		}
	}
}

// fingerprint 方法、路徑、用戶端 IP 與請求體雜湊組成的指紋
func fingerprint(c *gin.Context, body []byte) string {
	hash := sha256.Sum256(body)
	return c.Request.Method + ":" + c.Request.URL.Path + ":" + c.ClientIP() + ":" + hex.EncodeToString(hash[:])
}

// Deduplication 請求去重中間件，只處理 POST 請求
func Deduplication(d *Deduplicator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogWarn("讀取請求內容失敗", zap.Error(err))
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					common.WriteError(c, common.ErrRequestTooLarge.Wrap(err))
				} else {
					common.WriteError(c, common.ErrInvalidRequest.Wrap(err))
				}
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		if d.Seen(fingerprint(c, body)) {
			common.LogInfo("重複請求已拒絕",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			common.WriteError(c, common.ErrTooManyRequests.WithMessage("重複的請求"))
			return
		}

		c.Next()
	}
}
