package corpus

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"recipe-bot/internal/pkg/common"
)

// Fetcher 透過 HTTP 下載遠端資料集
type Fetcher struct {
	client *resty.Client
}

// NewFetcher 建立下載器
func NewFetcher(timeout time.Duration, retries int) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Accept", "application/json, text/csv, application/yaml;q=0.9, */*;q=0.5").
		SetHeader("User-Agent", "recipe-bot")

	return &Fetcher{client: client}
}

// Fetch 下載資料並回傳內容與 Content-Type
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	start := time.Now()
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch dataset: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, "", fmt.Errorf("dataset server returned status %d", resp.StatusCode())
	}

	common.LogInfo("已下載遠端資料集",
		zap.String("url", url),
		zap.Int("bytes", len(resp.Body())),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}
