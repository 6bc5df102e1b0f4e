// Package session keeps per-conversation state between chat turns: the last
// search results, the current page and the last parsed query.
package session

import (
	"context"
	"errors"
	"time"

	"recipe-bot/internal/core/nlu"
)

var (
	// ErrSessionNotFound 找不到會話或會話已過期
	ErrSessionNotFound = errors.New("session not found")
	// ErrStoreClosed 儲存已關閉
	ErrStoreClosed = errors.New("session store closed")
)

// DefaultRecipesPerPage 每頁顯示的食譜數量
const DefaultRecipesPerPage = 5

// Context 單一會話的狀態
type Context struct {
	ID                string           `json:"id"`
	LastSearchResults []string         `json:"last_search_results"`
	CurrentPage       int              `json:"current_page"`
	RecipesPerPage    int              `json:"recipes_per_page"`
	LastQuery         *nlu.ParsedQuery `json:"last_query,omitempty"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// NewContext 建立空白會話
func NewContext(id string, perPage int) *Context {
	if perPage <= 0 {
		perPage = DefaultRecipesPerPage
	}
	return &Context{
		ID:                id,
		LastSearchResults: []string{},
		RecipesPerPage:    perPage,
	}
}

// SetResults 記錄新的搜尋結果並回到第一頁
func (c *Context) SetResults(ids []string, q *nlu.ParsedQuery) {
	c.LastSearchResults = append([]string(nil), ids...)
	c.CurrentPage = 0
	c.LastQuery = q
}

// TotalPages 結果總頁數，沒有結果時為 0
func (c *Context) TotalPages() int {
	n := len(c.LastSearchResults)
	if n == 0 {
		return 0
	}
	return (n + c.perPage() - 1) / c.perPage()
}

// PageBounds 目前頁面在結果中的範圍 [start, end)
func (c *Context) PageBounds() (start, end int) {
	start = c.CurrentPage * c.perPage()
	if start > len(c.LastSearchResults) {
		start = len(c.LastSearchResults)
	}
	end = start + c.perPage()
	if end > len(c.LastSearchResults) {
		end = len(c.LastSearchResults)
	}
	return start, end
}

// NextPage 移到下一頁，已是最後一頁時回傳 false
func (c *Context) NextPage() bool {
	if c.CurrentPage+1 >= c.TotalPages() {
		return false
	}
	c.CurrentPage++
	return true
}

// PrevPage 移到上一頁，已是第一頁時回傳 false
func (c *Context) PrevPage() bool {
	if c.CurrentPage == 0 {
		return false
	}
	c.CurrentPage--
	return true
}

func (c *Context) perPage() int {
	if c.RecipesPerPage <= 0 {
		return DefaultRecipesPerPage
	}
	return c.RecipesPerPage
}

// Clone 深拷貝，儲存層不與呼叫端共用切片
func (c *Context) Clone() *Context {
	out := *c
	out.LastSearchResults = append([]string{}, c.LastSearchResults...)
	if c.LastQuery != nil {
		q := *c.LastQuery
		out.LastQuery = &q
	}
	return &out
}

// Stats 儲存統計
type Stats struct {
	Backend   string `json:"backend"`
	Size      int    `json:"size"`
	MaxSize   int    `json:"max_size,omitempty"`
	Hits      int64  `json:"hits"`
	Misses    int64  `json:"misses"`
	Evictions int64  `json:"evictions"`
}

// Store 會話儲存
type Store interface {
	// Get 取得會話，不存在或已過期時回傳新的空白會話
	Get(ctx context.Context, id string) (*Context, error)
	// Find 取得既有會話，不存在時回傳 ErrSessionNotFound
	Find(ctx context.Context, id string) (*Context, error)
	Save(ctx context.Context, sc *Context) error
	Delete(ctx context.Context, id string) error
	// Lock 鎖定單一會話直到呼叫回傳的函式
	Lock(id string) func()
	Stats() Stats
	Close() error
}
