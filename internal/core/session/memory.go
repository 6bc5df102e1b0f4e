package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"recipe-bot/internal/pkg/common"
)

// Options 會話儲存設定
type Options struct {
	TTL             time.Duration
	MaxSize         int
	CleanupInterval time.Duration
	RecipesPerPage  int
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = 30 * time.Minute
	}
	if o.MaxSize <= 0 {
		o.MaxSize = 10000
	}
	if o.CleanupInterval <= 0 {
		o.CleanupInterval = time.Minute
	}
	if o.RecipesPerPage <= 0 {
		o.RecipesPerPage = DefaultRecipesPerPage
	}
	return o
}

// MemoryStore 記憶體會話儲存，支援 TTL 與 LRU 淘汰
type MemoryStore struct {
	opts   Options
	clock  clockwork.Clock
	locker *Locker

	mu     sync.RWMutex
	store  map[string]memoryEntry
	stats  memoryStats
	closed bool

	done chan struct{}
	wg   sync.WaitGroup
}

// memoryEntry 會話條目
type memoryEntry struct {
	value       *Context
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

type memoryStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewMemoryStore 建立記憶體儲存並啟動清理協程，clock 為 nil 時使用真實時鐘
func NewMemoryStore(opts Options, clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	m := &MemoryStore{
		opts:   opts.withDefaults(),
		clock:  clock,
		locker: NewLocker(),
		store:  make(map[string]memoryEntry),
		done:   make(chan struct{}),
	}

	// 啟動清理過期會話的協程
	m.wg.Add(1)
	go m.startCleanup()

	common.LogInfo("會話儲存已初始化",
		zap.String("backend", "memory"),
		zap.Int("最大容量", m.opts.MaxSize),
		zap.Duration("存活時間", m.opts.TTL),
		zap.Duration("清理間隔", m.opts.CleanupInterval),
	)
	return m
}

// Get 取得會話，不存在或已過期時回傳新的空白會話
func (m *MemoryStore) Get(ctx context.Context, id string) (*Context, error) {
	sc, err := m.Find(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return NewContext(id, m.opts.RecipesPerPage), nil
	}
	return sc, err
}

// Find 取得既有會話
func (m *MemoryStore) Find(_ context.Context, id string) (*Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrStoreClosed
	}

	entry, exists := m.store[id]
	if !exists {
		m.stats.misses++
		return nil, ErrSessionNotFound
	}

	now := m.clock.Now()
	if now.After(entry.expiresAt) {
		delete(m.store, id)
		m.stats.evictions++
		m.stats.misses++
		common.LogDebug("會話已過期", zap.String("session_id", id))
		return nil, ErrSessionNotFound
	}

	entry.lastAccess = now
	entry.accessCount++
	m.store[id] = entry
	m.stats.hits++
	return entry.value.Clone(), nil
}

// Save 儲存會話並更新存活時間，容量已滿時先清理過期項目再淘汰最久未使用的會話
func (m *MemoryStore) Save(_ context.Context, sc *Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}

	if _, exists := m.store[sc.ID]; !exists && len(m.store) >= m.opts.MaxSize {
		if evicted := m.cleanup(); evicted > 0 {
			common.LogDebug("會話清理執行", zap.Int("清理數量", evicted))
		}
		for len(m.store) >= m.opts.MaxSize {
			m.evictLRU()
		}
	}

	now := m.clock.Now()
	value := sc.Clone()
	value.UpdatedAt = now
	sc.UpdatedAt = now
	prev := m.store[sc.ID]
	m.store[sc.ID] = memoryEntry{
		value:       value,
		expiresAt:   now.Add(m.opts.TTL),
		lastAccess:  now,
		accessCount: prev.accessCount,
	}
	return nil
}

// Delete 刪除會話
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	delete(m.store, id)
	return nil
}

// Lock 鎖定單一會話
func (m *MemoryStore) Lock(id string) func() {
	return m.locker.Lock(id)
}

// startCleanup 定期清理過期會話，直到 Close
func (m *MemoryStore) startCleanup() {
	defer m.wg.Done()
	ticker := m.clock.NewTicker(m.opts.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.Chan():
			m.mu.Lock()
			count := m.cleanup()
			size := len(m.store)
			m.mu.Unlock()
			if count > 0 {
				common.LogDebug("已清理過期會話",
					zap.Int("count", count),
					zap.Int("remaining_size", size),
				)
			}
		}
	}
}

// cleanup 清理過期會話，呼叫端需持有寫鎖
func (m *MemoryStore) cleanup() int {
	now := m.clock.Now()
	count := 0
	for id, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, id)
			count++
			m.stats.evictions++
		}
	}
	return count
}

// evictLRU 淘汰最久未存取的會話，呼叫端需持有寫鎖
func (m *MemoryStore) evictLRU() {
	var oldestID string
	var oldestAccess time.Time
	for id, entry := range m.store {
		if oldestID == "" || entry.lastAccess.Before(oldestAccess) ||
			(entry.lastAccess.Equal(oldestAccess) && id < oldestID) {
			oldestID = id
			oldestAccess = entry.lastAccess
		}
	}
	if oldestID == "" {
		return
	}
	delete(m.store, oldestID)
	m.stats.evictions++
	common.LogDebug("會話已淘汰(LRU)", zap.String("session_id", oldestID))
}

// Stats 儲存統計
func (m *MemoryStore) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Backend:   "memory",
		Size:      len(m.store),
		MaxSize:   m.opts.MaxSize,
		Hits:      m.stats.hits,
		Misses:    m.stats.misses,
		Evictions: m.stats.evictions,
	}
}

// Close 停止清理協程並清空會話，可重複呼叫
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.store = make(map[string]memoryEntry)
	stats := m.stats
	m.mu.Unlock()

	close(m.done)
	m.wg.Wait()

	common.LogInfo("會話儲存已關閉",
		zap.Int64("命中次數", stats.hits),
		zap.Int64("未命中次數", stats.misses),
		zap.Int64("淘汰次數", stats.evictions),
	)
	return nil
}
