package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"recipe-bot/internal/pkg/common"
)

// KeyPrefix Redis 會話鍵前綴
const KeyPrefix = "recipebot:session:"

// RedisStore 以 Redis 儲存會話，值為 JSON，過期由 Redis TTL 處理
type RedisStore struct {
	client *redis.Client
	opts   Options
	locker *Locker
	now    func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
	closed atomic.Bool
}

// NewRedisStore 建立 Redis 儲存並測試連線
func NewRedisStore(ctx context.Context, client *redis.Client, opts Options) (*RedisStore, error) {
	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	s := &RedisStore{
		client: client,
		opts:   opts.withDefaults(),
		locker: NewLocker(),
		now:    time.Now,
	}
	common.LogInfo("會話儲存已初始化",
		zap.String("backend", "redis"),
		zap.String("addr", client.Options().Addr),
		zap.Duration("存活時間", s.opts.TTL),
	)
	return s, nil
}

// Get 取得會話，不存在時回傳新的空白會話
func (s *RedisStore) Get(ctx context.Context, id string) (*Context, error) {
	sc, err := s.Find(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return NewContext(id, s.opts.RecipesPerPage), nil
	}
	return sc, err
}

// Find 取得既有會話
func (s *RedisStore) Find(ctx context.Context, id string) (*Context, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}

	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.misses.Add(1)
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	sc, err := decodeContext(data)
	if err != nil {
		return nil, err
	}
	s.hits.Add(1)
	return sc, nil
}

// Save 儲存會話並重設 TTL
func (s *RedisStore) Save(ctx context.Context, sc *Context) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	sc.UpdatedAt = s.now()
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(sc.ID), data, s.opts.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// Delete 刪除會話
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}
	if err := s.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Lock 鎖定單一會話，只保證同一程序內的序列化
func (s *RedisStore) Lock(id string) func() {
	return s.locker.Lock(id)
}

// Stats 儲存統計，Redis 後端不追蹤容量
func (s *RedisStore) Stats() Stats {
	return Stats{
		Backend: "redis",
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
	}
}

// Close 關閉 Redis 連線
func (s *RedisStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.client.Close()
}

func redisKey(id string) string {
	return KeyPrefix + id
}

func decodeContext(data []byte) (*Context, error) {
	var sc Context
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if sc.LastSearchResults == nil {
		sc.LastSearchResults = []string{}
	}
	return &sc, nil
}
