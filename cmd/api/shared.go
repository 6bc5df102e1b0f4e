package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"recipe-bot/internal/core/chat"
	"recipe-bot/internal/core/corpus"
	"recipe-bot/internal/core/nlu"
	"recipe-bot/internal/core/recipe"
	"recipe-bot/internal/core/session"
	"recipe-bot/internal/infrastructure/config"
	"recipe-bot/internal/infrastructure/metrics"
	"recipe-bot/internal/pkg/common"
)

// application 組裝完成的服務與需要關閉的資源
type application struct {
	cfg     *config.Config
	chat    *chat.Service
	store   session.Store
	metrics *metrics.Collector
}

func (a *application) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			common.LogWarn("關閉會話儲存失敗", zap.Error(err))
		}
	}
	common.Sync()
}

// loadConfig 讀取設定並套用命令列旗標
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dataset") {
		cfg.Dataset.Path, cfg.Dataset.URL = datasetArg, ""
		if isURL(datasetArg) {
			cfg.Dataset.Path, cfg.Dataset.URL = "", datasetArg
		}
	}
	if flags.Changed("limit") {
		cfg.Dataset.Limit = limitArg
	}
	if noLimit {
		cfg.Dataset.Limit = 0
	}
	if useSample {
		cfg.Dataset.Sample = true
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// setup 初始化日誌、語料庫、會話儲存與對話服務
func setup(ctx context.Context, cfg *config.Config) (*application, error) {
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	recipes, err := loadRecipes(ctx, cfg.Dataset)
	if err != nil {
		return nil, err
	}
	c := recipe.NewCorpus(recipes)
	if !c.Ready() {
		return nil, fmt.Errorf("dataset has no usable recipes: %w", corpus.ErrEmptyCorpus)
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New(func() int { return store.Stats().Size })
	m.CorpusRecipes.Set(float64(c.Len()))

	rules := nlu.DefaultRules()
	resolver := nlu.NewResolver(c.Vocabulary(), nlu.DefaultAliases(), cfg.Matching.FuzzyThreshold)
	svc := chat.NewService(
		nlu.NewParser(resolver, rules),
		recipe.NewMatcher(cfg.Matching.Recipe(), rules),
		c,
		store,
		chat.WithObserver(m),
		chat.WithSearchLimit(cfg.Matching.SearchLimit),
	)

	common.LogInfo("服務初始化完成",
		zap.Int("recipes", c.Len()),
		zap.Int("vocabulary", c.Vocabulary().Len()),
		zap.String("session_backend", cfg.Session.Backend),
	)
	return &application{cfg: cfg, chat: svc, store: store, metrics: m}, nil
}

// loadRecipes 依設定讀取資料集，未設定來源時使用內建範例
func loadRecipes(ctx context.Context, ds config.DatasetConfig) ([]recipe.Recipe, error) {
	source := ds.Source()
	if ds.Sample || source == "" {
		if source == "" && !ds.Sample {
			common.LogWarn("未設定資料集，使用內建範例食譜")
		}
		recipes := corpus.Sample()
		if ds.Limit > 0 && len(recipes) > ds.Limit {
			recipes = recipes[:ds.Limit]
		}
		return recipes, nil
	}

	loadCtx, cancel := context.WithTimeout(ctx, ds.FetchTimeout*time.Duration(ds.FetchRetries+1))
	defer cancel()

	loader := corpus.NewLoader(ds.Limit, corpus.NewFetcher(ds.FetchTimeout, ds.FetchRetries))
	recipes, err := loader.Load(loadCtx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", source, err)
	}
	return recipes, nil
}

func newStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store, err := session.NewRedisStore(ctx, client, cfg.Session.Options())
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return store, nil
	case "memory", "":
		return session.NewMemoryStore(cfg.Session.Options(), nil), nil
	default:
		return nil, errors.New("unknown session backend: " + cfg.Session.Backend)
	}
}
