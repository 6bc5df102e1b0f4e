package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"recipe-bot/internal/core/nlu"
	"recipe-bot/internal/core/recipe"
	"recipe-bot/internal/core/session"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Dataset     DatasetConfig   `mapstructure:"dataset"`
	Matching    MatchingConfig  `mapstructure:"matching"`
	Session     SessionConfig   `mapstructure:"session"`
	Redis       RedisConfig     `mapstructure:"redis"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window" validate:"min=0"`
	LogLevel    string          `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogDir      string          `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name" validate:"required"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxBodySize     int64         `mapstructure:"max_body_size" validate:"gt=0"`
	AllowOrigins    []string      `mapstructure:"allow_origins"`
}

// DatasetConfig 食譜資料集設定
type DatasetConfig struct {
	Path         string        `mapstructure:"path"`
	URL          string        `mapstructure:"url" validate:"omitempty,url"`
	Limit        int           `mapstructure:"limit" validate:"min=0"`
	Sample       bool          `mapstructure:"sample"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" validate:"gt=0"`
	FetchRetries int           `mapstructure:"fetch_retries" validate:"min=0,max=10"`
}

// Source 資料集來源，網址優先於本機路徑
func (d DatasetConfig) Source() string {
	if d.URL != "" {
		return d.URL
	}
	return d.Path
}

// MatchingConfig 比對與排序參數
type MatchingConfig struct {
	FuzzyThreshold   float64 `mapstructure:"fuzzy_threshold" validate:"gt=0,lt=1"`
	NameThreshold    float64 `mapstructure:"name_threshold" validate:"gt=0,lt=1"`
	MatchWeight      float64 `mapstructure:"match_weight" validate:"min=0,max=1"`
	CoverageWeight   float64 `mapstructure:"coverage_weight" validate:"min=0,max=1"`
	ExclusionPenalty float64 `mapstructure:"exclusion_penalty" validate:"min=0,max=1"`
	MinScore         float64 `mapstructure:"min_score" validate:"min=0,max=1"`
	MustHaveRatio    float64 `mapstructure:"must_have_ratio" validate:"min=0,max=1"`
	DefaultLimit     int     `mapstructure:"default_limit" validate:"min=1"`
	SearchLimit      int     `mapstructure:"search_limit" validate:"min=1,max=500"` // 對話搜尋保留的結果數
}

// Recipe 轉為比對器使用的設定
func (m MatchingConfig) Recipe() recipe.Config {
	return recipe.Config{
		FuzzyThreshold:   m.FuzzyThreshold,
		NameThreshold:    m.NameThreshold,
		MatchWeight:      m.MatchWeight,
		CoverageWeight:   m.CoverageWeight,
		ExclusionPenalty: m.ExclusionPenalty,
		MinScore:         m.MinScore,
		MustHaveRatio:    m.MustHaveRatio,
		DefaultLimit:     m.DefaultLimit,
	}
}

// SessionConfig 會話設定
type SessionConfig struct {
	Backend         string        `mapstructure:"backend" validate:"oneof=memory redis"`
	TTL             time.Duration `mapstructure:"ttl" validate:"gt=0"`
	MaxSize         int           `mapstructure:"max_size" validate:"min=1"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"gt=0"`
	RecipesPerPage  int           `mapstructure:"recipes_per_page" validate:"min=1,max=50"`
}

// Options 轉為會話儲存設定
func (s SessionConfig) Options() session.Options {
	return session.Options{
		TTL:             s.TTL,
		MaxSize:         s.MaxSize,
		CleanupInterval: s.CleanupInterval,
		RecipesPerPage:  s.RecipesPerPage,
	}
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// envBindings 常用環境變數名稱
var envBindings = map[string]string{
	"server.port":         "PORT",
	"app.env":             "APP_ENV",
	"app.debug":           "DEBUG",
	"dataset.path":        "DATASET_PATH",
	"dataset.url":         "DATASET_URL",
	"dataset.limit":       "LIMIT_RECIPES",
	"dataset.sample":      "USE_SAMPLE_DATA",
	"session.backend":     "SESSION_BACKEND",
	"session.ttl":         "SESSION_TTL",
	"redis.addr":          "REDIS_ADDR",
	"redis.password":      "REDIS_PASSWORD",
	"redis.db":            "REDIS_DB",
	"rate_limit.enabled":  "RATE_LIMIT_ENABLED",
	"rate_limit.requests": "RATE_LIMIT_REQUESTS",
	"rate_limit.window":   "RATE_LIMIT_WINDOW",
	"dedup_window":        "DEDUP_WINDOW",
	"log_level":           "LOG_LEVEL",
	"log_dir":             "LOG_DIR",
}

// LoadConfig 載入設定
//
// 優先順序為環境變數、設定檔、預設值。path 為空時在目前目錄與 configs/ 尋找 config.*，找不到不視為錯誤。
func LoadConfig(path string) (*Config, error) {
	// 加載 .env 文件
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	for key, env := range envBindings {
		if err := v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.LogLevel = strings.ToLower(config.LogLevel)

	// 驗證必要設定
	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// Default 回傳只含預設值的設定
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// 預設值皆為合法型別，不會失敗
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-bot")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.max_body_size", 1<<20)
	v.SetDefault("server.allow_origins", []string{"*"})

	// 資料集設定
	v.SetDefault("dataset.path", "")
	v.SetDefault("dataset.url", "")
	v.SetDefault("dataset.limit", 0)
	v.SetDefault("dataset.sample", false)
	v.SetDefault("dataset.fetch_timeout", "60s")
	v.SetDefault("dataset.fetch_retries", 2)

	// 比對設定
	def := recipe.DefaultConfig()
	v.SetDefault("matching.fuzzy_threshold", nlu.DefaultFuzzyThreshold)
	v.SetDefault("matching.name_threshold", def.NameThreshold)
	v.SetDefault("matching.match_weight", def.MatchWeight)
	v.SetDefault("matching.coverage_weight", def.CoverageWeight)
	v.SetDefault("matching.exclusion_penalty", def.ExclusionPenalty)
	v.SetDefault("matching.min_score", def.MinScore)
	v.SetDefault("matching.must_have_ratio", def.MustHaveRatio)
	v.SetDefault("matching.default_limit", def.DefaultLimit)
	v.SetDefault("matching.search_limit", def.DefaultLimit)

	// 會話設定
	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.max_size", 10000)
	v.SetDefault("session.cleanup_interval", "1m")
	v.SetDefault("session.recipes_per_page", session.DefaultRecipesPerPage)

	// Redis 設定
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("dedup_window", "0s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "")
}

var validate = validator.New()

// Validate 驗證設定，包含跨欄位規則
func Validate(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return err
	}

	if config.Session.Backend == "redis" && config.Redis.Addr == "" {
		return fmt.Errorf("redis address is required when session backend is redis")
	}
	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}
	if config.Matching.MatchWeight+config.Matching.CoverageWeight == 0 {
		return fmt.Errorf("match weight and coverage weight cannot both be zero")
	}
	return nil
}
