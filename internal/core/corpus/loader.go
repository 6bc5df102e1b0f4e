// Package corpus loads recipe datasets from JSON, CSV or YAML files or URLs,
// maps their columns onto recipe fields and cleans raw ingredient strings.
package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"recipe-bot/internal/core/recipe"
	"recipe-bot/internal/pkg/common"
)

var (
	// ErrUnsupportedFormat 無法辨識的資料集格式
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrEmptyCorpus 資料集中沒有可用的食譜
	ErrEmptyCorpus = errors.New("dataset contains no recipes")
)

// Format 資料集格式
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// 欄位候選名稱，依序取第一個存在的欄位
var (
	idKeys          = []string{"id", "recipe_id", "_id"}
	nameKeys        = []string{"title", "name", "recipe_name"}
	ingredientKeys  = []string{"ingredients", "ingredient_list", "ingredients_list", "raw_ingredients"}
	cleanedKeys     = []string{"cleaned_ingredients"}
	instructionKeys = []string{"instructions", "directions", "steps", "method"}
	categoryKeys    = []string{"category", "categories", "type", "dish_type", "meal_type", "recipe_type"}
	tagKeys         = []string{"tags"}
	keywordKeys     = []string{"keywords"}
	descriptionKeys = []string{"description", "summary"}
	cuisineKeys     = []string{"cuisine"}
	cookTimeKeys    = []string{"cook_time", "total_time", "cooking_time", "prep_time"}
	ratingKeys      = []string{"rating", "ratings", "stars"}
	urlKeys         = []string{"url", "picture_link", "link", "source_url"}
	containerKeys   = []string{"recipes", "data", "items"}
)

// Loader 讀取資料集並轉為食譜
type Loader struct {
	limit   int
	workers int
	cleaner *Cleaner
	fetcher *Fetcher
}

// decodeChunkSize 每個工作者一次處理的列數
const decodeChunkSize = 512

// NewLoader 建立載入器，limit <= 0 表示不限制數量
func NewLoader(limit int, fetcher *Fetcher) *Loader {
	if fetcher == nil {
		fetcher = NewFetcher(30*time.Second, 2)
	}
	return &Loader{limit: limit, workers: runtime.GOMAXPROCS(0), cleaner: NewCleaner(), fetcher: fetcher}
}

// Load 依來源是否為 http(s) 網址決定讀取檔案或下載
func (l *Loader) Load(ctx context.Context, source string) ([]recipe.Recipe, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.LoadURL(ctx, source)
	}
	return l.LoadFile(ctx, source)
}

// LoadFile 讀取本機資料集，格式由副檔名決定
func (l *Loader) LoadFile(ctx context.Context, path string) ([]recipe.Recipe, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	start := time.Now()
	recipes, err := l.Decode(ctx, data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	common.LogInfo("已載入資料集",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("recipes", len(recipes)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return recipes, nil
}

// LoadURL 下載遠端資料集，格式依 Content-Type 判斷，無法判斷時看網址副檔名
func (l *Loader) LoadURL(ctx context.Context, url string) ([]recipe.Recipe, error) {
	data, contentType, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	format, ok := formatFromContentType(contentType)
	if !ok {
		path := url
		if i := strings.IndexAny(path, "?#"); i >= 0 {
			path = path[:i]
		}
		if format, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}
	return l.Decode(ctx, data, format)
}

// FormatFromPath 由副檔名判斷格式
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func formatFromContentType(ct string) (Format, bool) {
	ct = strings.ToLower(ct)
	switch {
	case strings.Contains(ct, "json"):
		return FormatJSON, true
	case strings.Contains(ct, "csv"):
		return FormatCSV, true
	case strings.Contains(ct, "yaml"):
		return FormatYAML, true
	default:
		return "", false
	}
}

// Decode 解析資料集內容並清理食材
//
// 欄位對應與食材清理由多個工作者分段並行處理，輸出順序與資料集相同。
func (l *Loader) Decode(ctx context.Context, data []byte, format Format) ([]recipe.Recipe, error) {
	rows, err := decodeRows(data, format)
	if err != nil {
		return nil, err
	}
	if l.limit > 0 && len(rows) > l.limit {
		rows = rows[:l.limit]
	}

	converted := make([]recipe.Recipe, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for start := 0; start < len(rows); start += decodeChunkSize {
		end := min(start+decodeChunkSize, len(rows))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				converted[i] = l.toRecipe(rows[i], i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recipes := converted[:0]
	for _, r := range converted {
		if r.Name == "" && len(r.RawIngredients) == 0 {
			continue
		}
		recipes = append(recipes, r)
	}
	if len(recipes) == 0 {
		return nil, ErrEmptyCorpus
	}
	return recipes, nil
}

func decodeRows(data []byte, format Format) ([]map[string]any, error) {
	switch format {
	case FormatCSV:
		maps, err := gocsv.CSVToMaps(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		rows := make([]map[string]any, 0, len(maps))
		for _, m := range maps {
			row := make(map[string]any, len(m))
			for k, v := range m {
				row[k] = v
			}
			rows = append(rows, row)
		}
		return rows, nil
	case FormatJSON:
		var v any
		if err := common.ParseJSONBytes(data, &v); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		return rowsFrom(v)
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("invalid yaml: %w", err)
		}
		return rowsFrom(v)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// rowsFrom 接受物件陣列、以 ID 為鍵的物件，或包在 recipes/data/items 之下的陣列
func rowsFrom(v any) ([]map[string]any, error) {
	switch t := v.(type) {
	case []any:
		rows := make([]map[string]any, 0, len(t))
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				rows = append(rows, m)
			}
		}
		return rows, nil
	case map[string]any:
		for _, key := range containerKeys {
			if inner, ok := t[key].([]any); ok {
				return rowsFrom(inner)
			}
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return naturalLess(keys[i], keys[j]) })

		rows := make([]map[string]any, 0, len(keys))
		for _, k := range keys {
			m, ok := t[k].(map[string]any)
			if !ok {
				common.LogWarn("略過非物件的資料集項目", zap.String("key", k))
				continue
			}
			if _, has := m["id"]; !has {
				m["id"] = k
			}
			rows = append(rows, m)
		}
		return rows, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: top level must be a list or an object", ErrUnsupportedFormat)
	}
}

func naturalLess(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return ai < bi
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

func (l *Loader) toRecipe(row map[string]any, pos int) recipe.Recipe {
	fields := make(map[string]any, len(row))
	for k, v := range row {
		key := strings.ToLower(strings.TrimSpace(k))
		key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
		fields[key] = v
	}
	pick := func(keys []string) any {
		for _, k := range keys {
			if v, ok := fields[k]; ok && v != nil {
				return v
			}
		}
		return nil
	}

	r := recipe.Recipe{
		ID:             toString(pick(idKeys)),
		Name:           toString(pick(nameKeys)),
		RawIngredients: toList(pick(ingredientKeys), true),
		Instructions:   toList(pick(instructionKeys), false),
		Category:       toString(pick(categoryKeys)),
		Tags:           toList(pick(tagKeys), true),
		Keywords:       toList(pick(keywordKeys), true),
		Description:    toString(pick(descriptionKeys)),
		Cuisine:        toString(pick(cuisineKeys)),
		CookTime:       toString(pick(cookTimeKeys)),
		Rating:         toFloat(pick(ratingKeys)),
		URL:            toString(pick(urlKeys)),
	}
	if r.ID == "" {
		r.ID = strconv.Itoa(pos)
	}
	if cleaned := toList(pick(cleanedKeys), true); len(cleaned) > 0 {
		for i := range cleaned {
			cleaned[i] = strings.ToLower(cleaned[i])
		}
		r.CleanedIngredients = cleaned
	} else {
		r.CleanedIngredients = l.cleaner.Clean(r.RawIngredients)
	}
	return r
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case []any:
		parts := toList(t, false)
		return strings.Join(parts, ", ")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case json.Number:
		f, _ := t.Float64()
		return f
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f
	default:
		return 0
	}
}

// toList 將清單欄位轉為字串陣列
//
// 字串欄位可以是 JSON 陣列，或以 "|"、換行分隔；splitComma 為 true 時也接受逗號分隔。
func toList(v any, splitComma bool) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := toString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return toList(stringsToAny(t), splitComma)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
			var items []any
			if err := json.Unmarshal([]byte(s), &items); err == nil {
				return toList(items, splitComma)
			}
		}
		var parts []string
		switch {
		case strings.Contains(s, "|"):
			parts = strings.Split(s, "|")
		case strings.Contains(s, "\n"):
			parts = strings.Split(s, "\n")
		case splitComma && strings.Contains(s, ","):
			parts = strings.Split(s, ",")
		default:
			parts = []string{s}
		}
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		if s := toString(t); s != "" {
			return []string{s}
		}
		return nil
	}
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
