package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"recipe-bot/internal/core/chat"
	"recipe-bot/internal/pkg/common"
)

// RunQueries 逐一解析並比對查詢，輸出解析結果與前幾名食譜
func RunQueries(ctx context.Context, svc *chat.Service, out io.Writer, queries []string, limit int) error {
	for i, text := range queries {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Query: %s\n", text)

		q := svc.Parse(text)
		parsed, err := common.ToJSON(q)
		if err != nil {
			return fmt.Errorf("failed to encode parsed query: %w", err)
		}
		fmt.Fprintf(out, "Parsed: %s\n", parsed)

		if !q.HasConstraints() {
			fmt.Fprintln(out, "Results: none (no search constraints)")
			continue
		}

		matches, err := svc.Match(ctx, q, limit)
		if err != nil {
			return fmt.Errorf("failed to match %q: %w", text, err)
		}
		if len(matches) == 0 {
			fmt.Fprintln(out, "Results: none")
			continue
		}
		fmt.Fprintf(out, "Results (%d):\n", len(matches))
		for rank, m := range matches {
			fmt.Fprintf(out, "  %d. %s [score %.3f, matched %d: %s]\n",
				rank+1, m.Recipe.Name, m.Result.Score, m.Result.MatchCount,
				strings.Join(m.Result.CommonIngredients, ", "))
		}
	}
	return nil
}
