package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"recipe-bot/internal/cli"
)

var queryTop int

var queryCmd = &cobra.Command{
	Use:   "query [text...]",
	Short: "Parse and match one or more queries",
	Long: `Parse each argument as a separate query and print the structured
result together with the top matching recipes.

Examples:
  recipe-bot query "chicken and rice" "vegan pasta without mushrooms"
  recipe-bot query --sample --top 3 "gluten-free desserts"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTop, "top", "n", 5, "number of recipes to show per query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-level") {
		cfg.LogLevel = "warn"
	}

	ctx := context.Background()
	app, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	queries := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			queries = append(queries, a)
		}
	}
	return cli.RunQueries(ctx, app.chat, os.Stdout, queries, queryTop)
}
