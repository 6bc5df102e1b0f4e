// recipe-bot 以自然語言查詢食譜的對話服務
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	datasetArg string
	limitArg   int
	noLimit    bool
	useSample  bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "recipe-bot",
	Short: "Conversational recipe finder",
	Long: `recipe-bot understands free-text cooking queries ("vegan pasta without
mushrooms") and ranks recipes from a corpus by ingredient overlap, dietary
restrictions and meal category. It runs as an HTTP API, an interactive
console or a one-shot query tool.`,
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default: ./config.yaml or ./configs/config.yaml)")
	flags.StringVarP(&datasetArg, "dataset", "d", "", "recipe dataset path or http(s) URL (json, csv, yaml)")
	flags.IntVarP(&limitArg, "limit", "l", 0, "maximum number of recipes to load")
	flags.BoolVar(&noLimit, "no-limit", false, "load every recipe in the dataset")
	flags.BoolVar(&useSample, "sample", false, "use the built-in sample recipes")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, chatCmd, queryCmd, versionCmd)
	_ = godotenv.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
