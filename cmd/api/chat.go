package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"recipe-bot/internal/cli"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive console session",
	Long: `Chat with recipe-bot in the terminal. Type ingredients, dietary
preferences or a meal category to search, a number to see a recipe, 'more'
for the next page and 'quit' to exit.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// 主控台模式下日誌只輸出錯誤，避免打斷對話
	if !cmd.Flags().Changed("log-level") {
		cfg.LogLevel = "error"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := setup(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return cli.NewConsole(app.chat, os.Stdin, os.Stdout).Run(ctx)
}
