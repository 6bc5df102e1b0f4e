// Package cli implements the interactive console and the one-shot query
// mode on top of the chat service.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recipe-bot/internal/core/chat"
	"recipe-bot/internal/core/nlu"
	"recipe-bot/internal/pkg/common"
)

const prompt = "You: "

// Console 互動式主控台
type Console struct {
	svc       *chat.Service
	in        io.Reader
	out       io.Writer
	sessionID string
}

// NewConsole 建立主控台，整個主控台使用同一個會話
func NewConsole(svc *chat.Service, in io.Reader, out io.Writer) *Console {
	return &Console{
		svc:       svc,
		in:        in,
		out:       out,
		sessionID: "console-" + uuid.New().String(),
	}
}

// SessionID 主控台使用的會話 ID
func (c *Console) SessionID() string {
	return c.sessionID
}

// Run 執行讀取與回應迴圈，直到使用者離開、輸入結束或 ctx 取消
func (c *Console) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)

	fmt.Fprintln(c.out, chat.Welcome())
	fmt.Fprintln(c.out)

	for {
		fmt.Fprint(c.out, prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return nil
		default:
		}

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		resp, err := c.svc.ProcessMessage(ctx, c.sessionID, line)
		if err != nil {
			common.LogError("主控台訊息處理失敗",
				zap.String("session_id", c.sessionID),
				zap.Error(err),
			)
		}

		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Bot: "+resp.Message)
		fmt.Fprintln(c.out)

		if resp.Intent == nlu.IntentQuit {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}

	fmt.Fprintln(c.out)
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
