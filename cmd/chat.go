package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	chatCSVPath  string
	chatXLSXPath string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat session on stdin/stdout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		rows, err := loadRows(ctx, chatCSVPath, chatXLSXPath)
		if err != nil {
			return err
		}
		asst, err := buildAssistant(rows)
		if err != nil {
			return err
		}

		sessionID := uuid.New().String()
		zap.L().Info("chat session started", zap.String("session_id", sessionID))

		fmt.Println("Ask about metro home prices ('compare austin and denver', 'cheapest metro under 400k'). Type 'quit' to exit.")

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "quit" || line == "exit" {
				break
			}

			ans, err := asst.Reply(ctx, line)
			if err != nil {
				zap.L().Error("turn failed", zap.String("session_id", sessionID), zap.Error(err))
				fmt.Println("Something went wrong with that one — try rephrasing.")
				continue
			}
			fmt.Println(ans.Text)
		}

		return eris.Wrap(scanner.Err(), "read stdin")
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatCSVPath, "csv", "", "chat against a CSV export instead of the snapshot")
	chatCmd.Flags().StringVar(&chatXLSXPath, "xlsx", "", "chat against an XLSX export instead of the snapshot")
	rootCmd.AddCommand(chatCmd)
}
