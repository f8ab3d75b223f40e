package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	askCSVPath  string
	askXLSXPath string
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask \"<question>\"",
	Short: "Answer a single question against the loaded dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rows, err := loadRows(ctx, askCSVPath, askXLSXPath)
		if err != nil {
			return err
		}
		asst, err := buildAssistant(rows)
		if err != nil {
			return err
		}

		ans, err := asst.Reply(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "answer")
		}

		if askJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(ans), "encode answer")
		}

		fmt.Println(ans.Text)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askCSVPath, "csv", "", "answer against a CSV export instead of the snapshot")
	askCmd.Flags().StringVar(&askXLSXPath, "xlsx", "", "answer against an XLSX export instead of the snapshot")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the structured result as JSON")
	rootCmd.AddCommand(askCmd)
}
