package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/relocate-cli/internal/store"
)

var (
	loadCSVPath  string
	loadXLSXPath string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Validate a home value export and snapshot it into the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if loadCSVPath == "" && loadXLSXPath == "" {
			return eris.New("one of --csv or --xlsx is required")
		}

		rows, err := loadRows(ctx, loadCSVPath, loadXLSXPath)
		if err != nil {
			return err
		}

		// Build the index first: load-time validation (duplicate periods,
		// non-positive values) happens here, before anything is stored.
		ix, err := store.NewIndex(rows)
		if err != nil {
			return err
		}

		snap, err := initSnapshot(ctx)
		if err != nil {
			return err
		}
		defer snap.Close()

		if err := snap.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate snapshot")
		}
		if err := snap.Replace(ctx, rows); err != nil {
			return err
		}

		zap.L().Info("dataset loaded",
			zap.Int("metros", ix.Len()),
			zap.Int("rows", len(rows)),
		)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadCSVPath, "csv", "", "path to CSV export")
	loadCmd.Flags().StringVar(&loadXLSXPath, "xlsx", "", "path to XLSX export")
	rootCmd.AddCommand(loadCmd)
}
