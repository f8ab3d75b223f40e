package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show snapshot contents",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		snap, err := initSnapshot(ctx)
		if err != nil {
			return err
		}
		defer snap.Close()

		if err := snap.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate snapshot")
		}

		st, err := snap.Stats(ctx)
		if err != nil {
			return err
		}

		if st.Rows == 0 {
			fmt.Println("snapshot is empty; run 'relocate-cli load' first")
			return nil
		}

		fmt.Printf("metros:    %d\n", st.Metros)
		fmt.Printf("rows:      %d\n", st.Rows)
		fmt.Printf("periods:   %s to %s\n", st.First.Format("2006-01-02"), st.Last.Format("2006-01-02"))
		if !st.LoadedAt.IsZero() {
			fmt.Printf("loaded at: %s\n", st.LoadedAt.Format("2006-01-02 15:04:05 MST"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
