package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/relocate-cli/internal/assistant"
	"github.com/sells-group/relocate-cli/internal/dataset"
	"github.com/sells-group/relocate-cli/internal/model"
	"github.com/sells-group/relocate-cli/internal/resolve"
	"github.com/sells-group/relocate-cli/internal/store"
	"github.com/sells-group/relocate-cli/pkg/anthropic"
)

// initSnapshot opens the configured snapshot backend.
func initSnapshot(ctx context.Context) (store.Snapshot, error) {
	switch cfg.Store.Driver {
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return nil, eris.New("store.database_url is required for the postgres driver (RELOCATE_STORE_DATABASE_URL)")
		}
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.Path)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// loadRows reads dataset rows from an explicit file, or from the snapshot
// when no file is given.
func loadRows(ctx context.Context, csvPath, xlsxPath string) ([]model.Row, error) {
	switch {
	case csvPath != "":
		f, err := os.Open(csvPath)
		if err != nil {
			return nil, eris.Wrapf(err, "open %s", csvPath)
		}
		defer f.Close()

		res, err := dataset.ReadCSV(ctx, f, dataset.Options{Strict: cfg.Dataset.Strict})
		if err != nil {
			return nil, err
		}
		logSkipped(res)
		return res.Rows, nil

	case xlsxPath != "":
		res, err := dataset.ReadXLSX(xlsxPath, dataset.XLSXOptions{}, dataset.Options{Strict: cfg.Dataset.Strict})
		if err != nil {
			return nil, err
		}
		logSkipped(res)
		return res.Rows, nil

	default:
		snap, err := initSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		defer snap.Close()

		if err := snap.Migrate(ctx); err != nil {
			return nil, eris.Wrap(err, "migrate snapshot")
		}
		rows, err := snap.Rows(ctx)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, eris.New("snapshot is empty; run 'relocate-cli load' first or pass --csv")
		}
		return rows, nil
	}
}

// buildAssistant constructs the full answer chain from dataset rows.
func buildAssistant(rows []model.Row) (*assistant.Assistant, error) {
	ix, err := store.NewIndex(rows)
	if err != nil {
		return nil, err
	}

	overrides, err := resolve.LoadAliases(cfg.Resolver.AliasFile)
	if err != nil {
		return nil, err
	}

	var polisher *anthropic.Polisher
	if cfg.Anthropic.Key != "" {
		client := anthropic.NewClient(cfg.Anthropic.Key)
		polisher = anthropic.NewPolisher(client, cfg.Anthropic.Model, cfg.Anthropic.PolishPerSecond)
	}

	zap.L().Info("index built", zap.Int("metros", ix.Len()))
	return assistant.New(ix, overrides, polisher), nil
}

func logSkipped(res *dataset.Result) {
	if res.Skipped > 0 {
		zap.L().Warn("skipped unparsable dataset cells",
			zap.Int("skipped", res.Skipped),
			zap.Int("rows", len(res.Rows)),
		)
	}
}
