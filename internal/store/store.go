package store

import (
	"context"
	"time"

	"github.com/sells-group/relocate-cli/internal/model"
)

// SnapshotStats summarizes the persisted dataset.
type SnapshotStats struct {
	Metros   int       `json:"metros"`
	Rows     int       `json:"rows"`
	First    time.Time `json:"first"`
	Last     time.Time `json:"last"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Snapshot persists validated dataset rows so ask/chat/serve can rebuild
// the in-memory Index without re-parsing the export.
type Snapshot interface {
	// Replace atomically swaps the stored dataset for the given rows.
	Replace(ctx context.Context, rows []model.Row) error
	// Rows returns every stored row.
	Rows(ctx context.Context) ([]model.Row, error)
	// Stats summarizes the stored dataset.
	Stats(ctx context.Context) (SnapshotStats, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
