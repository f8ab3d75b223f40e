// Package dataset parses ZHVI-style home value exports (CSV or XLSX) into
// validated rows for the price index store.
package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the streaming CSV reader.
type CSVOptions struct {
	Delimiter  rune // default ','
	LazyQuotes bool
	TrimSpace  bool
}

// streamCSV reads CSV records and sends them to a channel. The caller must
// consume the row channel; both channels are closed when processing ends.
func streamCSV(ctx context.Context, r io.Reader, opts CSVOptions) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		if opts.Delimiter != 0 {
			reader.Comma = opts.Delimiter
		}
		reader.LazyQuotes = opts.LazyQuotes
		reader.FieldsPerRecord = -1 // allow variable fields

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			if opts.TrimSpace {
				for i, field := range record {
					record[i] = strings.TrimSpace(field)
				}
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// ReadCSV parses a CSV export into dataset rows. The first record is the
// header; long and wide layouts are auto-detected (see ParseTable).
func ReadCSV(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	rowCh, errCh := streamCSV(ctx, r, CSVOptions{TrimSpace: true, LazyQuotes: true})

	var records [][]string
	for row := range rowCh {
		records = append(records, row)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	return ParseTable(records, opts)
}
