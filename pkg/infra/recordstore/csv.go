package recordstore

import (
	"context"
	"encoding/csv"
	"os"

	"github.com/m-mizutani/goerr/v2"

	"github.com/buildprobe/buildprobe/pkg/domain/interfaces"
	"github.com/buildprobe/buildprobe/pkg/domain/model"
)

// CSVWriter writes a flat table to a CSV file
type CSVWriter struct{}

var _ interfaces.TableWriter = (*CSVWriter)(nil)

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// WriteTable writes the header and rows to path, replacing any existing file
func (w *CSVWriter) WriteTable(ctx context.Context, path string, table *model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(err, "failed to create CSV file", goerr.V("path", path))
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(table.Header); err != nil {
		return goerr.Wrap(err, "failed to write CSV header", goerr.V("path", path))
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return goerr.Wrap(err, "failed to write CSV rows", goerr.V("path", path))
	}

	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close CSV file", goerr.V("path", path))
	}
	return nil
}
