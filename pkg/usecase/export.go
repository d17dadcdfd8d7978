package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/buildprobe/buildprobe/pkg/domain/interfaces"
	"github.com/buildprobe/buildprobe/pkg/domain/model"
)

// leadingColumns always come first in the export, in this order
var leadingColumns = []string{"url", "version"}

type exporter struct {
	store  interfaces.RecordStore
	writer interfaces.TableWriter
	logger *slog.Logger
}

// NewExporter creates a new ExportUseCase instance
func NewExporter(store interfaces.RecordStore, writer interfaces.TableWriter, logger *slog.Logger) interfaces.ExportUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &exporter{
		store:  store,
		writer: writer,
		logger: logger,
	}
}

// Run loads annotated records from input and writes their flat view to output
func (uc *exporter) Run(ctx context.Context, input, output string) (*model.Table, error) {
	records, err := uc.store.Load(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load package records", goerr.V("path", input))
	}

	table := BuildExportTable(records)
	if err := uc.writer.WriteTable(ctx, output, table); err != nil {
		return nil, goerr.Wrap(err, "failed to write export", goerr.V("path", output))
	}

	uc.logger.Info("Exported package records",
		"input", input,
		"output", output,
		"records", len(records),
		"rows", len(table.Rows),
		"columns", len(table.Header),
	)
	return table, nil
}

// BuildExportTable flattens successfully annotated records into a table.
// Records with an enrichment error or an unsupported host are dropped.
// Columns are url and version followed by every other non-mapping top-level
// key in sorted order.
func BuildExportTable(records []*model.Record) *model.Table {
	var kept []*model.Record
	for _, rec := range records {
		if exportable(rec) {
			kept = append(kept, rec)
		}
	}

	extra := map[string]struct{}{}
	for _, rec := range kept {
		for _, k := range rec.Keys() {
			if _, nested := rec.GetRecord(k); nested {
				continue
			}
			extra[k] = struct{}{}
		}
	}
	for _, k := range leadingColumns {
		delete(extra, k)
	}

	sorted := make([]string, 0, len(extra))
	for k := range extra {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	header := append(append([]string{}, leadingColumns...), sorted...)
	rows := make([][]string, 0, len(kept))
	for _, rec := range kept {
		row := make([]string, len(header))
		for i, col := range header {
			v, ok := rec.Get(col)
			if !ok {
				continue
			}
			if _, nested := v.(*model.Record); nested {
				continue
			}
			row[i] = formatCell(v)
		}
		rows = append(rows, row)
	}

	return &model.Table{Header: header, Rows: rows}
}

func exportable(rec *model.Record) bool {
	meta, ok := rec.GetRecord(keyBuildMetadata)
	if !ok {
		return true
	}
	if v, ok := meta.Get("error"); ok && v != nil && v != "" {
		return false
	}
	if host, _ := meta.GetString("repo_host"); host == string(model.RepoHostUnknown) {
		return false
	}
	return true
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = formatCell(item)
		}
		return strings.Join(parts, ";")
	default:
		return fmt.Sprint(t)
	}
}
