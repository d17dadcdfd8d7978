package interfaces

//go:generate moq -out mocks/usecase_mock.go -pkg mocks . RecordStore EnrichUseCase

import (
	"context"

	"github.com/buildprobe/buildprobe/pkg/domain/model"
)

// RecordStore loads and persists the ordered package record list
type RecordStore interface {
	// Load reads every record from path
	Load(ctx context.Context, path string) ([]*model.Record, error)

	// Save writes records to path, preserving order
	Save(ctx context.Context, path string, records []*model.Record) error
}

// EnrichUseCase annotates a single record with build-system metadata
type EnrichUseCase interface {
	// Enrich mutates rec in place and reports the tagged outcome
	Enrich(ctx context.Context, index int, rec *model.Record) model.Outcome
}

// AnnotateUseCase drives one annotate run over a record file
type AnnotateUseCase interface {
	// Run enriches every record in path and writes them back in input order
	Run(ctx context.Context, path string) (*model.BatchSummary, error)
}

// TableWriter persists a flat table export
type TableWriter interface {
	WriteTable(ctx context.Context, path string, table *model.Table) error
}

// ExportUseCase converts an annotated record file into a flat table
type ExportUseCase interface {
	// Run reads records from input and writes the table to output
	Run(ctx context.Context, input, output string) (*model.Table, error)
}
