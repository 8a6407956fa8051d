// Package service orchestrates the statement pipeline: PDF text extraction,
// table extraction, cleaning, and category annotation.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bcakit/mutasi2xlsx/internal/domain/category"
	"github.com/bcakit/mutasi2xlsx/internal/domain/statement"
	"github.com/bcakit/mutasi2xlsx/internal/domain/statement/cleaner"
	"github.com/bcakit/mutasi2xlsx/internal/domain/statement/parser"
)

// Result is the outcome of processing one document.
type Result struct {
	Records     []statement.TransactionRecord
	Columns     []string
	Categorized bool
}

// StatementService runs the extraction pipeline. It holds no per-document
// state; every call is a pure function of (text, rules), so concurrent
// requests need no coordination.
type StatementService struct {
	logger *slog.Logger
}

// NewStatementService creates a new statement service.
func NewStatementService(logger *slog.Logger) *StatementService {
	return &StatementService{logger: logger}
}

// ProcessText extracts, cleans, and annotates transactions from already
// extracted statement text. With a nil or empty rule list the records are
// returned unannotated and the column list omits CATEGORY.
//
// Failures are terminal for the document: statement.ErrEmptyExtraction,
// statement.ErrNoTableFound, or statement.ErrNoValidRows. Malformed cells
// never fail, they degrade to nil values or skipped rows.
func (s *StatementService) ProcessText(ctx context.Context, text string, rules []category.Rule) (*Result, error) {
	rows, err := parser.Extract(text)
	if err != nil {
		return nil, err
	}

	records := cleaner.Clean(rows)
	if len(records) == 0 {
		return nil, statement.ErrNoValidRows
	}

	categorized := false
	if len(rules) > 0 {
		records = category.NewMapper(rules).Annotate(records)
		categorized = true
	}

	s.logger.InfoContext(ctx, "statement processed",
		slog.Int("raw_rows", len(rows)),
		slog.Int("transactions", len(records)),
		slog.Bool("categorized", categorized),
	)

	return &Result{
		Records:     records,
		Columns:     statement.Columns(categorized),
		Categorized: categorized,
	}, nil
}

// ProcessPDF extracts the text layer from PDF bytes and processes it.
func (s *StatementService) ProcessPDF(ctx context.Context, data []byte, rules []category.Rule) (*Result, error) {
	text, err := parser.ExtractText(data)
	if err != nil {
		return nil, fmt.Errorf("error reading PDF: %w", err)
	}
	return s.ProcessText(ctx, text, rules)
}

// Annotate re-runs classification over existing records with a new rule
// list, returning fresh records. Categories are overwritten, not appended.
func (s *StatementService) Annotate(records []statement.TransactionRecord, rules []category.Rule) []statement.TransactionRecord {
	return category.NewMapper(rules).Annotate(records)
}
