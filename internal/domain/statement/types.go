// Package statement defines the shared types for the statement extraction
// pipeline: the transient raw row produced by the table extractor and the
// canonical transaction record produced by the cleaner.
package statement

import "errors"

// Column indices of a RawRow. The source table has a fixed five-column
// layout: TANGGAL, KETERANGAN, DETAIL TRANSAKSI, MUTASI, SALDO.
const (
	ColDate = iota
	ColShortDesc
	ColDetail
	ColAmount
	ColBalance
	ColumnCount
)

// RawRow is one tokenized table row: exactly five cells in column order.
// An empty cell means the column was absent on that physical line
// (continuation rows carry only a description fragment).
type RawRow []string

// NewRawRow builds a five-cell row from the given cells, padding with
// empty strings when fewer than five are supplied.
func NewRawRow(cells ...string) RawRow {
	row := make(RawRow, ColumnCount)
	copy(row, cells)
	return row
}

// TransactionRecord is the canonical unit of output. Amount and Balance are
// nil when the source text carried no parseable number for the column.
// Category stays empty until an annotate pass assigns one.
type TransactionRecord struct {
	Date        string   `json:"TANGGAL" csv:"TANGGAL"`
	ShortDesc   string   `json:"KETERANGAN" csv:"KETERANGAN"`
	Detail      string   `json:"DETAIL TRANSAKSI" csv:"DETAIL TRANSAKSI"`
	Amount      *float64 `json:"MUTASI" csv:"MUTASI"`
	Balance     *float64 `json:"SALDO" csv:"SALDO"`
	Category    string   `json:"CATEGORY,omitempty" csv:"CATEGORY"`
}

// Column labels of the source statement format.
const (
	ColumnDate      = "TANGGAL"
	ColumnShortDesc = "KETERANGAN"
	ColumnDetail    = "DETAIL TRANSAKSI"
	ColumnAmount    = "MUTASI"
	ColumnBalance   = "SALDO"
	ColumnCategory  = "CATEGORY"
)

// Columns returns the fixed output column order. When categorized is true,
// CATEGORY is inserted immediately after DETAIL TRANSAKSI.
func Columns(categorized bool) []string {
	if categorized {
		return []string{ColumnDate, ColumnShortDesc, ColumnDetail, ColumnCategory, ColumnAmount, ColumnBalance}
	}
	return []string{ColumnDate, ColumnShortDesc, ColumnDetail, ColumnAmount, ColumnBalance}
}

// Terminal extraction errors. They are reported verbatim to the caller;
// retrying an identical parse on identical text cannot succeed.
var (
	// ErrEmptyExtraction means the extracted text was empty or whitespace-only.
	ErrEmptyExtraction = errors.New("document contains no extractable text")

	// ErrNoTableFound means no transaction table header was recognized.
	ErrNoTableFound = errors.New("no transaction tables found, verify file format")

	// ErrNoValidRows means a table was detected but no row survived cleaning.
	ErrNoValidRows = errors.New("no valid transaction data after cleaning")
)
