package cleaner

import (
	"strings"

	"github.com/bcakit/mutasi2xlsx/internal/domain/statement"
	"github.com/bcakit/mutasi2xlsx/internal/domain/statement/parser"
)

// Clean runs the full row pipeline: drop invalid rows, merge wrapped
// continuation lines, map each merged row to a TransactionRecord, and drop
// records without a date. Output order follows input order.
func Clean(rows []statement.RawRow) []statement.TransactionRecord {
	valid := rows[:0:0]
	for _, row := range rows {
		if parser.IsValidRow(row) {
			valid = append(valid, row)
		}
	}

	merged := parser.MergeContinuations(valid)

	records := make([]statement.TransactionRecord, 0, len(merged))
	for _, row := range merged {
		rec := toRecord(row)
		if rec.Date == "" {
			continue // a transaction without a date is extraction noise
		}
		records = append(records, rec)
	}

	return records
}

// toRecord maps one merged row to the canonical record. Short rows are
// padded so that every column is addressable; string cells are trimmed and
// the two numeric cells go through the currency normalizer.
func toRecord(row statement.RawRow) statement.TransactionRecord {
	padded := statement.NewRawRow(row...)
	return statement.TransactionRecord{
		Date:      strings.TrimSpace(padded[statement.ColDate]),
		ShortDesc: strings.TrimSpace(padded[statement.ColShortDesc]),
		Detail:    strings.TrimSpace(padded[statement.ColDetail]),
		Amount:    CleanCurrency(padded[statement.ColAmount]),
		Balance:   CleanCurrency(padded[statement.ColBalance]),
	}
}
