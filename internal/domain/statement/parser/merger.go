package parser

import (
	"strings"

	"github.com/bcakit/mutasi2xlsx/internal/domain/statement"
)

// MergeContinuations folds a sequence of validated rows into one row per
// logical transaction. A row whose first cell carries a date fragment starts
// a new transaction; rows without one are wrapped continuation lines and are
// merged into the transaction they follow. Continuation text is appended to
// the KETERANGAN and DETAIL TRANSAKSI cells; MUTASI and SALDO are backfilled
// only when the transaction does not already carry a value, never overwritten.
// Continuation rows arriving before any transaction has started are dropped.
func MergeContinuations(rows []statement.RawRow) []statement.RawRow {
	if len(rows) == 0 {
		return nil
	}

	var merged []statement.RawRow
	var current statement.RawRow

	for _, row := range rows {
		if len(row) < statement.ColumnCount {
			continue // malformed, cannot merge
		}

		if dateFragment.MatchString(strings.TrimSpace(row[statement.ColDate])) {
			if current != nil {
				merged = append(merged, current)
			}
			current = statement.NewRawRow(row...)
			continue
		}

		if current == nil {
			continue // continuation with no transaction to attach to
		}

		current[statement.ColDetail] = appendFragment(current[statement.ColDetail], row[statement.ColDetail])
		current[statement.ColShortDesc] = appendFragment(current[statement.ColShortDesc], row[statement.ColShortDesc])

		// Amounts on continuation lines fill gaps left by the main row.
		if strings.TrimSpace(current[statement.ColAmount]) == "" {
			if v := strings.TrimSpace(row[statement.ColAmount]); v != "" {
				current[statement.ColAmount] = v
			}
		}
		if strings.TrimSpace(current[statement.ColBalance]) == "" {
			if v := strings.TrimSpace(row[statement.ColBalance]); v != "" {
				current[statement.ColBalance] = v
			}
		}
	}

	if current != nil {
		merged = append(merged, current)
	}

	return merged
}

// appendFragment joins two description fragments with a single space,
// keeping whichever side is non-empty when the other is blank.
func appendFragment(base, fragment string) string {
	base = strings.TrimSpace(base)
	fragment = strings.TrimSpace(fragment)
	switch {
	case fragment == "":
		return base
	case base == "":
		return fragment
	default:
		return base + " " + fragment
	}
}
