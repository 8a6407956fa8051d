package parser

import (
	"regexp"
	"strings"

	"github.com/bcakit/mutasi2xlsx/internal/domain/statement"
)

// headerMarker is the token that identifies the date column header. A row
// whose first cell repeats it is a page-break header, not a transaction.
const headerMarker = "TANGGAL"

// dateFragment matches a day/month fragment such as "01/08", "1/8" or "31-12"
// anywhere in a cell.
var dateFragment = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}`)

// IsValidRow reports whether a tokenized row is a real transaction fragment.
// It accepts rows that start with a date (main transaction rows) and rows that
// carry description payload in the KETERANGAN or DETAIL TRANSAKSI column
// (continuation rows). Headers and empty rows are rejected.
func IsValidRow(row statement.RawRow) bool {
	if len(row) < 2 {
		return false
	}

	first := strings.ToUpper(strings.TrimSpace(row[0]))
	if strings.Contains(first, headerMarker) {
		return false
	}

	empty := true
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			empty = false
			break
		}
	}
	if empty {
		return false
	}

	if dateFragment.MatchString(strings.TrimSpace(row[0])) {
		return true
	}

	// A continuation fragment must carry some description payload.
	if strings.TrimSpace(row[1]) != "" {
		return true
	}
	if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
		return true
	}

	return false
}
