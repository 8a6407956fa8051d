package export

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/bcakit/mutasi2xlsx/internal/domain/statement"
)

// csvRow mirrors TransactionRecord with the CATEGORY column in output
// position (immediately after DETAIL TRANSAKSI).
type csvRow struct {
	Date      string   `csv:"TANGGAL"`
	ShortDesc string   `csv:"KETERANGAN"`
	Detail    string   `csv:"DETAIL TRANSAKSI"`
	Category  string   `csv:"CATEGORY"`
	Amount    *float64 `csv:"MUTASI"`
	Balance   *float64 `csv:"SALDO"`
}

// csvRowPlain is the uncategorized shape.
type csvRowPlain struct {
	Date      string   `csv:"TANGGAL"`
	ShortDesc string   `csv:"KETERANGAN"`
	Detail    string   `csv:"DETAIL TRANSAKSI"`
	Amount    *float64 `csv:"MUTASI"`
	Balance   *float64 `csv:"SALDO"`
}

// WriteCSV renders the records as CSV with the same column order as the
// XLSX export.
func WriteCSV(records []statement.TransactionRecord, categorized bool) ([]byte, error) {
	if categorized {
		rows := make([]csvRow, len(records))
		for i, rec := range records {
			rows[i] = csvRow{
				Date:      rec.Date,
				ShortDesc: rec.ShortDesc,
				Detail:    rec.Detail,
				Category:  rec.Category,
				Amount:    rec.Amount,
				Balance:   rec.Balance,
			}
		}
		out, err := gocsv.MarshalString(&rows)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal CSV: %w", err)
		}
		return []byte(out), nil
	}

	rows := make([]csvRowPlain, len(records))
	for i, rec := range records {
		rows[i] = csvRowPlain{
			Date:      rec.Date,
			ShortDesc: rec.ShortDesc,
			Detail:    rec.Detail,
			Amount:    rec.Amount,
			Balance:   rec.Balance,
		}
	}
	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal CSV: %w", err)
	}
	return []byte(out), nil
}
