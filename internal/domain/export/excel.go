// Package export serializes cleaned transaction records to spreadsheet
// formats for download.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bcakit/mutasi2xlsx/internal/domain/statement"
)

const sheetName = "Transactions"

// numFmtThousands is the builtin "#,##0.00" number format.
const numFmtThousands = 4

// WriteXLSX renders the records as an Excel workbook: a styled, frozen
// header row and two-decimal number formatting on the MUTASI and SALDO
// columns. Column order follows statement.Columns; the CATEGORY column is
// included only when categorized is true.
func WriteXLSX(records []statement.TransactionRecord, categorized bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	columns := statement.Columns(categorized)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return nil, fmt.Errorf("failed to build number style: %w", err)
	}

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, err
		}
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	for i, rec := range records {
		row := i + 2
		for col, name := range columns {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			switch name {
			case statement.ColumnDate:
				err = f.SetCellValue(sheetName, cell, rec.Date)
			case statement.ColumnShortDesc:
				err = f.SetCellValue(sheetName, cell, rec.ShortDesc)
			case statement.ColumnDetail:
				err = f.SetCellValue(sheetName, cell, rec.Detail)
			case statement.ColumnCategory:
				err = f.SetCellValue(sheetName, cell, rec.Category)
			case statement.ColumnAmount:
				if rec.Amount != nil {
					err = f.SetCellValue(sheetName, cell, *rec.Amount)
				}
			case statement.ColumnBalance:
				if rec.Balance != nil {
					err = f.SetCellValue(sheetName, cell, *rec.Balance)
				}
			}
			if err != nil {
				return nil, err
			}
		}
	}

	if len(records) > 0 {
		if err := styleAmountColumns(f, columns, len(records), amountStyle); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func styleAmountColumns(f *excelize.File, columns []string, rowCount, style int) error {
	for col, name := range columns {
		if name != statement.ColumnAmount && name != statement.ColumnBalance {
			continue
		}
		top, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(col+1, rowCount+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, top, bottom, style); err != nil {
			return err
		}
	}
	return nil
}

// Filename builds a timestamped download name such as
// "bank_transaction_20240131_154500.xlsx".
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("bank_transaction_%s.%s", now.Format("20060102_150405"), ext)
}
