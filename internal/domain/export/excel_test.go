package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bcakit/mutasi2xlsx/internal/domain/statement"
)

func sampleRecords() []statement.TransactionRecord {
	amount := 100000.0
	balance := 5000000.0
	return []statement.TransactionRecord{
		{
			Date:      "01/03",
			ShortDesc: "TRSF",
			Detail:    "E-BANKING PAYMENT XYZ",
			Amount:    &amount,
			Balance:   &balance,
			Category:  "Shopping",
		},
		{
			Date:      "02/03",
			ShortDesc: "BUNGA",
			Balance:   &balance,
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	t.Run("writes a categorized workbook", func(t *testing.T) {
		payload, err := WriteXLSX(sampleRecords(), true)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(payload))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Transactions")
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t,
			[]string{"TANGGAL", "KETERANGAN", "DETAIL TRANSAKSI", "CATEGORY", "MUTASI", "SALDO"},
			rows[0])

		assert.Equal(t, "01/03", rows[1][0])
		assert.Equal(t, "TRSF", rows[1][1])
		assert.Equal(t, "E-BANKING PAYMENT XYZ", rows[1][2])
		assert.Equal(t, "Shopping", rows[1][3])

		amount, err := f.GetCellValue("Transactions", "E2", excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		assert.Equal(t, "100000", amount)
	})

	t.Run("omits the category column when uncategorized", func(t *testing.T) {
		payload, err := WriteXLSX(sampleRecords(), false)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(payload))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Transactions")
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"TANGGAL", "KETERANGAN", "DETAIL TRANSAKSI", "MUTASI", "SALDO"},
			rows[0])
	})

	t.Run("missing amounts stay blank", func(t *testing.T) {
		payload, err := WriteXLSX(sampleRecords(), false)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(payload))
		require.NoError(t, err)
		defer f.Close()

		amount, err := f.GetCellValue("Transactions", "D3")
		require.NoError(t, err)
		assert.Empty(t, amount)
	})

	t.Run("freezes the header row", func(t *testing.T) {
		payload, err := WriteXLSX(sampleRecords(), true)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(payload))
		require.NoError(t, err)
		defer f.Close()

		panes, err := f.GetPanes("Transactions")
		require.NoError(t, err)
		assert.True(t, panes.Freeze)
		assert.Equal(t, 1, panes.YSplit)
	})

	t.Run("empty record list still yields a valid workbook", func(t *testing.T) {
		payload, err := WriteXLSX(nil, false)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(payload))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Transactions")
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 1, 31, 15, 45, 0, 0, time.UTC)

	assert.Equal(t, "bank_transaction_20240131_154500.xlsx", Filename("xlsx", now))
	assert.Equal(t, "bank_transaction_20240131_154500.csv", Filename("csv", now))
}
