package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanCurrency(t *testing.T) {
	t.Run("indonesian convention", func(t *testing.T) {
		v := CleanCurrency("1.000.000,50")
		require.NotNil(t, v)
		assert.Equal(t, 1000000.5, *v)
	})

	t.Run("banking convention", func(t *testing.T) {
		v := CleanCurrency("98,779,762.35")
		require.NotNil(t, v)
		assert.Equal(t, 98779762.35, *v)
	})

	t.Run("single comma with decimal tail", func(t *testing.T) {
		v := CleanCurrency("500,00")
		require.NotNil(t, v)
		assert.Equal(t, 500.0, *v)
	})

	t.Run("single comma as thousands separator", func(t *testing.T) {
		v := CleanCurrency("23,400.00")
		require.NotNil(t, v)
		assert.Equal(t, 23400.0, *v)
	})

	t.Run("dots only as thousands separators", func(t *testing.T) {
		v := CleanCurrency("1.234.567")
		require.NotNil(t, v)
		assert.Equal(t, 1234567.0, *v)
	})

	t.Run("single dot is the decimal point", func(t *testing.T) {
		v := CleanCurrency("1234.56")
		require.NotNil(t, v)
		assert.Equal(t, 1234.56, *v)
	})

	t.Run("strips currency prefixes and symbols", func(t *testing.T) {
		v := CleanCurrency("Rp 1.500,00")
		require.NotNil(t, v)
		assert.Equal(t, 1500.0, *v)

		v = CleanCurrency("$1,250.75")
		require.NotNil(t, v)
		assert.Equal(t, 1250.75, *v)
	})

	t.Run("strips debit and credit markers", func(t *testing.T) {
		v := CleanCurrency("38,357.00 DB")
		require.NotNil(t, v)
		assert.Equal(t, 38357.0, *v)

		v = CleanCurrency("100.000,00 CR")
		require.NotNil(t, v)
		assert.Equal(t, 100000.0, *v)

		v = CleanCurrency("250.00 DEBIT")
		require.NotNil(t, v)
		assert.Equal(t, 250.0, *v)
	})

	t.Run("keeps negative sign", func(t *testing.T) {
		v := CleanCurrency("-1.500,25")
		require.NotNil(t, v)
		assert.Equal(t, -1500.25, *v)
	})

	t.Run("nil for empty or blank input", func(t *testing.T) {
		assert.Nil(t, CleanCurrency(""))
		assert.Nil(t, CleanCurrency("   "))
		assert.Nil(t, CleanCurrency("\t"))
	})

	t.Run("nil when nothing numeric remains", func(t *testing.T) {
		assert.Nil(t, CleanCurrency("Rp"))
		assert.Nil(t, CleanCurrency("N/A"))
	})

	t.Run("nil for unparseable digit soup", func(t *testing.T) {
		assert.Nil(t, CleanCurrency("1.2.3,4,5"))
	})
}
