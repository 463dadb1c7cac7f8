package gateway

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-reporter/internal/domain"
)

func TestCSVTransactionRepository_GetTransactions(t *testing.T) {
	repo := NewCSVTransactionRepository()
	ctx := context.Background()

	t.Run("valid export", func(t *testing.T) {
		path := createTempCSV(t, [][]string{
			{"Date", "Description", "Payee", "Payment Method", "Amount"},
			{"09/08/2024", "PURCHASE AUTHORIZED ON 09/08 7-ELEVEN AURORA CO", "7-Eleven", "WELLS FARGO ACTIVE CASH VISA(R) CARD ...1234", "-4.50"},
			{"04/30/25", "Zelle to Jane Doe on 04/30 Ref #PP0123", "", "", "$(250.00)"},
		})

		got, err := repo.GetTransactions(ctx, path)
		require.NoError(t, err)
		require.Len(t, got, 2)

		first := got[0]
		assert.Equal(t, mustParseDate("2024-09-08"), first.Date)
		assert.Equal(t, "09/08/2024", first.RawDate)
		assert.Equal(t, "PURCHASE AUTHORIZED ON 09/08 7-ELEVEN AURORA CO", first.Description)
		assert.Equal(t, "7-Eleven", first.Payee)
		assert.Equal(t, "WFACV ...1234", first.PaymentMethod)
		assert.True(t, first.Amount.Equal(decimal.RequireFromString("-4.50")), "amount %s", first.Amount)

		second := got[1]
		assert.Equal(t, mustParseDate("2025-04-30"), second.Date)
		assert.True(t, second.Amount.Equal(decimal.RequireFromString("-250.00")), "amount %s", second.Amount)
	})

	t.Run("header only", func(t *testing.T) {
		path := createTempCSV(t, [][]string{
			{"Date", "Description", "Payee", "Payment Method", "Amount"},
		})

		got, err := repo.GetTransactions(ctx, path)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("header matched case-insensitively", func(t *testing.T) {
		path := createTempCSV(t, [][]string{
			{"date", "DESCRIPTION", "amount"},
			{"2025-01-15", "KING SOOPERS #4821 DENVER CO", "-32.10"},
		})

		got, err := repo.GetTransactions(ctx, path)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, mustParseDate("2025-01-15"), got[0].Date)
		assert.Equal(t, "KING SOOPERS #4821 DENVER CO", got[0].Description)
	})

	t.Run("short row leaves optional fields empty", func(t *testing.T) {
		path := createTempCSV(t, [][]string{
			{"Description", "Amount", "Payee"},
			{"CHECK # 1034", "-500.00"},
		})

		got, err := repo.GetTransactions(ctx, path)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Payee)
		assert.True(t, got[0].Date.IsZero())
	})

	t.Run("bad amount and date degrade to zero values", func(t *testing.T) {
		path := createTempCSV(t, [][]string{
			{"Date", "Description", "Amount"},
			{"pending", "TARGET AURORA CO", "n/a"},
		})

		got, err := repo.GetTransactions(ctx, path)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].Date.IsZero())
		assert.True(t, got[0].Amount.IsZero())
	})

	t.Run("missing description column", func(t *testing.T) {
		path := createTempCSV(t, [][]string{
			{"Date", "Memo", "Amount"},
			{"2025-01-15", "KING SOOPERS", "-32.10"},
		})

		got, err := repo.GetTransactions(ctx, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "export missing required columns: Description")
		assert.Nil(t, got)
	})

	t.Run("missing both required columns", func(t *testing.T) {
		path := createTempCSV(t, [][]string{
			{"Date", "Memo", "Value"},
		})

		_, err := repo.GetTransactions(ctx, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Description, Amount")
	})

	t.Run("nonexistent file", func(t *testing.T) {
		got, err := repo.GetTransactions(ctx, "nonexistent.csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open export file")
		assert.Nil(t, got)
	})
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "12.34", expected: "12.34"},
		{name: "negative sign", input: "-12.34", expected: "-12.34"},
		{name: "thousands separators", input: "1,234.56", expected: "1234.56"},
		{name: "currency symbol", input: "$1,000", expected: "1000"},
		{name: "parenthesized is negative", input: "(50)", expected: "-50"},
		{name: "currency symbol inside parens", input: "$(1,234.56)", expected: "-1234.56"},
		{name: "currency symbol outside parens", input: "($1,234.56)", expected: "-1234.56"},
		{name: "surrounding whitespace", input: "  7.00  ", expected: "7.00"},
		{name: "empty", input: "", expected: "0"},
		{name: "not a number", input: "pending", expected: "0"},
		{name: "empty parens", input: "()", expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"ParseAmount(%q) = %s, want %s", tt.input, got, tt.expected)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{name: "us slash four digit year", input: "09/08/2024", expected: mustParseDate("2024-09-08")},
		{name: "us slash two digit year", input: "04/30/25", expected: mustParseDate("2025-04-30")},
		{name: "iso", input: "2025-01-15", expected: mustParseDate("2025-01-15")},
		{name: "iso timestamp keeps only the date", input: "2025-01-15T10:30:00Z", expected: mustParseDate("2025-01-15")},
		{name: "trailing time of day ignored", input: "09/08/2024 3:04 PM", expected: mustParseDate("2024-09-08")},
		{name: "us dash", input: "09-08-2024", expected: mustParseDate("2024-09-08")},
		{name: "unparseable", input: "pending", expected: time.Time{}},
		{name: "empty", input: "", expected: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseDate(tt.input))
		})
	}
}

func TestNormalizePaymentMethod(t *testing.T) {
	assert.Equal(t, "WFACV", normalizePaymentMethod("WELLS FARGO ACTIVE CASH VISA(R) CARD"))
	assert.Equal(t, "WFACV ...1234", normalizePaymentMethod("WELLS FARGO ACTIVE CASH VISA(R) CARD ...1234"))
	assert.Equal(t, "Checking", normalizePaymentMethod("Checking"))
	assert.Empty(t, normalizePaymentMethod(""))
}

func TestWriteUncategorizedCSV(t *testing.T) {
	rows := []domain.ClassifiedTransaction{
		{
			Transaction: domain.Transaction{
				RawDate:     "09/08/2024",
				Description: "MYSTERY VENDOR A DENVER CO",
				Payee:       "Mystery Vendor",
				Amount:      decimal.RequireFromString("-15.00"),
			},
			Normalized: "MYSTERY VENDOR A DENVER CO",
			Group:      domain.GroupUncategorized,
		},
	}

	path := filepath.Join(t.TempDir(), "uncategorized_rows.csv")
	require.NoError(t, WriteUncategorizedCSV(path, rows))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Date", "Description", "Normalized", "Payee", "Payment Method", "Amount"}, records[0])
	assert.Equal(t, "09/08/2024", records[1][0])
	assert.Equal(t, "MYSTERY VENDOR A DENVER CO", records[1][1])
	assert.Equal(t, "-15.00", records[1][5])
}

// Helper functions

func createTempCSV(t *testing.T, data [][]string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "export_*.csv")
	require.NoError(t, err)

	writer := csv.NewWriter(tmpFile)
	for _, record := range data {
		require.NoError(t, writer.Write(record))
	}
	writer.Flush()
	require.NoError(t, writer.Error())
	require.NoError(t, tmpFile.Close())

	return tmpFile.Name()
}

func mustParseDate(dateStr string) time.Time {
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		panic(err)
	}
	return d
}
