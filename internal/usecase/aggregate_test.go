package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-reporter/internal/domain"
	"expense-reporter/internal/rules"
	"expense-reporter/internal/usecase"
)

func classifiedRow(key string, amount string) domain.ClassifiedTransaction {
	return domain.ClassifiedTransaction{
		Transaction: domain.Transaction{Amount: decimal.RequireFromString(amount)},
		Group:       key,
	}
}

func TestSummarize(t *testing.T) {
	rows := []domain.ClassifiedTransaction{
		classifiedRow("GROCERIES", "-10.00"),
		classifiedRow("GROCERIES", "-20.50"),
		classifiedRow("GROCERIES", "5.00"),
		classifiedRow("GAS", "-40.00"),
	}

	summary := usecase.Summarize(rows, rules.GroupKey)
	require.Len(t, summary, 2)

	groceries := summary["GROCERIES"]
	assert.Equal(t, 3, groceries.Txns)
	assert.True(t, groceries.Net.Equal(decimal.RequireFromString("-25.50")), "net %s", groceries.Net)
	assert.True(t, groceries.AbsTotal.Equal(decimal.RequireFromString("35.50")), "abs %s", groceries.AbsTotal)

	gas := summary["GAS"]
	assert.Equal(t, 1, gas.Txns)
	assert.True(t, gas.Net.Equal(decimal.RequireFromString("-40.00")))
	assert.True(t, gas.AbsTotal.Equal(decimal.RequireFromString("40.00")))
}

func TestSummarize_OrderIndependent(t *testing.T) {
	forward := []domain.ClassifiedTransaction{
		classifiedRow("A", "-1.25"),
		classifiedRow("B", "-2.00"),
		classifiedRow("A", "3.75"),
	}
	reversed := []domain.ClassifiedTransaction{forward[2], forward[1], forward[0]}

	assert.Equal(t, usecase.Summarize(forward, rules.GroupKey), usecase.Summarize(reversed, rules.GroupKey))
}

func TestSortSummary(t *testing.T) {
	stat := func(txns int, abs string) domain.GroupStat {
		return domain.GroupStat{Txns: txns, AbsTotal: decimal.RequireFromString(abs)}
	}
	summary := map[string]domain.GroupStat{
		"ALPHA":   stat(2, "100.00"),
		"BRAVO":   stat(5, "100.00"),
		"CHARLIE": stat(5, "40.00"),
		"DELTA":   stat(5, "40.00"),
	}

	t.Run("by total", func(t *testing.T) {
		// Equal totals break on txns, then name.
		got := usecase.SortSummary(summary, usecase.SortByTotal)
		names := rowNames(got)
		assert.Equal(t, []string{"BRAVO", "ALPHA", "CHARLIE", "DELTA"}, names)
	})

	t.Run("by txns", func(t *testing.T) {
		// Equal counts break on name before total.
		got := usecase.SortSummary(summary, usecase.SortByTxns)
		names := rowNames(got)
		assert.Equal(t, []string{"BRAVO", "CHARLIE", "DELTA", "ALPHA"}, names)
	})
}

func TestGrandTotal(t *testing.T) {
	rows := []domain.SummaryRow{
		{Name: "A", Stat: domain.GroupStat{Txns: 2, Net: decimal.RequireFromString("-30.00"), AbsTotal: decimal.RequireFromString("30.00")}},
		{Name: "B", Stat: domain.GroupStat{Txns: 1, Net: decimal.RequireFromString("10.00"), AbsTotal: decimal.RequireFromString("10.00")}},
	}

	total := usecase.GrandTotal(rows)
	assert.Equal(t, domain.GrandTotalLabel, total.Name)
	assert.Equal(t, 3, total.Stat.Txns)
	assert.True(t, total.Stat.Net.Equal(decimal.RequireFromString("-20.00")))
	assert.True(t, total.Stat.AbsTotal.Equal(decimal.RequireFromString("40.00")))
}

func TestGrandTotal_Empty(t *testing.T) {
	total := usecase.GrandTotal(nil)
	assert.Equal(t, domain.GrandTotalLabel, total.Name)
	assert.Zero(t, total.Stat.Txns)
	assert.True(t, total.Stat.Net.IsZero())
	assert.True(t, total.Stat.AbsTotal.IsZero())
}

func TestPinPriorityFirst(t *testing.T) {
	rows := []domain.SummaryRow{
		{Name: "TARGET"},
		{Name: "ZELLE"},
		{Name: "COSTCO WHSE"},
		{Name: "KING SOOPERS"},
	}
	priority := []string{"COSTCO WHSE", "SHEGER MARKET", "ZELLE"}

	got := usecase.PinPriorityFirst(rows, priority)
	assert.Equal(t, []string{"COSTCO WHSE", "ZELLE", "TARGET", "KING SOOPERS"}, rowNames(got),
		"pinned keys lead in pin order, absent priority names are skipped, the rest keep their order")
}

func TestBlockTransferFamilies(t *testing.T) {
	rows := []domain.SummaryRow{
		{Name: "KING SOOPERS"},
		{Name: "ZELLE - JANE DOE"},
		{Name: "TARGET"},
		{Name: "ZELLE - JOHN SMITH"},
	}

	tests := []struct {
		name      string
		placement usecase.BlockPlacement
		expected  []string
	}{
		{
			name:      "none keeps order",
			placement: usecase.BlockNone,
			expected:  []string{"KING SOOPERS", "ZELLE - JANE DOE", "TARGET", "ZELLE - JOHN SMITH"},
		},
		{
			name:      "first leads with the transfer block",
			placement: usecase.BlockFirst,
			expected:  []string{"ZELLE - JANE DOE", "ZELLE - JOHN SMITH", "KING SOOPERS", "TARGET"},
		},
		{
			name:      "last trails with the transfer block",
			placement: usecase.BlockLast,
			expected:  []string{"KING SOOPERS", "TARGET", "ZELLE - JANE DOE", "ZELLE - JOHN SMITH"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.BlockTransferFamilies(rows, tt.placement)
			assert.Equal(t, tt.expected, rowNames(got))
		})
	}
}

func rowNames(rows []domain.SummaryRow) []string {
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	return names
}
