package usecase

import (
	"sort"

	"expense-reporter/internal/domain"
	"expense-reporter/internal/rules"
)

// SortMode selects the primary ordering of a summary table.
type SortMode string

const (
	// SortByTotal orders by descending absolute total, then descending
	// transaction count, then ascending name.
	SortByTotal SortMode = "total"
	// SortByTxns orders by descending transaction count, then ascending
	// name, then descending absolute total.
	SortByTxns SortMode = "txns"
)

// BlockPlacement positions the peer-transfer sub-groups as one contiguous
// block within a sorted summary.
type BlockPlacement string

const (
	BlockNone  BlockPlacement = "none"
	BlockFirst BlockPlacement = "first"
	BlockLast  BlockPlacement = "last"
)

// KeyFunc derives the aggregation key for one classified row.
type KeyFunc func(domain.ClassifiedTransaction) string

// Summarize folds classified rows into per-key stats. The fold is
// commutative, so the result does not depend on row order.
func Summarize(rows []domain.ClassifiedTransaction, key KeyFunc) map[string]domain.GroupStat {
	summary := make(map[string]domain.GroupStat)
	for _, r := range rows {
		k := key(r)
		summary[k] = summary[k].Add(r.Amount)
	}
	return summary
}

// SortSummary orders a summary map into rows. Both modes are total orders:
// the name comparison guarantees two distinct keys never tie.
func SortSummary(summary map[string]domain.GroupStat, mode SortMode) []domain.SummaryRow {
	rows := make([]domain.SummaryRow, 0, len(summary))
	for name, stat := range summary {
		rows = append(rows, domain.SummaryRow{Name: name, Stat: stat})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch mode {
		case SortByTxns:
			if a.Stat.Txns != b.Stat.Txns {
				return a.Stat.Txns > b.Stat.Txns
			}
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.Stat.AbsTotal.Cmp(b.Stat.AbsTotal) > 0
		default: // SortByTotal
			if cmp := a.Stat.AbsTotal.Cmp(b.Stat.AbsTotal); cmp != 0 {
				return cmp > 0
			}
			if a.Stat.Txns != b.Stat.Txns {
				return a.Stat.Txns > b.Stat.Txns
			}
			return a.Name < b.Name
		}
	})
	return rows
}

// rankByUsage orders a summary by transaction count, breaking ties on
// absolute total before name. The uncategorized gap report uses this so a
// large unmatched vendor is never truncated away in favor of an
// alphabetically earlier small one.
func rankByUsage(summary map[string]domain.GroupStat) []domain.SummaryRow {
	rows := make([]domain.SummaryRow, 0, len(summary))
	for name, stat := range summary {
		rows = append(rows, domain.SummaryRow{Name: name, Stat: stat})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Stat.Txns != b.Stat.Txns {
			return a.Stat.Txns > b.Stat.Txns
		}
		if cmp := a.Stat.AbsTotal.Cmp(b.Stat.AbsTotal); cmp != 0 {
			return cmp > 0
		}
		return a.Name < b.Name
	})
	return rows
}

// GrandTotal sums an ordered summary into the authoritative trailing total
// row. Renderers must use this row rather than recompute totals.
func GrandTotal(rows []domain.SummaryRow) domain.SummaryRow {
	var total domain.GroupStat
	for _, r := range rows {
		total = total.Merge(r.Stat)
	}
	return domain.SummaryRow{Name: domain.GrandTotalLabel, Stat: total}
}

// PinPriorityFirst moves the named keys to the front in the given priority
// order; everything else keeps its existing sorted order after them.
func PinPriorityFirst(rows []domain.SummaryRow, priority []string) []domain.SummaryRow {
	lookup := make(map[string]domain.SummaryRow, len(rows))
	for _, r := range rows {
		lookup[r.Name] = r
	}

	out := make([]domain.SummaryRow, 0, len(rows))
	pinned := make(map[string]bool, len(priority))
	for _, name := range priority {
		if r, ok := lookup[name]; ok {
			out = append(out, r)
			pinned[name] = true
		}
	}
	for _, r := range rows {
		if !pinned[r.Name] {
			out = append(out, r)
		}
	}
	return out
}

// BlockTransferFamilies clusters the per-person transfer sub-groups into
// one contiguous block at the front or back, preserving relative order
// within the block and among the rest.
func BlockTransferFamilies(rows []domain.SummaryRow, placement BlockPlacement) []domain.SummaryRow {
	if placement == BlockNone {
		return rows
	}

	var transfers, others []domain.SummaryRow
	for _, r := range rows {
		if rules.IsTransferFamily(r.Name) {
			transfers = append(transfers, r)
		} else {
			others = append(others, r)
		}
	}
	if placement == BlockFirst {
		return append(transfers, others...)
	}
	return append(others, transfers...)
}
