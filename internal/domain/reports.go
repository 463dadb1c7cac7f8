package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GrandTotalLabel is the name of the authoritative trailing total row that
// the core appends to summaries. Renderers must not recompute totals.
const GrandTotalLabel = "GRAND TOTAL"

// GroupStat accumulates the per-group aggregates: transaction count, signed
// net, and sum of absolute amounts. AbsTotal >= |Net| always holds.
type GroupStat struct {
	Txns     int             `json:"txns"`
	Net      decimal.Decimal `json:"net"`
	AbsTotal decimal.Decimal `json:"abs_total"`
}

// Add folds one signed amount into the stat.
func (s GroupStat) Add(amount decimal.Decimal) GroupStat {
	return GroupStat{
		Txns:     s.Txns + 1,
		Net:      s.Net.Add(amount),
		AbsTotal: s.AbsTotal.Add(amount.Abs()),
	}
}

// Merge combines two partial stats.
func (s GroupStat) Merge(other GroupStat) GroupStat {
	return GroupStat{
		Txns:     s.Txns + other.Txns,
		Net:      s.Net.Add(other.Net),
		AbsTotal: s.AbsTotal.Add(other.AbsTotal),
	}
}

// SummaryRow is one line of an ordered summary table.
type SummaryRow struct {
	Name string    `json:"name"`
	Stat GroupStat `json:"stat"`
}

// Summary is an ordered summary table plus its authoritative grand total.
type Summary struct {
	Rows       []SummaryRow `json:"rows"`
	GrandTotal SummaryRow   `json:"grand_total"`
}

// Section is a titled summary block inside a multi-section report, e.g. one
// pattern-group breakdown or one date-window bucket.
type Section struct {
	Title string       `json:"title"`
	Rows  []SummaryRow `json:"rows"`
	// Total is the section's grand-total row; nil when the section is empty.
	Total *SummaryRow `json:"total,omitempty"`
}

// DateWindow is an explicit reporting window with an inclusive range.
type DateWindow struct {
	Label string
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window. Undated transactions
// (zero time) fall outside every window.
func (w DateWindow) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// UncategorizedReport exposes the rows no pattern matched, plus a ranked
// view of the most frequent unmatched descriptions. External collaborators
// persist Rows for QA; Top drives the pattern-table gap report.
type UncategorizedReport struct {
	Rows []ClassifiedTransaction
	Top  []SummaryRow
}
