package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel group names used when classification cannot assign a family.
const (
	GroupUncategorized = "UNCATEGORIZED"
	GroupOther         = "OTHER"

	// RecipientUnknown is returned when a peer-transfer description carries
	// no extractable recipient name.
	RecipientUnknown = "UNKNOWN"
)

// dateMax sorts undated transactions after every dated one.
var dateMax = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Transaction represents one row of a bank export. The zero value of Date
// means the export carried no parseable date; RawDate preserves the
// original cell for display.
type Transaction struct {
	Date          time.Time
	RawDate       string
	Description   string
	Payee         string
	PaymentMethod string
	Amount        decimal.Decimal
}

// SortDate returns the transaction date for ordering purposes. Undated
// transactions sort after all dated ones.
func (t Transaction) SortDate() time.Time {
	if t.Date.IsZero() {
		return dateMax
	}
	return t.Date
}

// ClassifiedTransaction is a Transaction annotated by the classifier.
// It is created once per (virtual) input row and never mutated afterward.
type ClassifiedTransaction struct {
	Transaction

	// Group is one of the declared pattern-group names, or GroupUncategorized.
	Group string
	// MatchedPattern is the canonicalized pattern that fired, or "" when the
	// row is uncategorized.
	MatchedPattern string
	// Recipient is the extracted peer-transfer recipient name; empty for
	// non-transfer rows.
	Recipient string
	// Normalized is the cleaned description the classifier matched against.
	Normalized string
}

// IsUncategorized reports whether no pattern in any group matched.
func (c ClassifiedTransaction) IsUncategorized() bool {
	return c.Group == GroupUncategorized
}
