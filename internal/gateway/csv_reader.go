package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expense-reporter/internal/domain"
	"expense-reporter/internal/rules"
)

// Column names the repository understands. Description and Amount are
// required; loading refuses to proceed without them rather than guess which
// column means what. The rest are optional.
const (
	colDate          = "Date"
	colDescription   = "Description"
	colPayee         = "Payee"
	colPaymentMethod = "Payment Method"
	colAmount        = "Amount"
)

// Payment-method aliasing: the full card product name is unwieldy in
// reports.
const (
	wfCardPrefix = "WELLS FARGO ACTIVE CASH VISA(R) CARD"
	wfCardAlias  = "WFACV"
)

// dateLayouts are tried in order when parsing the Date column.
var dateLayouts = []string{
	"01/02/2006",
	"01/02/06",
	"2006-01-02",
	"01-02-2006",
	"01-02-06",
}

// CSVTransactionRepository reads personal bank-export CSV files.
type CSVTransactionRepository struct{}

// NewCSVTransactionRepository creates a new repository instance.
func NewCSVTransactionRepository() *CSVTransactionRepository {
	return &CSVTransactionRepository{}
}

// GetTransactions reads and parses one bank-export CSV. Missing required
// columns abort the load; per-row problems (bad amounts, bad dates) degrade
// softly so one malformed row never sinks the batch.
func (r *CSVTransactionRepository) GetTransactions(ctx context.Context, path string) ([]domain.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var transactions []domain.Transaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}

		rawDate := cols.get(record, colDate)
		tx := domain.Transaction{
			Date:          ParseDate(rawDate),
			RawDate:       rawDate,
			Description:   cols.get(record, colDescription),
			Payee:         cols.get(record, colPayee),
			PaymentMethod: normalizePaymentMethod(cols.get(record, colPaymentMethod)),
			Amount:        ParseAmount(cols.get(record, colAmount)),
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// columnIndex maps known column names to their position in the header.
type columnIndex map[string]int

func (c columnIndex) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return rules.CollapseSpaces(record[i])
}

func mapColumns(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for i, h := range header {
		cols[canonicalHeader(h)] = i
	}

	var missing []string
	for _, required := range []string{colDescription, colAmount} {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("export missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// canonicalHeader matches header cells case-insensitively and ignores
// stray whitespace and BOMs that bank exports like to include.
func canonicalHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = rules.CollapseSpaces(h)
	switch strings.ToUpper(h) {
	case "DATE":
		return colDate
	case "DESCRIPTION":
		return colDescription
	case "PAYEE":
		return colPayee
	case "PAYMENT METHOD":
		return colPaymentMethod
	case "AMOUNT":
		return colAmount
	}
	return h
}

// ParseAmount parses a bank-export amount cell. Currency symbols and
// thousands separators are stripped and parenthesized values are negative:
// "$(1,234.56)" -> -1234.56. Unparseable values become zero rather than
// failing; silently zeroing one transaction is judged cheaper than losing a
// whole batch report.
func ParseAmount(value string) decimal.Decimal {
	s := strings.TrimSpace(value)
	if s == "" {
		return decimal.Zero
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if neg {
		return d.Abs().Neg()
	}
	return d
}

// ParseDate parses a date cell against the known export layouts. The zero
// time stands in for unparseable dates, which sort after all valid ones.
func ParseDate(value string) time.Time {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}
	}
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}
	s, _, _ = strings.Cut(s, "T")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func normalizePaymentMethod(value string) string {
	if strings.HasPrefix(strings.ToUpper(value), wfCardPrefix) {
		suffix := strings.TrimSpace(value[len(wfCardPrefix):])
		if suffix == "" {
			return wfCardAlias
		}
		return wfCardAlias + " " + suffix
	}
	return value
}
