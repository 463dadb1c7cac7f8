package gateway

import (
	"encoding/csv"
	"fmt"
	"os"

	"expense-reporter/internal/domain"
)

// WriteUncategorizedCSV persists the rows no pattern matched so the
// pattern tables can be reviewed and extended. The file is written even
// when rows is empty, so a quick check is always possible.
func WriteUncategorizedCSV(path string, rows []domain.ClassifiedTransaction) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create uncategorized report %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := []string{"Date", "Description", "Normalized", "Payee", "Payment Method", "Amount"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}

	for _, r := range rows {
		record := []string{
			r.RawDate,
			r.Description,
			r.Normalized,
			r.Payee,
			r.PaymentMethod,
			r.Amount.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
