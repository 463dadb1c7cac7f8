package render

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"expense-reporter/internal/domain"
	"expense-reporter/internal/rules"
)

const moneyNumFmt = `"$"#,##0.00;-"$"#,##0.00`

// ExcelWriter renders summaries and grouped transaction detail into
// spreadsheets.
type ExcelWriter struct{}

// WriteSummary writes one sheet holding the ordered summary rows plus the
// authoritative grand-total line.
func (ExcelWriter) WriteSummary(path, title string, summary domain.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(title)
	f.SetSheetName(f.GetSheetName(0), sheet)

	bold, money, err := styles(f)
	if err != nil {
		return fmt.Errorf("failed to build styles: %w", err)
	}

	header := []interface{}{"Item", "Txns", "Total (NET)", "Total (ABS)"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	_ = f.SetCellStyle(sheet, "A1", "D1", bold)

	rowNum := 2
	for _, row := range append(summary.Rows, summary.GrandTotal) {
		cell := fmt.Sprintf("A%d", rowNum)
		values := []interface{}{row.Name, row.Stat.Txns, netFloat(row), absFloat(row)}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
		_ = f.SetCellStyle(sheet, fmt.Sprintf("C%d", rowNum), fmt.Sprintf("D%d", rowNum), money)
		rowNum++
	}
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum-1), fmt.Sprintf("B%d", rowNum-1), bold)

	_ = f.SetColWidth(sheet, "A", "A", 44)
	_ = f.SetColWidth(sheet, "B", "D", 14)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// WriteGroupedDetail writes every classified row grouped by family, with a
// TOTAL line after each family. Rows must already be in detail order (see
// usecase.SortForDetail).
func (ExcelWriter) WriteGroupedDetail(path string, rows []domain.ClassifiedTransaction) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Grouped Detail"
	f.SetSheetName(f.GetSheetName(0), sheet)

	bold, money, err := styles(f)
	if err != nil {
		return fmt.Errorf("failed to build styles: %w", err)
	}

	header := []interface{}{"Date", "Description", "Payee", "Payment Method", "Amount"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	_ = f.SetCellStyle(sheet, "A1", "E1", bold)

	rowNum := 2
	writeTotal := func(family string, stat domain.GroupStat) error {
		values := []interface{}{
			"",
			fmt.Sprintf("TOTAL (%s) - %d txns", family, stat.Txns),
			"", "",
			netFloat(domain.SummaryRow{Stat: stat}),
		}
		cell := fmt.Sprintf("A%d", rowNum)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		_ = f.SetCellStyle(sheet, fmt.Sprintf("B%d", rowNum), fmt.Sprintf("B%d", rowNum), bold)
		_ = f.SetCellStyle(sheet, fmt.Sprintf("E%d", rowNum), fmt.Sprintf("E%d", rowNum), money)
		rowNum += 2 // blank spacer row after each family
		return nil
	}

	currentFamily := ""
	var familyStat domain.GroupStat
	for _, r := range rows {
		family := rules.FamilyKey(r)
		if currentFamily != "" && family != currentFamily {
			if err := writeTotal(currentFamily, familyStat); err != nil {
				return fmt.Errorf("failed to write family total: %w", err)
			}
			familyStat = domain.GroupStat{}
		}
		currentFamily = family
		familyStat = familyStat.Add(r.Amount)

		values := []interface{}{
			r.RawDate,
			r.Description,
			r.Payee,
			r.PaymentMethod,
			amountFloat(r),
		}
		cell := fmt.Sprintf("A%d", rowNum)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
		_ = f.SetCellStyle(sheet, fmt.Sprintf("E%d", rowNum), fmt.Sprintf("E%d", rowNum), money)
		rowNum++
	}
	if currentFamily != "" {
		if err := writeTotal(currentFamily, familyStat); err != nil {
			return fmt.Errorf("failed to write family total: %w", err)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 60)
	_ = f.SetColWidth(sheet, "C", "D", 18)
	_ = f.SetColWidth(sheet, "E", "E", 14)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func styles(f *excelize.File) (bold, money int, err error) {
	bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, 0, err
	}
	fmtStr := moneyNumFmt
	money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &fmtStr})
	if err != nil {
		return 0, 0, err
	}
	return bold, money, nil
}

// sheetName makes a title usable as a sheet name: characters Excel forbids
// are replaced and the result is trimmed to the 31-character limit.
func sheetName(title string) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, title)
	if len(s) > 31 {
		s = s[:31]
	}
	return s
}

func netFloat(row domain.SummaryRow) float64 {
	v, _ := row.Stat.Net.Float64()
	return v
}

func absFloat(row domain.SummaryRow) float64 {
	v, _ := row.Stat.AbsTotal.Float64()
	return v
}

func amountFloat(r domain.ClassifiedTransaction) float64 {
	v, _ := r.Amount.Float64()
	return v
}
