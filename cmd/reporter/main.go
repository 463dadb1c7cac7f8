package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"expense-reporter/internal/domain"
	"expense-reporter/internal/gateway"
	"expense-reporter/internal/logger"
	"expense-reporter/internal/render"
	"expense-reporter/internal/rules"
	"expense-reporter/internal/usecase"
)

// Output filenames inside the reports directory.
const (
	outGroupSummaryPDF   = "expenses_group_summary.pdf"
	outGroupSummaryXLSX  = "expenses_group_summary.xlsx"
	outFamilyPDF         = "expenses_family_totals_sorted.pdf"
	outFamilyXLSX        = "expenses_family_summary_sorted.xlsx"
	outDetailXLSX        = "expenses_clean_grouped.xlsx"
	outOrganizedPDF      = "organized_report.pdf"
	outReadyPDF          = "ready_to_print.pdf"
	outReadyXLSX         = "ready_to_print.xlsx"
	outPatternsPDF       = "pattern_breakdown.pdf"
	outUncategorizedCSV  = "uncategorized_rows.csv"
	outUncategorizedPDF  = "uncategorized_descriptions_summary.pdf"
	outBucketsPDF        = "expenses_quick_summary_18mo.pdf"
	defaultUncategorized = 40
)

func main() {
	input := flag.String("input", "", "Path to the bank-export CSV file (required)")
	report := flag.String("report", "all", "Report to build: summary|families|organized|ready|patterns|uncategorized|buckets|all")
	sortMode := flag.String("sort", string(usecase.SortByTotal), "Summary sort mode: total|txns")
	zelleBlock := flag.String("zelle", string(usecase.BlockFirst), "Placement of the Zelle per-person block in the family report: none|first|last")
	outdir := flag.String("outdir", filepath.Join("output", "reports"), "Directory for generated reports")
	topN := flag.Int("top", defaultUncategorized, "How many unmatched descriptions to rank in the uncategorized report")
	flag.Parse()

	log := logger.New()

	if *input == "" {
		flag.Usage()
		log.Fatal().Msg("missing required -input flag")
	}

	mode := usecase.SortMode(*sortMode)
	if mode != usecase.SortByTotal && mode != usecase.SortByTxns {
		log.Fatal().Str("sort", *sortMode).Msg("unknown sort mode")
	}
	block := usecase.BlockPlacement(*zelleBlock)
	if block != usecase.BlockNone && block != usecase.BlockFirst && block != usecase.BlockLast {
		log.Fatal().Str("zelle", *zelleBlock).Msg("unknown zelle block placement")
	}

	if err := os.MkdirAll(*outdir, 0o755); err != nil {
		log.Fatal().Err(err).Str("outdir", *outdir).Msg("could not create output directory")
	}

	// Wiring: CSV gateway -> report usecase -> renderers.
	repo := gateway.NewCSVTransactionRepository()
	classifier := rules.NewClassifier(rules.DefaultRuleSet())
	uc := usecase.NewReportUseCase(repo, classifier)

	ctx := logger.WithContext(context.Background(), log)
	rows, stats, err := uc.Load(ctx, *input)
	if err != nil {
		log.Fatal().Err(err).Str("input", *input).Msg("loading failed")
	}
	log.Info().
		Int("source_rows", stats.SourceRows).
		Int("virtual_rows", stats.VirtualRows).
		Int("dropped_transfer_refs", stats.DroppedTransferRefs).
		Msg("export loaded")

	app := &reportApp{
		log:  log,
		uc:   uc,
		rows: rows,
		mode: mode,
		dir:  *outdir,
	}

	var runErr error
	switch *report {
	case "summary":
		runErr = app.summary()
	case "families":
		runErr = app.families(block)
	case "organized":
		runErr = app.organized()
	case "ready":
		runErr = app.ready()
	case "patterns":
		runErr = app.patterns()
	case "uncategorized":
		runErr = app.uncategorized(*topN)
	case "buckets":
		runErr = app.buckets()
	case "all":
		runErr = app.all(block, *topN)
	default:
		log.Fatal().Str("report", *report).Msg("unknown report")
	}

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("report generation failed")
	}
}

type reportApp struct {
	log  zerolog.Logger
	uc   *usecase.ReportUseCase
	rows []domain.ClassifiedTransaction
	mode usecase.SortMode
	dir  string

	pdf   render.PDFWriter
	excel render.ExcelWriter
}

func (a *reportApp) path(name string) string {
	return filepath.Join(a.dir, name)
}

func (a *reportApp) wrote(path string) {
	a.log.Info().Str("path", path).Msg("wrote report")
}

func (a *reportApp) summary() error {
	s := a.uc.GroupSummary(a.rows, a.mode)
	if err := a.pdf.WriteSummary(a.path(outGroupSummaryPDF), "Category Group Summary", s); err != nil {
		return err
	}
	a.wrote(a.path(outGroupSummaryPDF))
	if err := a.excel.WriteSummary(a.path(outGroupSummaryXLSX), "Group Summary", s); err != nil {
		return err
	}
	a.wrote(a.path(outGroupSummaryXLSX))
	return nil
}

func (a *reportApp) families(block usecase.BlockPlacement) error {
	s := a.uc.FamilySummary(a.rows, a.mode, block)
	if err := a.pdf.WriteSummary(a.path(outFamilyPDF), "Family Totals", s); err != nil {
		return err
	}
	a.wrote(a.path(outFamilyPDF))
	if err := a.excel.WriteSummary(a.path(outFamilyXLSX), "Family Summary", s); err != nil {
		return err
	}
	a.wrote(a.path(outFamilyXLSX))

	detail := make([]domain.ClassifiedTransaction, len(a.rows))
	copy(detail, a.rows)
	usecase.SortForDetail(detail)
	if err := a.excel.WriteGroupedDetail(a.path(outDetailXLSX), detail); err != nil {
		return err
	}
	a.wrote(a.path(outDetailXLSX))
	return nil
}

func (a *reportApp) organized() error {
	s := a.uc.OrganizedSummary(a.rows, a.mode)
	if err := a.pdf.WriteSummary(a.path(outOrganizedPDF), "Organized Family Totals", s); err != nil {
		return err
	}
	a.wrote(a.path(outOrganizedPDF))
	return nil
}

func (a *reportApp) ready() error {
	s := a.uc.ReadySummary(a.rows, a.mode)
	if err := a.pdf.WriteSummary(a.path(outReadyPDF), "Ready To Print - Family Totals", s); err != nil {
		return err
	}
	a.wrote(a.path(outReadyPDF))
	if err := a.excel.WriteSummary(a.path(outReadyXLSX), "Ready To Print", s); err != nil {
		return err
	}
	a.wrote(a.path(outReadyXLSX))
	return nil
}

func (a *reportApp) patterns() error {
	sections := a.uc.PatternBreakdown(a.rows)
	if err := a.pdf.WriteSections(a.path(outPatternsPDF), "Pattern Breakdown by Group", sections); err != nil {
		return err
	}
	a.wrote(a.path(outPatternsPDF))
	return nil
}

func (a *reportApp) uncategorized(topN int) error {
	rep := a.uc.Uncategorized(a.rows, topN)

	if err := gateway.WriteUncategorizedCSV(a.path(outUncategorizedCSV), rep.Rows); err != nil {
		return err
	}
	a.wrote(a.path(outUncategorizedCSV))

	section := domain.Section{Title: "Top unmatched descriptions", Rows: rep.Top}
	if len(rep.Top) > 0 {
		total := usecase.GrandTotal(rep.Top)
		section.Total = &total
	}
	if err := a.pdf.WriteSections(a.path(outUncategorizedPDF), "Uncategorized Descriptions (No Pattern Match)", []domain.Section{section}); err != nil {
		return err
	}
	a.wrote(a.path(outUncategorizedPDF))

	a.log.Info().Int("uncategorized_rows", len(rep.Rows)).Msg("uncategorized report complete")
	return nil
}

func (a *reportApp) buckets() error {
	sections := a.uc.BucketSummaries(a.rows, rules.DefaultBucketWindows(), rules.OrganizedKey, a.mode, 15)
	if err := a.pdf.WriteSections(a.path(outBucketsPDF), "Quick Executive Summary - 18-Month Buckets", sections); err != nil {
		return err
	}
	a.wrote(a.path(outBucketsPDF))
	return nil
}

func (a *reportApp) all(block usecase.BlockPlacement, topN int) error {
	steps := []func() error{
		a.summary,
		func() error { return a.families(block) },
		a.organized,
		a.ready,
		a.patterns,
		func() error { return a.uncategorized(topN) },
		a.buckets,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
