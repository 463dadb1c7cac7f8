package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"expense-reporter/internal/domain"
	"expense-reporter/internal/rules"
)

// removeDescPrefix marks internal transfer-reference rows that the reports
// exclude entirely; they are dropped at load time and counted.
const removeDescPrefix = "ONLINE TRANSFER REF"

// LoadStats reports what happened to the batch during loading.
type LoadStats struct {
	// SourceRows is the number of rows read from the export.
	SourceRows int
	// VirtualRows is the number of classified rows after multi-transaction
	// splitting and transfer-ref removal.
	VirtualRows int
	// DroppedTransferRefs counts removed "ONLINE TRANSFER REF" rows.
	DroppedTransferRefs int
}

// ReportUseCase turns a raw bank export into classified rows and the
// aggregated summary views the renderers consume.
type ReportUseCase struct {
	repo       TransactionRepository
	classifier *rules.Classifier
}

// NewReportUseCase wires the usecase with its repository and classifier.
func NewReportUseCase(repo TransactionRepository, classifier *rules.Classifier) *ReportUseCase {
	return &ReportUseCase{repo: repo, classifier: classifier}
}

// Load reads the export, splits concatenated multi-transaction
// descriptions into virtual rows (each inheriting the original amount and
// date), drops transfer-reference rows, and classifies everything.
func (uc *ReportUseCase) Load(ctx context.Context, path string) ([]domain.ClassifiedTransaction, LoadStats, error) {
	txs, err := uc.repo.GetTransactions(ctx, path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("could not load transactions: %w", err)
	}

	stats := LoadStats{SourceRows: len(txs)}
	classified := make([]domain.ClassifiedTransaction, 0, len(txs))
	for _, tx := range txs {
		for _, chunk := range rules.SplitDescription(tx.Description) {
			if strings.HasPrefix(rules.NormalizeDescription(chunk), removeDescPrefix) {
				stats.DroppedTransferRefs++
				continue
			}
			virtual := tx
			virtual.Description = chunk
			classified = append(classified, uc.classifier.Annotate(virtual))
			stats.VirtualRows++
		}
	}
	return classified, stats, nil
}

// GroupSummary aggregates by declared category group (plus UNCATEGORIZED).
func (uc *ReportUseCase) GroupSummary(rows []domain.ClassifiedTransaction, mode SortMode) domain.Summary {
	return buildSummary(rows, rules.GroupKey, mode)
}

// FamilySummary aggregates by merchant family with per-person transfer
// sub-groups; block places those sub-groups as one contiguous block.
func (uc *ReportUseCase) FamilySummary(rows []domain.ClassifiedTransaction, mode SortMode, block BlockPlacement) domain.Summary {
	s := buildSummary(rows, rules.FamilyKey, mode)
	s.Rows = BlockTransferFamilies(s.Rows, block)
	return s
}

// OrganizedSummary is the family view with all peer transfers collapsed
// into one combined bucket regardless of recipient.
func (uc *ReportUseCase) OrganizedSummary(rows []domain.ClassifiedTransaction, mode SortMode) domain.Summary {
	return buildSummary(rows, rules.OrganizedKey, mode)
}

// ReadySummary is the organized view with the configured priority families
// pinned to the front, for the ready-to-print report.
func (uc *ReportUseCase) ReadySummary(rows []domain.ClassifiedTransaction, mode SortMode) domain.Summary {
	s := uc.OrganizedSummary(rows, mode)
	s.Rows = PinPriorityFirst(s.Rows, uc.classifier.RuleSet().PriorityFamilies())
	return s
}

// PatternBreakdown builds one section per declared group, keyed by
// canonical matched pattern, each with its own grand-total row. Alias
// canonicalization happened at classification time, so a merchant never
// appears twice within a section.
func (uc *ReportUseCase) PatternBreakdown(rows []domain.ClassifiedTransaction) []domain.Section {
	byGroup := make(map[string][]domain.ClassifiedTransaction)
	for _, r := range rows {
		byGroup[r.Group] = append(byGroup[r.Group], r)
	}

	groups := uc.classifier.RuleSet().Groups()
	sections := make([]domain.Section, 0, len(groups))
	for _, g := range groups {
		members := byGroup[g.Name]
		section := domain.Section{Title: g.Name}
		if len(members) == 0 {
			sections = append(sections, section)
			continue
		}

		summary := Summarize(members, func(c domain.ClassifiedTransaction) string {
			return c.MatchedPattern
		})
		patternRows := SortSummary(summary, SortByTxns)
		section.Rows = patternRows

		total := GrandTotal(patternRows)
		section.Total = &total
		sections = append(sections, section)
	}
	return sections
}

// Uncategorized exposes the rows no pattern matched, plus the topN most
// frequent unmatched descriptions ranked by (txns desc, abs desc). This is
// how pattern-table gaps get found and fixed.
func (uc *ReportUseCase) Uncategorized(rows []domain.ClassifiedTransaction, topN int) domain.UncategorizedReport {
	var unmatched []domain.ClassifiedTransaction
	for _, r := range rows {
		if r.IsUncategorized() {
			unmatched = append(unmatched, r)
		}
	}

	summary := Summarize(unmatched, func(c domain.ClassifiedTransaction) string {
		if c.Normalized == "" {
			return domain.GroupOther
		}
		return c.Normalized
	})
	top := rankByUsage(summary)
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}
	return domain.UncategorizedReport{Rows: unmatched, Top: top}
}

// BucketSummaries builds one section per date window, each holding that
// window's top families by the requested sort mode. Undated rows fall
// outside every window.
func (uc *ReportUseCase) BucketSummaries(rows []domain.ClassifiedTransaction, windows []domain.DateWindow, key KeyFunc, mode SortMode, limit int) []domain.Section {
	sections := make([]domain.Section, 0, len(windows))
	for _, w := range windows {
		var inWindow []domain.ClassifiedTransaction
		for _, r := range rows {
			if w.Contains(r.Date) {
				inWindow = append(inWindow, r)
			}
		}

		section := domain.Section{Title: w.Label}
		if len(inWindow) > 0 {
			all := SortSummary(Summarize(inWindow, key), mode)
			total := GrandTotal(all)
			if limit > 0 && len(all) > limit {
				all = all[:limit]
			}
			section.Rows = all
			section.Total = &total
		}
		sections = append(sections, section)
	}
	return sections
}

// SortForDetail orders rows for the grouped-detail listing: by family,
// then description, then date, undated rows last within their family.
func SortForDetail(rows []domain.ClassifiedTransaction) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		ka, kb := rules.FamilyKey(a), rules.FamilyKey(b)
		if ka != kb {
			return ka < kb
		}
		if a.Normalized != b.Normalized {
			return a.Normalized < b.Normalized
		}
		return a.SortDate().Before(b.SortDate())
	})
}

func buildSummary(rows []domain.ClassifiedTransaction, key KeyFunc, mode SortMode) domain.Summary {
	sorted := SortSummary(Summarize(rows, key), mode)
	return domain.Summary{Rows: sorted, GrandTotal: GrandTotal(sorted)}
}
