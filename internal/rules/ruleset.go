package rules

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"expense-reporter/internal/domain"
)

// PatternGroup is a named spending category owning literal match patterns.
// Groups are tried in declaration order, so position encodes priority when
// a description could plausibly match several groups.
type PatternGroup struct {
	Name     string
	Patterns []string
}

// RuleSet is the immutable classification configuration: the ordered
// pattern groups, the alias table mapping non-canonical matched patterns to
// their display form, and the family names pinned first in the
// ready-to-print view. Build one with NewRuleSet and never mutate it;
// classification is then a pure function of (description, rule set).
type RuleSet struct {
	groups   []PatternGroup
	aliases  map[string]string
	priority []string

	// longestFirst holds each group's patterns sorted by descending length
	// (ties broken lexically) so a longer, more specific pattern always wins
	// over a shorter substring of itself.
	longestFirst [][]string
}

// NewRuleSet validates and freezes a classification configuration. It fails
// when a group is empty, when the same pattern is declared in two groups,
// or when an alias target is not itself a declared pattern.
func NewRuleSet(groups []PatternGroup, aliases map[string]string, priority []string) (*RuleSet, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("rule set has no pattern groups")
	}

	// Patterns and alias entries are normalized the same way descriptions
	// are, so a lower-case or loosely-spaced declaration still matches.
	declared := make(map[string]string) // pattern -> owning group
	normalized := make([]PatternGroup, len(groups))
	longestFirst := make([][]string, len(groups))
	for i, g := range groups {
		if g.Name == "" {
			return nil, fmt.Errorf("pattern group %d has no name", i)
		}
		if len(g.Patterns) == 0 {
			return nil, fmt.Errorf("pattern group %q has no patterns", g.Name)
		}

		patterns := make([]string, 0, len(g.Patterns))
		for _, p := range g.Patterns {
			p = strings.ToUpper(CollapseSpaces(p))
			if p == "" {
				return nil, fmt.Errorf("pattern group %q contains an empty pattern", g.Name)
			}
			if owner, ok := declared[p]; ok && owner != g.Name {
				return nil, fmt.Errorf("pattern %q declared in both %q and %q", p, owner, g.Name)
			}
			declared[p] = g.Name
			patterns = append(patterns, p)
		}
		normalized[i] = PatternGroup{Name: g.Name, Patterns: patterns}

		sorted := make([]string, len(patterns))
		copy(sorted, patterns)
		sort.SliceStable(sorted, func(a, b int) bool {
			if len(sorted[a]) != len(sorted[b]) {
				return len(sorted[a]) > len(sorted[b])
			}
			return sorted[a] < sorted[b]
		})
		longestFirst[i] = sorted
	}

	canonical := make(map[string]string, len(aliases))
	for from, to := range aliases {
		from = strings.ToUpper(CollapseSpaces(from))
		to = strings.ToUpper(CollapseSpaces(to))
		if _, ok := declared[to]; !ok {
			return nil, fmt.Errorf("alias %q -> %q: target is not a declared pattern", from, to)
		}
		canonical[from] = to
	}

	return &RuleSet{
		groups:       normalized,
		aliases:      canonical,
		priority:     priority,
		longestFirst: longestFirst,
	}, nil
}

// Groups returns the declared groups in priority order.
func (r *RuleSet) Groups() []PatternGroup { return r.groups }

// PriorityFamilies returns the family names pinned to the front of the
// ready-to-print summary, in pin order.
func (r *RuleSet) PriorityFamilies() []string { return r.priority }

// Canonical maps a matched pattern to its canonical display form. Patterns
// that are already canonical come back unchanged.
func (r *RuleSet) Canonical(pattern string) string {
	if c, ok := r.aliases[pattern]; ok {
		return c
	}
	return pattern
}

// DefaultRuleSet returns the authoritative simplified pattern groups. Group
// order is deliberate: transportation and utilities fire before the broad
// retail groups so a gas-station grocery lands with gas, and the catch-all
// transfer groups come last.
func DefaultRuleSet() *RuleSet {
	rs, err := NewRuleSet(defaultGroups(), defaultAliases(), defaultPriority())
	if err != nil {
		// The default tables are validated by tests; a bad edit should fail
		// loudly at startup.
		panic(fmt.Sprintf("invalid default rule set: %v", err))
	}
	return rs
}

func defaultGroups() []PatternGroup {
	return []PatternGroup{
		{Name: "GAS / AUTO / TRANSPORTATION", Patterns: []string{
			"COSTCO GAS",
			"SHELL OIL",
			"CONOCO - SEI",
			"CONOCO",
			"MURPHY",
			"PHILLIPS 66 - GOOD 2 GO",
			"PHILLIPS 66",
			"GOOD 2 GO",
			"FIRESTONE",
			"JIFFY LUBE",
			"VIOC",
			"ADVANCE AUTO PARTS",
			"ADVANCE AUTO",
			"CO DRIVER SERVI EMV",
			"CO MOTOR VEH SERV EMV",
			"LN DENVER CO DMV KIOSK",
			"DEN PUBLIC PARKING",
			"PUBLIC WORKS-PRKG METR",
			"DU - PARKING MOBILE APP",
			"E 470 EXPRESS TOLLS",
			"E 470",
			"LYFT",
			"COBBLESTONE",
			"STATE FARM",
			"AIR CARE COLORADO STAPLETON",
		}},
		{Name: "CABLE / UTILITIES / PHONE", Patterns: []string{
			"COMCAST-XFINITY CABLE SVCS",
			"COMCAST CABLE",
			"COMCAST-XFINITY",
			"COMCAST",
			"XCEL ENERGY-PSCO XCELENERGY",
			"XCEL",
			"EUNIFYPAY PAINTED P",
			"USPS PO",
			"XFINITY MOBILE",
			"RAZA GLOBAL INC",
			"VZWRLSS PRPAY AUTOPAY",
			"IDT BOSS INTL CALLING",
			"GOOGLE ONE",
		}},
		{Name: "HOUSING / RENT / HOME-RELATED", Patterns: []string{
			"THE COLLIER COMPANIES",
			"PRIMELENDING ACH BORPMT",
			"PRIMELENDING",
			"PRMG WEB PAY",
			"PENNYMAC CASH",
			"WT FED",
			"APPRAISALFEE-TRIPOINTE",
			"WIRE TRANS SVC CHARGE",
			"RICH AMER HOMES OF",
			"AFW-AURORA",
			"THE HOME DEPOT",
		}},
		{Name: "ATM / CASH", Patterns: []string{
			"ATM WITHDRAWAL",
			"WELLS FARGO ATM",
			"ATM",
			"RAMAD PAY",
			"CASH BACK REDEMPTION",
			"ETHIOPIAN EVANGE",
		}},
		{Name: "CITY / GOVERNMENT", Patterns: []string{
			"CITY OF AURORA",
			"DENVER COUNTY MOTOR VEHICLE",
		}},
		{Name: "APPS / SUBSCRIPTIONS / ONLINE SERVICES", Patterns: []string{
			"APPLE.COM/BILL",
			"COURSERA.ORG",
			"COURSRA",
			"UDEMY",
			"DEPT EDUCATION STUDENT LN",
			"NAME-CHEAP.COM",
			"NAME-CHEAP",
			"JOBTESTPREP",
		}},
		{Name: "FOOD (FAST FOOD / RESTAURANTS)", Patterns: []string{
			"LITTLE CAESARS",
			"PANDA EXPRESS",
			"CHICK-FIL-A",
			"DOMINO'S",
			"DOMINO",
			"CHIPOTLE",
			"LUCY COFFEE",
			"ALL IN ONE CONVENIENCE",
			"ALL IN ONE",
			"7-ELEVEN",
			"CANTEEN",
			"RAISING CANES",
			"DUNKIN",
			"FIVE GUYS",
			"COCA COLA",
			"APPLEBEES",
			"OUTBACK",
			"TACOS DON JOSE",
			"EL POLLOTE MEXICAN RESTAU",
			"TOTALLY TEA",
			"HOPDODDY",
			"NILE ETHIOPIAN RESTAURANT",
			"WINGSTOP",
			"COLDSTONE",
			"URBAN KITCHEN",
			"WHOLE FOOD",
			"WHOLEFDS",
		}},
		{Name: "GROCERIES / MARKETS", Patterns: []string{
			"COSTCO WHSE",
			"WAL-MART",
			"KING SOOPERS",
			"KING SOOP",
			"SAVE-A-LOT",
			"SPROUTS FARMERS MAR",
			"PIASSA ETHIO MART",
			"HARAR MARKET",
			"SHEGER MARKET",
			"SHEBELLE MARKET",
			"MEGENAGNA GROCERY",
		}},
		{Name: "HEALTH", Patterns: []string{
			"DH EPIC HOSP & CLINIC",
			"WALGREENS STORE",
			"DRIVER'S CHOICE",
		}},
		{Name: "SHOPPING / RETAIL", Patterns: []string{
			"TARGET",
			"AURORA MARKET",
			"ROSS STORE",
			"KOHL'S",
			"SWA",
			"JCPENNEY",
			"DRY CLEAN USA",
			"SPC",
			"AMAZON MKTPL",
			"AMZN MKTP US",
			"GOODWILL",
			"BEST BUY",
			"APPLE STORE",
			"MENS WEARHOUSE",
			"OLD NAVY",
			"FAMOUS FOOTWEAR",
			"EXPRESS",
			"NASRI FASHION STORE",
			"GEN X",
			"IDEAS ELECTRONICS",
		}},
		{Name: "CHECKS / PAYMENTS", Patterns: []string{
			"DEPOSITED OR CASHED CHECK",
			"CHECK",
			"MY DEALS CASH BACK",
		}},
		{Name: "CREDIT CARD / INTERNAL TRANSFERS (NON-EXPENSE)", Patterns: []string{
			"ONLINE TRANSFER TO WF ACTIVE CASH VISA",
			"ONLINE TRANSFER TO WF REFLECT VISA",
			"ONLINE TRANSFER TO WAY2SAVE SAVINGS",
			"ONLINE TRANSFER TO EVERYDAY CHECKING",
		}},
		{Name: "ZELLE (OUTGOING TRANSFERS)", Patterns: []string{
			"ZELLE",
		}},
	}
}

// defaultAliases canonicalizes short alias patterns that appear as
// substrings of their canonical form, so a group's pattern breakdown never
// shows the same merchant twice.
func defaultAliases() map[string]string {
	return map[string]string{
		"XCEL":                       "XCEL ENERGY-PSCO XCELENERGY",
		"DOMINO":                     "DOMINO'S",
		"ALL IN ONE":                 "ALL IN ONE CONVENIENCE",
		"ADVANCE AUTO":               "ADVANCE AUTO PARTS",
		"E 470":                      "E 470 EXPRESS TOLLS",
		"KING SOOP":                  "KING SOOPERS",
		"COMCAST":                    "COMCAST-XFINITY",
		"COMCAST CABLE":              "COMCAST-XFINITY",
		"COMCAST-XFINITY CABLE SVCS": "COMCAST-XFINITY",
		"NAME-CHEAP":                 "NAME-CHEAP.COM",
	}
}

// defaultPriority pins the families the household review walks first. The
// internal transfers appear as four standardized destination families, all
// pinned together.
func defaultPriority() []string {
	return []string{
		"COSTCO WHSE",
		"COSTCO GAS",
		"ONLINE TRANSFER TO WF ACTIVE CASH VISA",
		"ONLINE TRANSFER TO WF REFLECT VISA",
		"ONLINE TRANSFER TO WAY2SAVE SAVINGS",
		"ONLINE TRANSFER TO EVERYDAY CHECKING",
		"SHEGER MARKET",
		"PIASSA ETHIO MART",
		"WAL-MART",
		"ZELLE",
	}
}

// DefaultBucketWindows returns the explicit 18-month reporting windows,
// most recent first.
func DefaultBucketWindows() []domain.DateWindow {
	return []domain.DateWindow{
		{Label: "1-3 months: Oct 1, 2025 - Dec 31, 2025", Start: date(2025, 10, 1), End: date(2025, 12, 31)},
		{Label: "4-6 months: Jul 1, 2025 - Sep 30, 2025", Start: date(2025, 7, 1), End: date(2025, 9, 30)},
		{Label: "7-12 months: Jan 1, 2025 - Jun 30, 2025", Start: date(2025, 1, 1), End: date(2025, 6, 30)},
		{Label: "13-18 months: Jul 1, 2024 - Dec 31, 2024", Start: date(2024, 7, 1), End: date(2024, 12, 31)},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
