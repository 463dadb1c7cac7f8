package rules

import (
	"regexp"
	"strings"
)

// onDateAnchorRe marks the end of one transaction narration inside a
// description cell that concatenates several of them.
var onDateAnchorRe = regexp.MustCompile(`(?i)\bON \d{2}/\d{2}/\d{2}\b`)

// SplitDescription detects description cells holding two or more bank
// narrations concatenated by a shared "ON MM/DD/YY" anchor and splits them
// into separate logical transactions, each chunk ending right after its
// anchor. With zero or one anchor the (space-collapsed) input is returned
// as a single element.
//
// Callers duplicate the row's amount, date, and other fields onto every
// chunk: the narration carries no per-chunk amount, so dividing it would be
// a guess. That duplication is a documented limitation, not a bug.
func SplitDescription(desc string) []string {
	d := CollapseSpaces(desc)
	if d == "" {
		return []string{""}
	}

	anchors := onDateAnchorRe.FindAllStringIndex(d, -1)
	if len(anchors) <= 1 {
		return []string{d}
	}

	var parts []string
	start := 0
	for _, loc := range anchors {
		if chunk := strings.TrimSpace(d[start:loc[1]]); chunk != "" {
			parts = append(parts, chunk)
		}
		start = loc[1]
	}
	if tail := strings.TrimSpace(d[start:]); tail != "" {
		parts = append(parts, tail)
	}
	return parts
}
