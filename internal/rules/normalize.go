// Package rules implements the description normalization, merchant aliasing,
// and category classification engine for bank-export transactions.
package rules

import (
	"regexp"
	"strings"
)

// Bank narration boilerplate that precedes the merchant text. Descriptions
// are uppercased before these run.
var (
	purchaseAuthorizedRe = regexp.MustCompile(`^PURCHASE AUTHORIZED ON \d{2}/\d{2}\s+(.*)$`)
	atmWithdrawalRe      = regexp.MustCompile(`^ATM WITHDRAWAL AUTHORIZED ON \d{2}/\d{2}\s+(.*)$`)
	depositedCheckRe     = regexp.MustCompile(`^DEPOSITED OR CASHED CHECK`)
)

const depositedCheckLabel = "DEPOSITED OR CASHED CHECK"

// CollapseSpaces reduces every run of whitespace (spaces, tabs, newlines) to
// a single space and trims both ends.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeDescription cleans one raw bank description: whitespace is
// collapsed, the text is uppercased, and known narration prefixes are
// stripped so only the merchant text remains. Deposited-check narrations
// are collapsed to a single label so all such rows group together.
//
// The function is idempotent and never fails; empty input yields "".
func NormalizeDescription(raw string) string {
	d := strings.ToUpper(CollapseSpaces(raw))
	if d == "" {
		return ""
	}

	if m := purchaseAuthorizedRe.FindStringSubmatch(d); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := atmWithdrawalRe.FindStringSubmatch(d); m != nil {
		return CollapseSpaces("ATM WITHDRAWAL " + m[1])
	}
	if depositedCheckRe.MatchString(d) {
		return depositedCheckLabel
	}
	return d
}
