package rules

import (
	"strings"

	"expense-reporter/internal/domain"
)

// transferPrefix marks an outgoing peer-to-peer transfer narration.
const transferPrefix = "ZELLE TO"

// transferFamilyPrefix prefixes every per-person transfer family key.
const transferFamilyPrefix = "ZELLE - "

// IsTransfer reports whether a normalized description is an outgoing peer
// transfer.
func IsTransfer(normalized string) bool {
	return strings.HasPrefix(normalized, transferPrefix)
}

// ExtractTransferRecipient pulls the recipient name out of an outgoing
// peer-transfer description. The name is everything between the transfer
// verb and the trailing " ON <date>" or " REF <code>" narration; when
// neither marker is present the first three tokens are taken. Descriptions
// without a usable name yield domain.RecipientUnknown.
func ExtractTransferRecipient(desc string) string {
	d := CollapseSpaces(strings.ToUpper(desc))
	if !strings.HasPrefix(d, transferPrefix) {
		return domain.RecipientUnknown
	}
	rest := strings.TrimSpace(d[len(transferPrefix):])

	var name string
	switch {
	case strings.Contains(rest, " ON "):
		name, _, _ = strings.Cut(rest, " ON ")
	case strings.Contains(rest, " REF "):
		name, _, _ = strings.Cut(rest, " REF ")
	default:
		tokens := strings.Fields(rest)
		if len(tokens) > 3 {
			tokens = tokens[:3]
		}
		name = strings.Join(tokens, " ")
	}

	name = CollapseSpaces(name)
	if name == "" {
		return domain.RecipientUnknown
	}
	return name
}

// IsTransferFamily reports whether a summary key is a per-person transfer
// sub-group, so grouping policies can cluster them as one block.
func IsTransferFamily(name string) bool {
	return strings.HasPrefix(strings.ToUpper(name), transferFamilyPrefix)
}

// FamilyKey derives the per-merchant aggregation key for a classified row.
// Peer transfers get a per-person sub-group ("ZELLE - <NAME>"); matched
// rows aggregate under their canonical pattern; unmatched rows fall back to
// the first two tokens of the cleaned description so near-identical noise
// still clusters.
func FamilyKey(c domain.ClassifiedTransaction) string {
	if c.Recipient != "" {
		return transferFamilyPrefix + c.Recipient
	}
	if c.MatchedPattern != "" {
		return c.MatchedPattern
	}
	tokens := strings.Fields(c.Normalized)
	switch {
	case len(tokens) == 0:
		return domain.GroupOther
	case len(tokens) == 1:
		return tokens[0]
	default:
		return tokens[0] + " " + tokens[1]
	}
}

// OrganizedKey is the alternate view of FamilyKey that collapses every peer
// transfer into one combined bucket regardless of recipient. Both views are
// derived from the same classified rows without re-classifying.
func OrganizedKey(c domain.ClassifiedTransaction) string {
	if c.Recipient != "" {
		return "ZELLE"
	}
	return FamilyKey(c)
}

// GroupKey aggregates by declared category group.
func GroupKey(c domain.ClassifiedTransaction) string {
	return c.Group
}
