package rules

import (
	"strings"

	"expense-reporter/internal/domain"
)

// Classifier maps free-text transaction descriptions to pattern groups. It
// holds only the immutable rule set, so classification is deterministic and
// safe to reuse across batches.
type Classifier struct {
	rules *RuleSet
}

// NewClassifier creates a classifier over a validated rule set.
func NewClassifier(rs *RuleSet) *Classifier {
	return &Classifier{rules: rs}
}

// RuleSet exposes the configuration the classifier was built with.
func (c *Classifier) RuleSet() *RuleSet { return c.rules }

// Classify normalizes a raw description and walks the declared groups in
// order, trying each group's patterns longest-first, returning the first
// (group, canonical pattern) whose pattern is a substring of the cleaned
// text. No match, or empty input, yields ("", "").
func (c *Classifier) Classify(desc string) (group, pattern string) {
	return c.classifyNormalized(ResolveMerchant(NormalizeDescription(desc)))
}

func (c *Classifier) classifyNormalized(d string) (group, pattern string) {
	if d == "" {
		return "", ""
	}
	for i, g := range c.rules.groups {
		for _, p := range c.rules.longestFirst[i] {
			if strings.Contains(d, p) {
				return g.Name, c.rules.Canonical(p)
			}
		}
	}
	return "", ""
}

// Annotate classifies one transaction into a ClassifiedTransaction,
// mapping a no-match to the UNCATEGORIZED sentinel and extracting the
// recipient for outgoing peer transfers.
func (c *Classifier) Annotate(tx domain.Transaction) domain.ClassifiedTransaction {
	normalized := ResolveMerchant(NormalizeDescription(tx.Description))

	out := domain.ClassifiedTransaction{
		Transaction: tx,
		Normalized:  normalized,
	}

	group, pattern := c.classifyNormalized(normalized)
	if group == "" {
		out.Group = domain.GroupUncategorized
	} else {
		out.Group = group
		out.MatchedPattern = pattern
	}

	if IsTransfer(normalized) {
		out.Recipient = ExtractTransferRecipient(normalized)
	}
	return out
}
