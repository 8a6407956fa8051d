// Package category assigns spending categories to cleaned transactions by
// ordered keyword matching, and persists the user's category rules.
package category

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/bcakit/mutasi2xlsx/internal/domain/statement"
)

// Uncategorized is the category assigned when no rule keyword matches.
const Uncategorized = "Uncategorized"

// Rule maps a category name to the keywords that select it. Rule order is
// significant: the first rule with a matching keyword wins. Rules with an
// empty name or no keywords are ignored.
type Rule struct {
	Name     string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// ruleRef records which (rule, keyword) position owns a pattern, so the
// winner among several hits is the earliest rule and keyword in the list.
type ruleRef struct {
	rule    int
	keyword int
	name    string
}

// Mapper classifies transaction descriptions against a fixed rule list.
// All keywords are compiled into a single Aho-Corasick matcher, so one pass
// over the description finds every keyword hit regardless of rule count;
// the ordered first-match-wins semantics are restored by keeping the hit
// with the lowest (rule, keyword) position.
type Mapper struct {
	matcher *ahocorasick.Matcher
	owners  []ruleRef
}

// NewMapper compiles the rule list. Keyword matching is case-insensitive
// substring matching; keywords are trimmed and lowercased once here.
func NewMapper(rules []Rule) *Mapper {
	m := &Mapper{}

	seen := make(map[string]struct{})
	var patterns [][]byte

	for ri, rule := range rules {
		name := strings.TrimSpace(rule.Name)
		if name == "" || len(rule.Keywords) == 0 {
			continue
		}
		for ki, keyword := range rule.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				continue
			}
			// A keyword shared by two rules belongs to the earlier one.
			if _, dup := seen[keyword]; dup {
				continue
			}
			seen[keyword] = struct{}{}
			patterns = append(patterns, []byte(keyword))
			m.owners = append(m.owners, ruleRef{rule: ri, keyword: ki, name: name})
		}
	}

	if len(patterns) > 0 {
		m.matcher = ahocorasick.NewMatcher(patterns)
	}
	return m
}

// Classify returns the category for one description, or Uncategorized when
// the description is empty or no keyword matches.
func (m *Mapper) Classify(description string) string {
	if m.matcher == nil {
		return Uncategorized
	}

	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return Uncategorized
	}

	best := -1
	for _, idx := range m.matcher.Match([]byte(desc)) {
		if idx < 0 || idx >= len(m.owners) {
			continue
		}
		if best == -1 || ownerBefore(m.owners[idx], m.owners[best]) {
			best = idx
		}
	}
	if best == -1 {
		return Uncategorized
	}
	return m.owners[best].name
}

func ownerBefore(a, b ruleRef) bool {
	if a.rule != b.rule {
		return a.rule < b.rule
	}
	return a.keyword < b.keyword
}

// Annotate classifies a batch of records by their DETAIL TRANSAKSI text and
// returns new records with Category set. Existing categories are overwritten,
// never appended, so re-annotating with the same rules is idempotent.
func (m *Mapper) Annotate(records []statement.TransactionRecord) []statement.TransactionRecord {
	out := make([]statement.TransactionRecord, len(records))
	for i, rec := range records {
		rec.Category = m.Classify(rec.Detail)
		out[i] = rec
	}
	return out
}

// MapCategory classifies a single description against a rule list. It is a
// convenience for one-off lookups; batch callers should build a Mapper once.
func MapCategory(description string, rules []Rule) string {
	return NewMapper(rules).Classify(description)
}
