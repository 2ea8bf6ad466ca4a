// Package keyword infers structured enum values from free-text search terms.
//
// A term matches a keyword when the lowercased term contains the keyword as
// a substring, so "approved!", "pre-approved" and "approved" all map to the
// APPROVED claim status.
package keyword

import "strings"

type mapping struct {
	keyword string
	value   string
}

// Tables are ordered slices, not maps, so inference output is deterministic.
// The keyword sets are fixed: exactly one keyword per enum value.
var claimStatusTable = []mapping{
	{"approved", "APPROVED"},
	{"rejected", "REJECTED"},
	{"paid", "PAID"},
	{"draft", "DRAFT"},
	{"submitted", "SUBMITTED"},
	{"review", "UNDER_REVIEW"},
	{"closed", "CLOSED"},
}

var documentCategoryTable = []mapping{
	{"policy", "POLICY"},
	{"claim", "CLAIM"},
	{"identity", "IDENTITY"},
	{"proof", "PROOF_OF_LOSS"},
	{"estimate", "ESTIMATE"},
	{"invoice", "INVOICE"},
	{"receipt", "RECEIPT"},
	{"photo", "PHOTO"},
}

// ClaimStatuses returns the claim statuses inferred from terms, deduplicated,
// in table order.
func ClaimStatuses(terms []string) []string {
	return infer(terms, claimStatusTable)
}

// DocumentCategories returns the document categories inferred from terms,
// deduplicated, in table order.
func DocumentCategories(terms []string) []string {
	return infer(terms, documentCategoryTable)
}

func infer(terms []string, table []mapping) []string {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		lowered = append(lowered, strings.ToLower(t))
	}

	var out []string
	seen := make(map[string]bool)
	for _, m := range table {
		if seen[m.value] {
			continue
		}
		for _, t := range lowered {
			if strings.Contains(t, m.keyword) {
				out = append(out, m.value)
				seen[m.value] = true
				break
			}
		}
	}
	return out
}
