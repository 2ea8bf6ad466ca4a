package kind

import "strings"

// Kind identifies one of the three searchable record categories.
type Kind string

const (
	// Policy is an insurance policy record.
	Policy Kind = "policy"
	// Claim is an insurance claim record.
	Claim Kind = "claim"
	// Document is a supporting document record.
	Document Kind = "document"
)

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case Policy, Claim, Document:
		return true
	}
	return false
}

// All returns every kind in canonical order (policy, claim, document).
// The order is load-bearing: it decides tie-breaks in merged search results.
func All() []Kind {
	return []Kind{Policy, Claim, Document}
}

// ParseList parses a comma-separated kind list. Unrecognized tokens are
// silently dropped; an empty or all-unrecognized input yields all kinds.
// The result follows canonical order regardless of input order.
func ParseList(s string) []Kind {
	requested := make(map[Kind]bool)
	for _, tok := range strings.Split(s, ",") {
		k := Kind(strings.ToLower(strings.TrimSpace(tok)))
		if k.IsValid() {
			requested[k] = true
		}
	}
	if len(requested) == 0 {
		return All()
	}

	out := make([]Kind, 0, len(requested))
	for _, k := range All() {
		if requested[k] {
			out = append(out, k)
		}
	}
	return out
}
