// Package token splits free-text queries into search terms.
package token

import "strings"

// Tokenize splits q on Unicode whitespace and drops empty tokens.
// A blank or whitespace-only query yields nil, which callers treat as
// "no search to run".
func Tokenize(q string) []string {
	terms := strings.Fields(q)
	if len(terms) == 0 {
		return nil
	}
	return terms
}
