package client

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeQuery trims the query, collapses inner whitespace and converts it to NFC
// so that composed and decomposed accents hit the same cache entry.
func normalizeQuery(query string) string {
	return norm.NFC.String(strings.Join(strings.Fields(query), " "))
}
