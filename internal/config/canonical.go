package config

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CanonicalName returns the NFC normal form of a configured name with
// surrounding whitespace removed. Unicode allows the same visible name
// to have several byte encodings; normalizing once at load keeps
// derived column names stable.
func CanonicalName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
