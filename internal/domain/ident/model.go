package ident

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Prefix identifies an entity kind in the global identifier space.
type Prefix string

const (
	PrefixProject Prefix = "P"
	PrefixTask    Prefix = "K"
)

// Valid reports whether p is one of the registered prefixes.
func (p Prefix) Valid() bool {
	return p == PrefixProject || p == PrefixTask
}

// Format renders an identifier such as K007 or P012.
func Format(p Prefix, n int64) string {
	return fmt.Sprintf("%s%03d", p, n)
}

// Parse extracts the numeric part of token. Tokens whose suffix is not
// numeric or not in canonical zero-padded width (K01, K0007) are rejected.
func Parse(p Prefix, token string) (int64, bool) {
	digits, ok := strings.CutPrefix(token, string(p))
	if !ok || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	if fmt.Sprintf("%03d", n) != digits {
		return 0, false
	}
	return n, true
}

// Compare orders identifiers of prefix p by number, so K999 sorts before
// K1000. Tokens that do not parse sort after valid ones, by string.
func Compare(p Prefix, a, b string) int {
	na, okA := Parse(p, a)
	nb, okB := Parse(p, b)
	switch {
	case okA && okB:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
	case okA:
		return -1
	case okB:
		return 1
	}
	return strings.Compare(a, b)
}
