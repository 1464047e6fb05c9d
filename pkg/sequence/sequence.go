package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// Width is the zero-padded numeric suffix width used by all studio identifiers.
const Width = 3

// Suffix extracts the trailing digit run of an identifier. Identifiers without
// a trailing number (legacy imports, free-form ids) yield 0 and are ignored by
// the sequence scan.
func Suffix(id string) int {
	end := len(id)
	start := end
	for start > 0 && id[start-1] >= '0' && id[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0
	}
	n, err := strconv.Atoi(id[start:end])
	if err != nil {
		return 0
	}
	return n
}

// Next derives the next identifier for a prefix family by scanning existing
// identifiers for the highest numeric suffix. Identifiers that do not start
// with the prefix are skipped. An empty set yields suffix 1.
//
// The scan-then-increment contract mirrors the persistence layer's view at
// call time; two concurrent callers may compute the same identifier.
func Next(prefix string, existing []string) string {
	max := 0
	for _, id := range existing {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if n := Suffix(id); n > max {
			max = n
		}
	}
	return Format(prefix, max+1)
}

// Format renders a prefix + zero-padded suffix identifier.
func Format(prefix string, n int) string {
	return fmt.Sprintf("%s%0*d", prefix, Width, n)
}
