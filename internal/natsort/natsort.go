// Package natsort sorts strings so that embedded integers compare
// numerically: "file2" sorts before "file10".
package natsort

import (
	"sort"
	"strconv"
)

// Strings sorts s in natural order, in place.
func Strings(s []string) {
	sort.SliceStable(s, func(i, j int) bool { return Less(s[i], s[j]) })
}

// Sorted returns a naturally sorted copy of s.
func Sorted(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	Strings(out)
	return out
}

// Less reports whether a sorts before b in natural order.
func Less(a, b string) bool {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		ac, bc := a[ai], b[bi]
		if isDigit(ac) && isDigit(bc) {
			an, alen := takeNumber(a[ai:])
			bn, blen := takeNumber(b[bi:])
			if an != bn {
				return an < bn
			}
			ai += alen
			bi += blen
			continue
		}
		if ac != bc {
			return ac < bc
		}
		ai++
		bi++
	}
	return len(a)-ai < len(b)-bi
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// takeNumber parses the leading digit run of s and returns its value
// and length. Runs too long for uint64 fall back to string comparison
// by saturating, which is fine for file-name sized inputs.
func takeNumber(s string) (uint64, int) {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	v, err := strconv.ParseUint(s[:n], 10, 64)
	if err != nil {
		v = ^uint64(0)
	}
	return v, n
}
