// Package version implements the two sub-engines of the APRIL version
// engine: the Debian version-string comparator, and the boolean version
// expression DSL (lexer, shunting-yard parser and postfix evaluator) used by
// a manifest's compatible_versions field.
package version

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Debian is a parsed Debian version string: (epoch, upstream, revision).
type Debian struct {
	Epoch    uint64
	Upstream string
	Revision string
}

// Parse splits a Debian version string into its epoch, upstream and
// revision components, per the dpkg version-string grammar: the integer
// prefix before the first ':' is the epoch (default 0); the substring up to
// the last '-' is the upstream version; the substring after the last '-' is
// the revision (empty if there is no '-').
func Parse(s string) (Debian, error) {
	var d Debian
	rest := s
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		epoch, err := strconv.ParseUint(s[:idx], 10, 64)
		if err != nil {
			return Debian{}, fmt.Errorf("invalid epoch in version %q: %w", s, err)
		}
		d.Epoch = epoch
		rest = s[idx+1:]
	}
	if idx := strings.LastIndexByte(rest, '-'); idx >= 0 {
		d.Upstream = rest[:idx]
		d.Revision = rest[idx+1:]
	} else {
		d.Upstream = rest
		d.Revision = ""
	}
	return d, nil
}

// Compare returns -1, 0 or 1 according to whether a sorts before, the same
// as, or after b, under the standard Debian policy version ordering:
// (epoch, upstream, revision) compared lexicographically, with upstream and
// revision each compared by the dpkg fragment algorithm.
func Compare(a, b string) (int, error) {
	da, err := Parse(a)
	if err != nil {
		return 0, err
	}
	db, err := Parse(b)
	if err != nil {
		return 0, err
	}
	if da.Epoch != db.Epoch {
		if da.Epoch < db.Epoch {
			return -1, nil
		}
		return 1, nil
	}
	if c := compareFragment(da.Upstream, db.Upstream); c != 0 {
		return c, nil
	}
	return compareFragment(da.Revision, db.Revision), nil
}

// compareFragment compares two version-string fragments (upstream or
// revision): alternating non-digit and digit runs, with a bounded
// scan (a naive implementation indexes past the end of either string in some
// branches; this walks a and b independently and treats exhaustion as its
// own ordering token rather than reading out of bounds).
func compareFragment(a, b string) int {
	ab, bb := []byte(a), []byte(b)
	i, j := 0, 0
	for i < len(ab) || j < len(bb) {
		// non-digit run: compare byte by byte (or against end-of-string)
		for (i < len(ab) && !isDigit(ab[i])) || (j < len(bb) && !isDigit(bb[j])) {
			ac := orderAt(ab, i)
			bc := orderAt(bb, j)
			if ac != bc {
				return sign(ac - bc)
			}
			i++
			j++
		}

		// digit run: strip leading zeros, then compare by length, then lexicographically
		for i < len(ab) && ab[i] == '0' {
			i++
		}
		for j < len(bb) && bb[j] == '0' {
			j++
		}
		di, dj := i, j
		for di < len(ab) && isDigit(ab[di]) {
			di++
		}
		for dj < len(bb) && isDigit(bb[dj]) {
			dj++
		}
		lenA, lenB := di-i, dj-j
		if lenA != lenB {
			if lenA > lenB {
				return 1
			}
			return -1
		}
		if c := bytes.Compare(ab[i:di], bb[j:dj]); c != 0 {
			return c
		}
		i, j = di, dj
	}
	return 0
}

// orderAt returns the ordering key of the byte at idx in s, or the
// end-of-string token if idx is out of bounds. '~' sorts lowest,
// then end-of-string, then ASCII letters (by byte value), then digits
// (handled as a single tier here; actual digit runs are compared
// separately above), then every other byte (ordered among themselves by
// byte value).
func orderAt(s []byte, idx int) int {
	if idx >= len(s) {
		return -1 // end-of-string
	}
	c := s[idx]
	switch {
	case c == '~':
		return -2
	case isDigit(c):
		return 2000
	case isAlpha(c):
		return 1000 + int(c)
	default:
		return 3000 + int(c)
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
