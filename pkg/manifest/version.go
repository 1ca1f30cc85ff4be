// SPDX-License-Identifier: MPL-2.0

package manifest

// compareVersions orders dotted version strings like "1.10.2" by numeric
// segments, comparing digit runs by value and other characters by byte,
// in the manner of glibc strverscmp. It returns a negative number, zero
// or a positive number as a sorts before, equal to, or after b.
func compareVersions(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			na, ni := takeNumber(a, i)
			nb, nj := takeNumber(b, j)
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			i, j = ni, nj
			continue
		}
		if ca != cb {
			return int(ca) - int(cb)
		}
		i++
		j++
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	default:
		return 0
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// takeNumber reads the digit run starting at s[i] and returns its value
// and the index of the first byte after it. Runs long enough to overflow
// are saturated, which is more than enough for version segments.
func takeNumber(s string, i int) (uint64, int) {
	var n uint64
	for i < len(s) && isDigit(s[i]) {
		if n < 1<<60 {
			n = n*10 + uint64(s[i]-'0')
		}
		i++
	}
	return n, i
}
