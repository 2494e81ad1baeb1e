package rank

import "strings"

const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	base     = len(alphabet)
)

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	default:
		return -1
	}
}

func validDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if digitValue(s[i]) < 0 {
			return false
		}
	}
	return true
}

// digits right-pads s with zeros up to n digits.
func digits(s string, n int) []int {
	out := make([]int, n)
	for i := 0; i < len(s) && i < n; i++ {
		out[i] = digitValue(s[i])
	}
	return out
}

func format(ds []int) string {
	b := make([]byte, len(ds))
	for i, d := range ds {
		b[i] = alphabet[d]
	}
	return string(b)
}

func equalDigits(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// midpoint returns floor((lo + hi) / 2) where lo and hi are base-36 digit
// sequences of equal length read as fractions. hiOne adds 1.0 to hi, which is
// how an open upper bound is expressed.
func midpoint(lo, hi []int, hiOne bool) []int {
	n := len(lo)
	sum := make([]int, n+1)
	carry := 0
	for i := n - 1; i >= 0; i-- {
		s := lo[i] + hi[i] + carry
		sum[i+1] = s % base
		carry = s / base
	}
	sum[0] = carry
	if hiOne {
		sum[0]++
	}

	out := make([]int, n+1)
	rem := 0
	for i := 0; i <= n; i++ {
		cur := rem*base + sum[i]
		out[i] = cur / 2
		rem = cur % 2
	}
	return out[1:]
}

// decimalLimit is the longest decimal segment that keeps a token with the
// given integer segment within MaxLength ("b|" + integer + ":" + decimal).
func decimalLimit(integer string) int {
	return MaxLength - len(integer) - 3
}

// decimalBetween returns a decimal segment strictly between lo and hi, with
// hiOne standing for an open upper bound. Precision starts at the longer input
// and grows one digit at a time, up to limit, while the midpoint collapses onto lo.
func decimalBetween(lo, hi string, hiOne bool, limit int) (string, error) {
	n := len(lo)
	if len(hi) > n {
		n = len(hi)
	}
	if n == 0 {
		n = 1
	}

	for ; n <= limit; n++ {
		l := digits(lo, n)
		var h []int
		if hiOne {
			h = make([]int, n)
		} else {
			h = digits(hi, n)
		}

		m := midpoint(l, h, hiOne)
		if equalDigits(m, l) {
			continue
		}
		return strings.TrimRight(format(m), "0"), nil
	}
	return "", ErrNoRoomBetween
}

// integerBetween returns the midpoint of two equal-width integer segments, or
// false when they are adjacent.
func integerBetween(a, b string) (string, bool) {
	l := digits(a, len(a))
	m := midpoint(l, digits(b, len(b)), false)
	if equalDigits(m, l) {
		return "", false
	}
	return format(m), true
}

func increment(s string) (string, bool) {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		d := digitValue(b[i])
		if d < base-1 {
			b[i] = alphabet[d+1]
			return string(b), true
		}
		b[i] = '0'
	}
	return "", false
}

func decrement(s string) (string, bool) {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		d := digitValue(b[i])
		if d > 0 {
			b[i] = alphabet[d-1]
			return string(b), true
		}
		b[i] = alphabet[base-1]
	}
	return "", false
}
