// Package rank implements the ordering token stored on every orderable row.
//
// A rank serializes as "<bucket>|<integer>:<decimal>", for example "0|hzzzzz:".
// The integer and decimal segments use the base-36 alphabet 0-9a-z. Ranks are
// ordered by byte-wise comparison of the serialized token, so arithmetic in
// this package always produces tokens whose byte order matches the intended
// position.
package rank

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultBucket is the bucket every generated rank lives in.
	DefaultBucket byte = '0'

	// MaxLength bounds every generated token. It matches the width of the
	// rank column; Between, Next and Prev return ErrNoRoomBetween beyond it.
	MaxLength = 255

	initialInteger = "hzzzzz"
)

var (
	// ErrMalformedRank is returned when a string does not follow the token grammar.
	ErrMalformedRank = errors.New("malformed rank")
	// ErrInvalidRange is returned when Between is called with a >= b.
	ErrInvalidRange = errors.New("invalid rank range")
	// ErrNoRoomBetween is returned when no rank fits within the precision bound.
	ErrNoRoomBetween = errors.New("no room between ranks")
)

// Rank is a parsed ordering token. The zero value is not a valid rank.
type Rank struct {
	bucket  byte
	integer string
	decimal string
}

// Initial returns the rank assigned to the first item of an empty group.
func Initial() Rank {
	return Rank{bucket: DefaultBucket, integer: initialInteger}
}

// Parse parses a serialized token.
func Parse(s string) (Rank, error) {
	if len(s) < 4 || s[1] != '|' || s[0] < '0' || s[0] > '9' {
		return Rank{}, fmt.Errorf("%w: %q", ErrMalformedRank, s)
	}

	body := s[2:]
	sep := strings.IndexByte(body, ':')
	if sep <= 0 {
		return Rank{}, fmt.Errorf("%w: %q", ErrMalformedRank, s)
	}

	integer, decimal := body[:sep], body[sep+1:]
	if !validDigits(integer) || !validDigits(decimal) {
		return Rank{}, fmt.Errorf("%w: %q", ErrMalformedRank, s)
	}
	// A trailing zero would create a second spelling of the same position
	// with nothing between the two.
	if strings.HasSuffix(decimal, "0") {
		return Rank{}, fmt.Errorf("%w: %q has a trailing zero", ErrMalformedRank, s)
	}

	return Rank{bucket: s[0], integer: integer, decimal: decimal}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Rank {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the serialized token.
func (r Rank) String() string {
	var b strings.Builder
	b.Grow(len(r.integer) + len(r.decimal) + 3)
	b.WriteByte(r.bucket)
	b.WriteByte('|')
	b.WriteString(r.integer)
	b.WriteByte(':')
	b.WriteString(r.decimal)
	return b.String()
}

// IsZero reports whether r is the zero value.
func (r Rank) IsZero() bool {
	return r.bucket == 0 && r.integer == "" && r.decimal == ""
}

// Compare returns -1, 0 or +1 comparing the serialized tokens byte by byte.
func Compare(a, b Rank) int {
	return strings.Compare(a.String(), b.String())
}

// Less reports whether r sorts before other.
func (r Rank) Less(other Rank) bool {
	return Compare(r, other) < 0
}

// Equal reports whether r and other are the same token.
func (r Rank) Equal(other Rank) bool {
	return r == other
}

// Next returns a rank strictly greater than a.
//
// The integer segment is incremented by one with carry, which keeps the token
// width fixed. Only when the integer is saturated does the decimal segment grow.
func Next(a Rank) (Rank, error) {
	if integer, ok := increment(a.integer); ok {
		return Rank{bucket: a.bucket, integer: integer}, nil
	}

	decimal, err := decimalBetween(a.decimal, "", true, decimalLimit(a.integer))
	if err != nil {
		return Rank{}, fmt.Errorf("next of %s: %w", a, err)
	}
	return Rank{bucket: a.bucket, integer: a.integer, decimal: decimal}, nil
}

// Prev returns a rank strictly less than a.
//
// Below an all-zero integer the decimal segment shrinks toward zero. Once it
// is empty, the integer gains a trailing '0': "0|0000000:" sorts before
// "0|000000:" because '0' < ':'.
func Prev(a Rank) (Rank, error) {
	if integer, ok := decrement(a.integer); ok {
		return Rank{bucket: a.bucket, integer: integer}, nil
	}

	if a.decimal != "" {
		decimal, err := decimalBetween("", a.decimal, false, decimalLimit(a.integer))
		if err == nil {
			return Rank{bucket: a.bucket, integer: a.integer, decimal: decimal}, nil
		}
	}

	widened := Rank{bucket: a.bucket, integer: a.integer + "0"}
	if len(widened.String()) > MaxLength {
		return Rank{}, fmt.Errorf("prev of %s: %w", a, ErrNoRoomBetween)
	}
	return widened, nil
}

// Between returns a rank strictly between a and b. It requires a < b.
func Between(a, b Rank) (Rank, error) {
	if Compare(a, b) >= 0 {
		return Rank{}, fmt.Errorf("%w: %s is not before %s", ErrInvalidRange, a, b)
	}

	if a.bucket == b.bucket && a.integer == b.integer {
		decimal, err := decimalBetween(a.decimal, b.decimal, false, decimalLimit(a.integer))
		if err != nil {
			return Rank{}, fmt.Errorf("between %s and %s: %w", a, b, err)
		}
		return Rank{bucket: a.bucket, integer: a.integer, decimal: decimal}, nil
	}

	if a.bucket == b.bucket && len(a.integer) == len(b.integer) {
		if integer, ok := integerBetween(a.integer, b.integer); ok {
			return Rank{bucket: a.bucket, integer: integer}, nil
		}
	}

	// Adjacent integers, or tokens that already differ inside a's
	// "bucket|integer:" prefix: extending a's decimal keeps that prefix and
	// therefore stays below b.
	decimal, err := decimalBetween(a.decimal, "", true, decimalLimit(a.integer))
	if err != nil {
		return Rank{}, fmt.Errorf("between %s and %s: %w", a, b, err)
	}
	return Rank{bucket: a.bucket, integer: a.integer, decimal: decimal}, nil
}
