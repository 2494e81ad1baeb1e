package rank

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	valid := []string{
		"0|hzzzzz:",
		"0|i00000:",
		"0|a0000a:",
		"1|0:",
		"0|zzzzzz:i",
		"0|hzzzzz:0i",
	}
	for _, s := range valid {
		r, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, r.String())
	}

	invalid := []string{
		"",
		"0|",
		"0|:",
		"0|hzzzzz",
		"hzzzzz:",
		"a|hzzzzz:",
		"0-hzzzzz:",
		"0|HZZZZZ:",
		"0|hz zzz:",
		"0|hzzzzz:i0",
		"0|hzzzzz::",
		"00|hzzzzz:",
	}
	for _, s := range invalid {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrMalformedRank, s)
	}
}

func TestInitial(t *testing.T) {
	assert.Equal(t, "0|hzzzzz:", Initial().String())
	assert.False(t, Initial().IsZero())
	assert.True(t, Rank{}.IsZero())
}

func TestCompareSymmetry(t *testing.T) {
	ranks := sampleRanks()
	for _, a := range ranks {
		for _, b := range ranks {
			assert.Equal(t, Compare(a, b), -Compare(b, a), "%s vs %s", a, b)
		}
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0|hzzzzz:", "0|i00000:"},
		{"0|i00000:", "0|i00001:"},
		{"0|a0000z:", "0|a00010:"},
		{"0|hzzzzz:abc", "0|i00000:"},
		{"0|zzzzzz:", "0|zzzzzz:i"},
		{"0|zzzzzz:i", "0|zzzzzz:r"},
	}
	for _, tt := range tests {
		got, err := Next(MustParse(tt.in))
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.String(), tt.in)
		assert.True(t, MustParse(tt.in).Less(got), tt.in)
	}
}

func TestPrev(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0|i00000:", "0|hzzzzz:"},
		{"0|a0000a:", "0|a00009:"},
		{"0|a00000:", "0|9zzzzz:"},
		{"0|i00000:abc", "0|hzzzzz:"},
		{"0|000000:i", "0|000000:9"},
		{"0|000000:01", "0|000000:00i"},
	}
	for _, tt := range tests {
		got, err := Prev(MustParse(tt.in))
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.String(), tt.in)
		assert.True(t, got.Less(MustParse(tt.in)), tt.in)
	}

	got, err := Prev(MustParse("0|000000:"))
	require.NoError(t, err)
	assert.Equal(t, "0|0000000:", got.String())
	assert.True(t, got.Less(MustParse("0|000000:")))
}

func TestPrevBelowZeroKeepsDescending(t *testing.T) {
	r := MustParse("0|000002:")
	steps := 0
	for ; steps < 1000; steps++ {
		p, err := Prev(r)
		if err != nil {
			require.ErrorIs(t, err, ErrNoRoomBetween)
			break
		}
		require.True(t, p.Less(r), "%s !< %s", p, r)
		require.LessOrEqual(t, len(p.String()), MaxLength)
		r = p
	}
	assert.Greater(t, steps, 200)
}

func TestBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"0|hzzzzz:", "0|i00000:", "0|hzzzzz:i"},
		{"0|a00000:", "0|a00002:", "0|a00001:"},
		{"0|000000:", "0|zzzzzz:", "0|hzzzzz:"},
		{"0|a:1", "0|a:2", "0|a:1i"},
		{"0|a:", "0|a:1", "0|a:0i"},
		{"0|hz:", "0|hzz:", "0|hz:i"},
		{"0|hz5:", "0|hz:", "0|hz5:i"},
		{"0|zzzzzz:", "1|000000:", "0|zzzzzz:i"},
	}
	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		got, err := Between(a, b)
		require.NoError(t, err, "%s..%s", tt.a, tt.b)
		assert.Equal(t, tt.want, got.String(), "%s..%s", tt.a, tt.b)
		assert.True(t, a.Less(got) && got.Less(b), "%s < %s < %s", a, got, b)
	}
}

func TestBetweenInvalidRange(t *testing.T) {
	a := MustParse("0|hzzzzz:")
	b := MustParse("0|i00000:")

	_, err := Between(b, a)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Between(a, a)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestBetweenAllPairs(t *testing.T) {
	ranks := sampleRanks()
	sort.Slice(ranks, func(i, j int) bool { return ranks[i].Less(ranks[j]) })

	for i := 0; i < len(ranks); i++ {
		for j := i + 1; j < len(ranks); j++ {
			a, c := ranks[i], ranks[j]
			if a.Equal(c) {
				continue
			}
			m, err := Between(a, c)
			require.NoError(t, err, "%s..%s", a, c)
			require.True(t, a.Less(m) && m.Less(c), "%s < %s < %s", a, m, c)

			parsed, err := Parse(m.String())
			require.NoError(t, err)
			require.True(t, parsed.Equal(m))
		}
	}
}

func TestBetweenAdjacentSingleDigits(t *testing.T) {
	for i := 0; i+1 < len(alphabet); i++ {
		a := MustParse("0|" + alphabet[i:i+1] + ":")
		b := MustParse("0|" + alphabet[i+1:i+2] + ":")
		m, err := Between(a, b)
		require.NoError(t, err)
		assert.True(t, a.Less(m) && m.Less(b), "%s < %s < %s", a, m, b)

		// Decimal neighbours inside one integer.
		a = MustParse("0|h:" + alphabet[i:i+1] + "1")
		b = MustParse("0|h:" + alphabet[i:i+1] + "2")
		m, err = Between(a, b)
		require.NoError(t, err)
		assert.True(t, a.Less(m) && m.Less(b), "%s < %s < %s", a, m, b)
	}
}

func TestBetweenRepeatedBisectionIsBounded(t *testing.T) {
	lo := MustParse("0|hzzzzz:")
	hi := MustParse("0|i00000:")

	var (
		err  error
		last Rank
	)
	steps := 0
	for ; steps < 5000; steps++ {
		var m Rank
		m, err = Between(lo, hi)
		if err != nil {
			break
		}
		require.True(t, lo.Less(m) && m.Less(hi))
		hi, last = m, m
	}

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRoomBetween))
	assert.Greater(t, steps, 1000)
	assert.LessOrEqual(t, len(last.String()), MaxLength)
}

func TestBetweenRepeatedIntoSameGapFromBelow(t *testing.T) {
	lo := MustParse("0|hzzzzz:")
	hi := MustParse("0|i00000:")

	for i := 0; i < 1000; i++ {
		m, err := Between(lo, hi)
		require.NoError(t, err, "step %d", i)
		require.True(t, lo.Less(m) && m.Less(hi))
		lo = m
	}
	assert.LessOrEqual(t, len(lo.String()), MaxLength)
}

func TestRandomInsertionsKeepOrder(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	list := []Rank{Initial()}

	for i := 0; i < 2000; i++ {
		pos := rnd.Intn(len(list) + 1)
		var (
			r   Rank
			err error
		)
		switch pos {
		case 0:
			r, err = Prev(list[0])
		case len(list):
			r, err = Next(list[len(list)-1])
		default:
			r, err = Between(list[pos-1], list[pos])
		}
		require.NoError(t, err)

		list = append(list, Rank{})
		copy(list[pos+1:], list[pos:])
		list[pos] = r
	}

	for i := 1; i < len(list); i++ {
		require.True(t, list[i-1].Less(list[i]), "%s !< %s", list[i-1], list[i])
	}
}

func TestNextMonotonicAcrossSaturation(t *testing.T) {
	r := MustParse("0|zzzzzw:")
	for i := 0; i < 200; i++ {
		n, err := Next(r)
		require.NoError(t, err)
		require.True(t, r.Less(n), "%s !< %s", r, n)
		r = n
	}
	assert.LessOrEqual(t, len(r.String()), MaxLength)
}

func TestRoundTripGenerated(t *testing.T) {
	r := Initial()
	for i := 0; i < 50; i++ {
		next, err := Next(r)
		require.NoError(t, err)
		prev, err := Prev(r)
		require.NoError(t, err)
		mid, err := Between(r, next)
		require.NoError(t, err)

		for _, g := range []Rank{next, prev, mid} {
			parsed, err := Parse(g.String())
			require.NoError(t, err)
			assert.True(t, parsed.Equal(g))
		}
		r = mid
	}
}

func sampleRanks() []Rank {
	integers := []string{"0", "h", "z"}
	for _, x := range []string{"0", "1", "h", "y", "z"} {
		for _, y := range []string{"0", "1", "h", "y", "z"} {
			integers = append(integers, x+y)
		}
	}
	integers = append(integers, "000", "h00", "hzz", "zzz")
	decimals := []string{"", "1", "9", "i", "z", "01", "0z", "i1", "zz", "00z"}

	var out []Rank
	for _, bucket := range []byte{'0', '1'} {
		for _, i := range integers {
			for _, d := range decimals {
				out = append(out, Rank{bucket: bucket, integer: i, decimal: d})
			}
		}
	}
	return out
}
