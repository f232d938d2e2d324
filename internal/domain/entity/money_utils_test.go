package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

// fixedClock pins the time provider for entity tests
type fixedClock struct {
	t time.Time
}

func newFixedClock() fixedClock {
	return fixedClock{t: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}
}

func (c fixedClock) Now() time.Time {
	return c.t
}

func (c fixedClock) Since(t time.Time) time.Duration {
	return c.t.Sub(t)
}

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		cases := []struct {
			input string
			want  int64
		}{
			{"10.15", 1015},
			{"10.1", 1010},
			{"10", 1000},
			{"10.", 1000},
			{"0.01", 1},
			{"0.00", 0},
			{" 25.50 ", 2550},
			{"92233720368.54", 9223372036854},
		}
		for _, tc := range cases {
			got, err := ParseAmount(tc.input)
			require.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.want, got, "input %q", tc.input)
		}
	})

	t.Run("Negative amount rejected", func(t *testing.T) {
		_, err := ParseAmount("-5.00")
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})

	t.Run("Too many decimal places rejected", func(t *testing.T) {
		_, err := ParseAmount("10.155")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Malformed input rejected", func(t *testing.T) {
		for _, input := range []string{"", "  ", "abc", "10.1.5", "1,000"} {
			_, err := ParseAmount(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		paise int64
		want  string
	}{
		{1015, "10.15"},
		{1000, "10.00"},
		{1, "0.01"},
		{0, "0.00"},
		{-1, "-0.01"},
		{-2550, "-25.50"},
		{100000000, "1000000.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatAmount(tc.paise), "paise %d", tc.paise)
	}
}

func TestFormatAmountRoundTrip(t *testing.T) {
	for _, paise := range []int64{0, 1, 99, 100, 1015, 123456789} {
		parsed, err := ParseAmount(FormatAmount(paise))
		require.NoError(t, err)
		assert.Equal(t, paise, parsed)
	}
}

func TestOrderPrice(t *testing.T) {
	t.Run("Whole multiples", func(t *testing.T) {
		// 150.00 per 1000, quantity 2000
		assert.Equal(t, int64(30000), OrderPrice(15000, 2000))
	})

	t.Run("Fractional result rounds half away from zero", func(t *testing.T) {
		// 0.50 per 1000, quantity 2 costs 0.001 rupees, rounds to 0 paise
		assert.Equal(t, int64(0), OrderPrice(50, 2))
		// 0.50 per 1000, quantity 10 costs 0.5 paise, rounds to 1
		assert.Equal(t, int64(1), OrderPrice(50, 10))
		// 1.00 per 1000, quantity 500 costs exactly 50 paise
		assert.Equal(t, int64(50), OrderPrice(100, 500))
	})

	t.Run("Small rates never price below zero", func(t *testing.T) {
		assert.GreaterOrEqual(t, OrderPrice(1, 1), int64(0))
	})
}
