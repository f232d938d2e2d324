package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommissionFor(t *testing.T) {
	// 10.00 over threshold 100.00, 30.00 over 200.00, 80.00 over 500.00
	tiers := []CommissionTier{
		{Threshold: 50000, Commission: 8000},
		{Threshold: 10000, Commission: 1000},
		{Threshold: 20000, Commission: 3000},
	}

	t.Run("Highest reached tier wins", func(t *testing.T) {
		assert.Equal(t, int64(1000), CommissionFor(tiers, 10000))
		assert.Equal(t, int64(1000), CommissionFor(tiers, 19999))
		assert.Equal(t, int64(3000), CommissionFor(tiers, 20000))
		assert.Equal(t, int64(3000), CommissionFor(tiers, 49999))
		assert.Equal(t, int64(8000), CommissionFor(tiers, 50000))
		assert.Equal(t, int64(8000), CommissionFor(tiers, 1000000))
	})

	t.Run("Below lowest threshold pays nothing", func(t *testing.T) {
		assert.Equal(t, int64(0), CommissionFor(tiers, 9999))
		assert.Equal(t, int64(0), CommissionFor(tiers, 0))
	})

	t.Run("Empty table pays nothing", func(t *testing.T) {
		assert.Equal(t, int64(0), CommissionFor(nil, 100000))
	})

	t.Run("Input order does not matter", func(t *testing.T) {
		reversed := []CommissionTier{tiers[1], tiers[2], tiers[0]}
		assert.Equal(t, int64(8000), CommissionFor(reversed, 60000))
	})
}
