package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestNewDefaultFareConfig(t *testing.T) {
	now := time.Now()
	cfg := NewDefaultFareConfig(now)

	assert.False(t, cfg.ID.IsZero())
	assert.Equal(t, 0.2, cfg.Margin)
	assert.Zero(t, cfg.TE)
	assert.Equal(t, 100.0, cfg.WeightRateTrain)
	assert.Equal(t, 200.0, cfg.WeightRateAirplane)
	assert.Equal(t, 0.2, cfg.DistanceRateAirplane)
	assert.Zero(t, cfg.DistanceRateTrain)
	assert.Zero(t, cfg.BaseFareTrain)
	assert.Zero(t, cfg.BaseFareAirplane)
	assert.Zero(t, cfg.DeliveryFee)
	assert.Equal(t, now, cfg.CreatedAt)
}

func TestFareUpdate_Apply(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	cfg := *NewDefaultFareConfig(created)

	t.Run("PartialUpdate", func(t *testing.T) {
		out, err := FareUpdate{Margin: ptr(0.18), TE: ptr(112)}.Apply(cfg, updated)
		require.NoError(t, err)
		assert.Equal(t, 0.18, out.Margin)
		assert.Equal(t, 112.0, out.TE)
		assert.Equal(t, 100.0, out.WeightRateTrain)
		assert.Equal(t, updated, out.UpdatedAt)
		assert.Equal(t, 0.2, cfg.Margin, "input is not modified")
	})

	t.Run("Invalid", func(t *testing.T) {
		cases := map[string]FareUpdate{
			"NegativeRate":  {WeightRateTrain: ptr(-1)},
			"NaN":           {TE: ptr(math.NaN())},
			"MarginOverOne": {Margin: ptr(1.5)},
		}
		for name, u := range cases {
			_, err := u.Apply(cfg, updated)
			assert.ErrorIs(t, err, ErrInvalidFareConfig, name)
		}
	})
}
