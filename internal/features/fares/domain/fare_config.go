package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidFareConfig is returned when an update would store an unusable configuration.
	ErrInvalidFareConfig = errors.New("invalid fare configuration")
)

// FareConfig is the singleton pricing configuration.
type FareConfig struct {
	ID                   primitive.ObjectID `bson:"_id" json:"id"`
	TE                   float64            `bson:"TE" json:"TE"`
	DeliveryFee          float64            `bson:"deliveryFee" json:"deliveryFee"`
	Margin               float64            `bson:"margin" json:"margin"` // fraction, 0.2 is 20%
	WeightRateTrain      float64            `bson:"weightRateTrain" json:"weightRateTrain"`
	WeightRateAirplane   float64            `bson:"weightRateAirplane" json:"weightRateAirplane"`
	DistanceRateTrain    float64            `bson:"distanceRateTrain" json:"distanceRateTrain"`
	DistanceRateAirplane float64            `bson:"distanceRateAirplane" json:"distanceRateAirplane"`
	BaseFareTrain        float64            `bson:"baseFareTrain" json:"baseFareTrain"`
	BaseFareAirplane     float64            `bson:"baseFareAirplane" json:"baseFareAirplane"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewDefaultFareConfig creates the configuration stored when none exists.
func NewDefaultFareConfig(now time.Time) *FareConfig {
	return &FareConfig{
		ID:                   primitive.NewObjectID(),
		TE:                   0,
		Margin:               0.2,
		WeightRateTrain:      100,
		WeightRateAirplane:   200,
		DistanceRateAirplane: 0.2,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// FareUpdate is a partial update; nil fields are left unchanged.
type FareUpdate struct {
	TE                   *float64 `json:"TE"`
	DeliveryFee          *float64 `json:"deliveryFee"`
	Margin               *float64 `json:"margin"`
	WeightRateTrain      *float64 `json:"weightRateTrain"`
	WeightRateAirplane   *float64 `json:"weightRateAirplane"`
	DistanceRateTrain    *float64 `json:"distanceRateTrain"`
	DistanceRateAirplane *float64 `json:"distanceRateAirplane"`
	BaseFareTrain        *float64 `json:"baseFareTrain"`
	BaseFareAirplane     *float64 `json:"baseFareAirplane"`
}

// Apply returns a copy of cfg with the update applied, or an error if the
// result is invalid. cfg is not modified.
func (u FareUpdate) Apply(cfg FareConfig, now time.Time) (*FareConfig, error) {
	fields := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"TE", u.TE, &cfg.TE},
		{"deliveryFee", u.DeliveryFee, &cfg.DeliveryFee},
		{"margin", u.Margin, &cfg.Margin},
		{"weightRateTrain", u.WeightRateTrain, &cfg.WeightRateTrain},
		{"weightRateAirplane", u.WeightRateAirplane, &cfg.WeightRateAirplane},
		{"distanceRateTrain", u.DistanceRateTrain, &cfg.DistanceRateTrain},
		{"distanceRateAirplane", u.DistanceRateAirplane, &cfg.DistanceRateAirplane},
		{"baseFareTrain", u.BaseFareTrain, &cfg.BaseFareTrain},
		{"baseFareAirplane", u.BaseFareAirplane, &cfg.BaseFareAirplane},
	}

	for _, f := range fields {
		if f.src == nil {
			continue
		}
		v := *f.src
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidFareConfig, f.name)
		}
		*f.dst = v
	}

	if cfg.Margin > 1 {
		return nil, fmt.Errorf("%w: margin must be a fraction between 0 and 1", ErrInvalidFareConfig)
	}

	cfg.UpdatedAt = now
	return &cfg, nil
}
