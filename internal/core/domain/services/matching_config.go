package services

import (
	"errors"
	"math"

	"dispatch/internal/pkg/errs"
)

const (
	// DefaultLoadPenaltyKm is the distance surcharge per order already assigned to a driver.
	DefaultLoadPenaltyKm = 0.5

	// DefaultCityWeight scales city similarity in the fuzzy tier.
	DefaultCityWeight = 0.9

	// DefaultAddressWeight scales address similarity in the fuzzy tier.
	DefaultAddressWeight = 0.95

	// DefaultFuzzyThreshold is the lowest fuzzy score accepted as a match.
	DefaultFuzzyThreshold = 0.25
)

// MatchingConfig holds the tunable constants of the AssignmentEngine.
//
// The yaml tags allow loading the config from a file; missing keys keep the
// values of the struct the file is decoded into.
type MatchingConfig struct {
	// LoadPenaltyKm is added to the proximity distance for every order a
	// driver already holds in the current run.
	LoadPenaltyKm float64 `yaml:"load_penalty_km"`

	// CityWeight multiplies the city similarity in the fuzzy tier.
	CityWeight float64 `yaml:"city_weight"`

	// AddressWeight multiplies the address similarity in the fuzzy tier.
	AddressWeight float64 `yaml:"address_weight"`

	// FuzzyThreshold is the inclusive minimum fuzzy score for a match.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
}

// DefaultMatchingConfig returns the production matching constants.
//
// Example:
//
//	cfg := services.DefaultMatchingConfig()
//	cfg.LoadPenaltyKm = 2 // spread orders more aggressively
//	engine, err := services.NewAssignmentEngine(cfg)
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		LoadPenaltyKm:  DefaultLoadPenaltyKm,
		CityWeight:     DefaultCityWeight,
		AddressWeight:  DefaultAddressWeight,
		FuzzyThreshold: DefaultFuzzyThreshold,
	}
}

// Validate checks that every constant is finite, weights and penalty are not
// negative, and the threshold lies within [0, 1].
//
// Returns:
//   - nil if the config is usable
//   - every violation joined into one error otherwise
func (c MatchingConfig) Validate() error {
	return errors.Join(
		nonNegative("load_penalty_km", c.LoadPenaltyKm),
		nonNegative("city_weight", c.CityWeight),
		nonNegative("address_weight", c.AddressWeight),
		inUnitRange("fuzzy_threshold", c.FuzzyThreshold),
	)
}

func nonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return errs.NewValueIsOutOfRangeError(name, v, 0, math.MaxFloat64)
	}
	return nil
}

func inUnitRange(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return errs.NewValueIsOutOfRangeError(name, v, 0, 1)
	}
	return nil
}
