package assignment

// Tier names the matching rule that selected a driver for an order.
// Tiers are tried in declaration order; the first one that yields a driver wins.
type Tier int

const (
	// Unmatched means no tier produced a driver (only when there are no drivers).
	Unmatched Tier = iota

	// Proximity picks the driver with the smallest load-adjusted distance.
	Proximity

	// CityMatch picks the least loaded driver in exactly the same city.
	CityMatch

	// AddressMatch picks the least loaded driver whose address contains the
	// order address or is contained by it.
	AddressMatch

	// FuzzyMatch picks the driver with the best weighted city/address similarity
	// at or above the acceptance threshold.
	FuzzyMatch

	// LeastLoaded picks the least loaded driver overall.
	LeastLoaded
)

// String returns the snake_case tier name used in logs, metrics and the API.
func (t Tier) String() string {
	switch t {
	case Proximity:
		return "proximity"
	case CityMatch:
		return "city_match"
	case AddressMatch:
		return "address_match"
	case FuzzyMatch:
		return "fuzzy_match"
	case LeastLoaded:
		return "least_loaded"
	case Unmatched:
		return "unmatched"
	default:
		return "unmatched"
	}
}

// Tiers lists every matching tier in precedence order.
func Tiers() []Tier {
	return []Tier{Proximity, CityMatch, AddressMatch, FuzzyMatch, LeastLoaded}
}
