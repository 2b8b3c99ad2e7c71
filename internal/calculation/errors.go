package calculation

import "errors"

var (
	// ErrUnknownRegime is returned when a regime identifier is not one of the supported regimes
	ErrUnknownRegime = errors.New("unknown tax regime")
	// ErrUnknownCommunity is returned when no regional IRPF scale exists for a community
	ErrUnknownCommunity = errors.New("unknown autonomous community")
	// ErrInvalidParams is returned for negative amounts or out-of-range modifiers
	ErrInvalidParams = errors.New("invalid calculator parameters")
)
