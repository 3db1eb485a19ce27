package types

type SuccessEnvelope struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// ListMeta accompanies collection responses.
type ListMeta struct {
	Count          int         `json:"count"`
	CanonicalQuery string      `json:"canonical_query,omitempty"`
	PriceBounds    *PriceRange `json:"price_bounds,omitempty"`
}

// PriceRange is an inclusive pair of amounts in minor units.
type PriceRange struct {
	Min Cents `json:"min"`
	Max Cents `json:"max"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
