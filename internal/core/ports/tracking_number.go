package ports

// TrackingNumberGenerator issues unique, externally visible tracking numbers.
type TrackingNumberGenerator interface {
	Next() string
}
