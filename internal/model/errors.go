package model

import "errors"

var (
	// ErrUnknownAttribute is returned for an attribute name outside the six primaries.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrUnknownSlot is returned for an equipment slot name that does not exist.
	ErrUnknownSlot = errors.New("unknown equipment slot")
	// ErrUnknownTrigger is returned for a passive trigger name outside the enumerated set.
	ErrUnknownTrigger = errors.New("unknown passive trigger")
	// ErrUnknownEffect is returned for an effect type the engine does not implement.
	ErrUnknownEffect = errors.New("unknown effect type")
	// ErrMalformedEffect is returned when an effect payload misses a required field.
	ErrMalformedEffect = errors.New("malformed effect payload")
)
