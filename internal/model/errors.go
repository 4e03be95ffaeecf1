package model

import "errors"

var (
	// ErrUnknownType is returned when an installation id is not in the catalog.
	ErrUnknownType = errors.New("unknown installation type")
	// ErrUnknownTown is returned when no demand figure exists for a town.
	ErrUnknownTown = errors.New("unknown town")
	// ErrInvalidQuantity is returned for negative, non-numeric or non-finite quantities.
	ErrInvalidQuantity = errors.New("invalid installation quantity")
)
