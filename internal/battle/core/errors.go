package core

import "errors"

var (
	ErrUnknownShip       = errors.New("unknown ship id")
	ErrShipAlreadyPlaced = errors.New("ship already placed")
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
	ErrOverlap           = errors.New("placement overlaps another ship")
	ErrAlreadyAttacked   = errors.New("cell already attacked")
	ErrIncompleteFleet   = errors.New("fleet is incomplete")
	ErrBadCatalog        = errors.New("invalid ship catalog")
	ErrBadBoardSize      = errors.New("invalid board dimensions")
	ErrBadSnapshot       = errors.New("malformed board snapshot")
)
