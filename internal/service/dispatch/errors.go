package dispatch

import "errors"

var (
	ErrInvalidOrderID  = errors.New("invalid order id")
	ErrInvalidPickup   = errors.New("invalid pickup coordinates")
	ErrInvalidDecision = errors.New("invalid offer decision")

	ErrDuplicateOrder   = errors.New("order already dispatched")
	ErrDispatchNotFound = errors.New("dispatch not found")
	ErrDispatchTerminal = errors.New("dispatch already resolved")
	ErrNotAssigned      = errors.New("order has no assigned courier")

	ErrOfferNotFound = errors.New("offer not found")
	ErrOfferStale    = errors.New("offer is no longer pending")
	ErrOfferConflict = errors.New("order already has a pending offer")
)
