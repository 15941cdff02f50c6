package entities

import "time"

type DispatchState string

const (
	DispatchUnassigned DispatchState = "unassigned"
	DispatchOffering   DispatchState = "offering"
	DispatchAssigned   DispatchState = "assigned"
	DispatchExhausted  DispatchState = "exhausted"
)

func (s DispatchState) String() string {
	return string(s)
}

func (s DispatchState) Terminal() bool {
	return s == DispatchAssigned || s == DispatchExhausted
}

type DispatchRequest struct {
	ID                int64
	OrderID           string
	Pickup            Location
	State             DispatchState
	AssignedCourierID *int64
	Round             int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
