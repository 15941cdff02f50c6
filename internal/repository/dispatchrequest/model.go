package dispatchrequest

import "time"

type DispatchRequestDB struct {
	ID                int64
	OrderID           string
	PickupLat         float64
	PickupLng         float64
	State             string
	AssignedCourierID *int64
	Round             int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
