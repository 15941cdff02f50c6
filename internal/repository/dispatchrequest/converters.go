package dispatchrequest

import (
	"dispatch/internal/entities"
)

func ToDomain(d *DispatchRequestDB) *entities.DispatchRequest {
	if d == nil {
		return nil
	}
	return &entities.DispatchRequest{
		ID:                d.ID,
		OrderID:           d.OrderID,
		Pickup:            entities.Location{Lat: d.PickupLat, Lng: d.PickupLng},
		State:             entities.DispatchState(d.State),
		AssignedCourierID: d.AssignedCourierID,
		Round:             d.Round,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}
