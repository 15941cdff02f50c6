package offer

import (
	"dispatch/internal/entities"
)

func ToDomain(o *OfferDB) *entities.Offer {
	if o == nil {
		return nil
	}
	return &entities.Offer{
		ID:         o.ID,
		OrderID:    o.OrderID,
		CourierID:  o.CourierID,
		State:      entities.OfferState(o.State),
		Rank:       o.Rank,
		Score:      o.Score,
		DistanceKm: o.DistanceKm,
		IssuedAt:   o.IssuedAt,
		ExpiresAt:  o.ExpiresAt,
	}
}
