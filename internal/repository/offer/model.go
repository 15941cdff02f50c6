package offer

import "time"

type OfferDB struct {
	ID         int64
	OrderID    string
	CourierID  int64
	State      string
	Rank       int64
	Score      float64
	DistanceKm float64
	IssuedAt   time.Time
	ExpiresAt  time.Time
}
