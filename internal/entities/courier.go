package entities

import (
	"time"
)

type Location struct {
	Lat float64
	Lng float64
}

const DefaultMaxCapacity = 3

// CourierPresence is the shared courier record. The courier's own client
// writes Online/Location; only the dispatch coordinator writes CurrentCount.
type CourierPresence struct {
	ID                 int64
	Name               string
	Phone              string
	Online             bool
	Location           *Location // nil until the first location ping
	Rating             float64
	LifetimeDeliveries int64
	CurrentCount       int64
	MaxCapacity        int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type CourierModify struct {
	ID       *int64
	Name     *string
	Phone    *string
	Online   *bool
	Location *Location
	Rating   *float64
}

// ScoredCourier is one ranked candidate for an offer.
type ScoredCourier struct {
	Courier    CourierPresence
	Score      float64
	DistanceKm float64
}
