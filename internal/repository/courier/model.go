package courier

import "time"

type CourierDB struct {
	ID                 int64
	Name               string
	Phone              string
	Online             bool
	Lat                *float64
	Lng                *float64
	Rating             float64
	LifetimeDeliveries int64
	CurrentCount       int64
	MaxCapacity        int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type CourierModifyDB struct {
	ID     *int64
	Name   *string
	Phone  *string
	Online *bool
	Lat    *float64
	Lng    *float64
	Rating *float64
}
