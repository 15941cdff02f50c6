package dispatch

import (
	"strings"

	"dispatch/internal/entities"
)

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}

func isValidPickup(pickup entities.Location) bool {
	if pickup.Lat < -90 || pickup.Lat > 90 {
		return false
	}
	return pickup.Lng >= -180 && pickup.Lng <= 180
}
