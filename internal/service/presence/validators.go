package presence

import (
	"strings"

	"dispatch/internal/entities"
)

func isValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

func isValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "+") {
		return false
	}

	for _, char := range phone[1:] {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

func isValidLocation(loc entities.Location) bool {
	if loc.Lat < -90 || loc.Lat > 90 {
		return false
	}
	return loc.Lng >= -180 && loc.Lng <= 180
}
