package courier

import (
	"dispatch/internal/entities"
)

func ToDomain(c *CourierDB) *entities.CourierPresence {
	if c == nil {
		return nil
	}

	presence := &entities.CourierPresence{
		ID:                 c.ID,
		Name:               c.Name,
		Phone:              c.Phone,
		Online:             c.Online,
		Rating:             c.Rating,
		LifetimeDeliveries: c.LifetimeDeliveries,
		CurrentCount:       c.CurrentCount,
		MaxCapacity:        c.MaxCapacity,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}

	// Latitude and longitude are nullable together: no ping yet.
	if c.Lat != nil && c.Lng != nil {
		presence.Location = &entities.Location{Lat: *c.Lat, Lng: *c.Lng}
	}

	return presence
}

func FromDomainModify(m *entities.CourierModify) *CourierModifyDB {
	if m == nil {
		return nil
	}
	modifyDB := &CourierModifyDB{
		ID:     m.ID,
		Name:   m.Name,
		Phone:  m.Phone,
		Online: m.Online,
		Rating: m.Rating,
	}

	if m.Location != nil {
		lat := m.Location.Lat
		lng := m.Location.Lng
		modifyDB.Lat = &lat
		modifyDB.Lng = &lng
	}

	return modifyDB
}

func ToDomainList(couriersDB []CourierDB) []entities.CourierPresence {
	if len(couriersDB) == 0 {
		return []entities.CourierPresence{}
	}

	result := make([]entities.CourierPresence, len(couriersDB))
	for i, courierDB := range couriersDB {
		result[i] = *ToDomain(&courierDB)
	}
	return result
}
