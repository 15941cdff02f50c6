package scoring

import (
	"math"

	"dispatch/internal/entities"
)

const (
	earthRadiusKm = 6371

	// Eligibility gates, applied before scoring.
	MaxOfferDistanceKm = 15.0
	MinRating          = 4.0

	weightDistance   = 0.40
	weightLoad       = 0.25
	weightRating     = 0.20
	weightExperience = 0.15
)

// Breakdown carries the sub-scores behind a composite fitness value.
// It is logged with every offer so ranking decisions can be replayed.
type Breakdown struct {
	DistanceKm float64
	Distance   float64
	Load       float64
	Rating     float64
	Experience float64
	Composite  float64
}

// Score rates how well a courier fits a pickup point, in [0, 100].
// Pure function: the caller is responsible for filtering with Eligible
// first, Score assumes the courier has a known location.
func Score(pickup entities.Location, courier entities.CourierPresence) (float64, Breakdown) {
	distanceKm := DistanceKm(pickup, *courier.Location)

	breakdown := Breakdown{
		DistanceKm: distanceKm,
		Distance:   distanceScore(distanceKm),
		Load:       loadScore(courier.CurrentCount),
		Rating:     ratingScore(courier.Rating),
		Experience: experienceScore(courier.LifetimeDeliveries),
	}

	breakdown.Composite = weightDistance*breakdown.Distance +
		weightLoad*breakdown.Load +
		weightRating*breakdown.Rating +
		weightExperience*breakdown.Experience

	return breakdown.Composite, breakdown
}

// Eligible reports whether a courier may enter the ranking at all:
// online, located, rated at least MinRating, below capacity and within
// MaxOfferDistanceKm of the pickup.
func Eligible(pickup entities.Location, courier entities.CourierPresence) bool {
	if !courier.Online || courier.Location == nil {
		return false
	}
	if courier.Rating < MinRating {
		return false
	}
	if courier.CurrentCount >= courier.MaxCapacity {
		return false
	}
	return DistanceKm(pickup, *courier.Location) <= MaxOfferDistanceKm
}

// DistanceKm is the great-circle (Haversine) distance between two points.
func DistanceKm(a, b entities.Location) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Zero distance scores 100, anything at 10 km or beyond scores 0.
func distanceScore(distanceKm float64) float64 {
	return math.Max(0, 100-(distanceKm/10)*100)
}

func loadScore(currentCount int64) float64 {
	switch {
	case currentCount == 0:
		return 100
	case currentCount == 1:
		return 70
	default:
		return 30
	}
}

func ratingScore(rating float64) float64 {
	score := ((rating - 3.0) / 2.0) * 100
	return math.Min(100, math.Max(0, score))
}

func experienceScore(lifetimeDeliveries int64) float64 {
	return math.Min(100, 20+(float64(lifetimeDeliveries)/100)*80)
}
