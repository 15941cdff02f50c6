package presence

import (
	"context"
	"fmt"
	"sort"

	"dispatch/internal/entities"
	"dispatch/internal/scoring"
)

type Presence struct {
	repository Repository
}

func New(repository Repository) *Presence {
	return &Presence{
		repository: repository,
	}
}

func (s *Presence) CreateCourier(ctx context.Context, courierModify entities.CourierModify) (int64, error) {
	if courierModify.Name == nil || courierModify.Phone == nil {
		return 0, ErrMissingRequiredFields
	}

	if !isValidName(*courierModify.Name) {
		return 0, ErrInvalidName
	}
	if !isValidPhone(*courierModify.Phone) {
		return 0, ErrInvalidPhone
	}

	id, err := s.repository.Create(ctx, courierModify)
	if err != nil {
		return 0, fmt.Errorf("create courier: %w", err)
	}

	return id, nil
}

func (s *Presence) GetCourier(ctx context.Context, id int64) (*entities.CourierPresence, error) {
	courier, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get courier: %w", err)
	}

	return courier, nil
}

func (s *Presence) SetOnline(ctx context.Context, id int64, online bool) (*entities.CourierPresence, error) {
	courier, err := s.repository.Update(ctx, entities.CourierModify{
		ID:     &id,
		Online: &online,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set courier online state: %w", err)
	}

	return courier, nil
}

func (s *Presence) UpdateLocation(ctx context.Context, id int64, location entities.Location) (*entities.CourierPresence, error) {
	if !isValidLocation(location) {
		return nil, ErrInvalidCoordinates
	}

	courier, err := s.repository.Update(ctx, entities.CourierModify{
		ID:       &id,
		Location: &location,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update courier location: %w", err)
	}

	return courier, nil
}

// ListEligible returns offer candidates for a pickup, best fit first.
// Couriers in exclude have already seen this order and are skipped.
// Ties break on shorter distance, then on lower courier id so the
// ordering stays deterministic across rounds.
func (s *Presence) ListEligible(ctx context.Context, pickup entities.Location, exclude []int64) ([]entities.ScoredCourier, error) {
	if !isValidLocation(pickup) {
		return nil, ErrInvalidCoordinates
	}

	couriers, err := s.repository.ListOnline(ctx)
	if err != nil {
		return nil, fmt.Errorf("list online couriers: %w", err)
	}

	excluded := make(map[int64]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	scored := make([]entities.ScoredCourier, 0, len(couriers))
	for _, courier := range couriers {
		if _, ok := excluded[courier.ID]; ok {
			continue
		}
		if !scoring.Eligible(pickup, courier) {
			continue
		}

		composite, breakdown := scoring.Score(pickup, courier)
		scored = append(scored, entities.ScoredCourier{
			Courier:    courier,
			Score:      composite,
			DistanceKm: breakdown.DistanceKm,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].DistanceKm != scored[j].DistanceKm {
			return scored[i].DistanceKm < scored[j].DistanceKm
		}
		return scored[i].Courier.ID < scored[j].Courier.ID
	})

	return scored, nil
}

func (s *Presence) IncrementLoad(ctx context.Context, id int64) error {
	err := s.repository.IncrementLoad(ctx, id)
	if err != nil {
		return fmt.Errorf("increment courier load: %w", err)
	}

	return nil
}

// ReleaseCourier frees one capacity slot. A completed delivery also
// counts toward the courier's lifetime total; a cancelled one does not.
func (s *Presence) ReleaseCourier(ctx context.Context, id int64, delivered bool) error {
	if delivered {
		if err := s.repository.MarkDelivered(ctx, id); err != nil {
			return fmt.Errorf("mark delivered: %w", err)
		}
		return nil
	}

	if err := s.repository.DecrementLoad(ctx, id); err != nil {
		return fmt.Errorf("decrement courier load: %w", err)
	}

	return nil
}
