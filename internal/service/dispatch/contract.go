//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_test
package dispatch

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type RequestRepository interface {
	Create(ctx context.Context, orderID string, pickup entities.Location) (*entities.DispatchRequest, error)
	GetByOrderID(ctx context.Context, orderID string) (*entities.DispatchRequest, error)

	MarkOffering(ctx context.Context, orderID string, round int64) error
	MarkAssigned(ctx context.Context, orderID string, courierID int64) error
	MarkExhausted(ctx context.Context, orderID string) error
}

type OfferRepository interface {
	Issue(ctx context.Context, offer entities.Offer) (*entities.Offer, error)
	GetByID(ctx context.Context, id int64) (*entities.Offer, error)
	GetPendingByOrderID(ctx context.Context, orderID string) (*entities.Offer, error)

	Respond(ctx context.Context, offerID, courierID int64, state entities.OfferState) error
	ExpireStale(ctx context.Context) ([]entities.ExpiredOffer, error)
	SupersedePending(ctx context.Context, orderID string) error

	ListOfferedCourierIDs(ctx context.Context, orderID string) ([]int64, error)
}

type PresenceService interface {
	ListEligible(ctx context.Context, pickup entities.Location, exclude []int64) ([]entities.ScoredCourier, error)
	IncrementLoad(ctx context.Context, id int64) error
	ReleaseCourier(ctx context.Context, id int64, delivered bool) error
}

type Notifier interface {
	NotifyOffer(ctx context.Context, offer entities.Offer) error
	NotifyAssignment(ctx context.Context, orderID string, courierID int64) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}
