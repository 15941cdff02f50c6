//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=presence_test
package presence

import (
	"context"

	"dispatch/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, courierModify entities.CourierModify) (int64, error)
	Update(ctx context.Context, courierModify entities.CourierModify) (*entities.CourierPresence, error)
	GetByID(ctx context.Context, id int64) (*entities.CourierPresence, error)
	ListOnline(ctx context.Context) ([]entities.CourierPresence, error)

	IncrementLoad(ctx context.Context, id int64) error
	DecrementLoad(ctx context.Context, id int64) error
	MarkDelivered(ctx context.Context, id int64) error
}
