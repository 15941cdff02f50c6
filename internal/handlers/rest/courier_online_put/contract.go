//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_online_put_test
package courier_online_put

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	SetOnline(ctx context.Context, id int64, online bool) (*entities.CourierPresence, error)
}
