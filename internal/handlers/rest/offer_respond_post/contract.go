//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=offer_respond_post_test
package offer_respond_post

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
	RespondToOffer(ctx context.Context, offerID, courierID int64, decision entities.OfferDecision) error
}
