package offer_sweeper

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

type Service interface {
	SweepExpiredOffers(ctx context.Context) (int64, error)
}

type OfferSweeper struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewOfferSweeper(log logger.Logger, service Service, interval time.Duration) *OfferSweeper {
	return &OfferSweeper{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (s *OfferSweeper) TTL() time.Duration {
	return s.interval
}

func (s *OfferSweeper) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	expired, err := s.service.SweepExpiredOffers(ctxWithTimeout)

	if expired > 0 {
		s.log.With(
			logger.NewField("expired_offers", expired),
		).Info("offer sweep")
	}

	return err
}

func (s *OfferSweeper) Info() string {
	return "offer sweep"
}
