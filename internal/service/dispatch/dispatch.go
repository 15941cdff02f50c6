package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/presence"
	"dispatch/pkg/logger"
)

type Config struct {
	OfferTTL              time.Duration
	MaxRounds             int64
	RequireExplicitAccept bool
}

// Dispatch walks an order through the offer cascade: score the eligible
// couriers, offer to the best one, and move down the ranking on every
// rejection or expiry until someone accepts or the rounds run out.
type Dispatch struct {
	requests  RequestRepository
	offers    OfferRepository
	presence  PresenceService
	notifier  Notifier
	txManager TxManager
	logger    serviceLogger
	cfg       Config
}

func New(
	requests RequestRepository,
	offers OfferRepository,
	presenceService PresenceService,
	notifier Notifier,
	txManager TxManager,
	log serviceLogger,
	cfg Config,
) *Dispatch {
	return &Dispatch{
		requests:  requests,
		offers:    offers,
		presence:  presenceService,
		notifier:  notifier,
		txManager: txManager,
		logger:    log,
		cfg:       cfg,
	}
}

func (s *Dispatch) Dispatch(ctx context.Context, orderID string, pickup entities.Location) (*entities.DispatchRequest, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !isValidPickup(pickup) {
		return nil, ErrInvalidPickup
	}

	_, err := s.requests.Create(ctx, orderID, pickup)
	if err != nil {
		return nil, fmt.Errorf("create dispatch request: %w", err)
	}

	if s.cfg.RequireExplicitAccept {
		err = s.runRound(ctx, orderID)
	} else {
		err = s.assignDirect(ctx, orderID, pickup)
	}
	if err != nil {
		return nil, err
	}

	request, err := s.requests.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("reload dispatch request: %w", err)
	}
	return request, nil
}

// RespondToOffer applies a courier's answer. The pending-state guard in
// the offer repository makes the call safe against the expiry sweeper:
// whoever transitions the offer first wins, the loser gets ErrOfferStale.
func (s *Dispatch) RespondToOffer(ctx context.Context, offerID, courierID int64, decision entities.OfferDecision) error {
	if !decision.Valid() {
		return ErrInvalidDecision
	}

	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return err
	}

	if err := s.offers.Respond(ctx, offerID, courierID, decision.State()); err != nil {
		return err
	}
	OffersTotal.WithLabelValues(decision.State().String()).Inc()

	if decision == entities.DecisionReject {
		s.logger.Info("offer rejected",
			logger.NewField("offer_id", offerID),
			logger.NewField("order_id", offer.OrderID),
			logger.NewField("courier_id", courierID),
		)
		return s.runRound(ctx, offer.OrderID)
	}

	return s.completeAccept(ctx, offer)
}

// SweepExpiredOffers expires every overdue pending offer and advances
// the affected dispatches to their next round.
func (s *Dispatch) SweepExpiredOffers(ctx context.Context) (int64, error) {
	expired, err := s.offers.ExpireStale(ctx)
	if err != nil {
		return 0, fmt.Errorf("expire stale offers: %w", err)
	}

	for _, e := range expired {
		OffersTotal.WithLabelValues(entities.OfferExpired.String()).Inc()
		s.logger.Info("offer expired",
			logger.NewField("offer_id", e.OfferID),
			logger.NewField("order_id", e.OrderID),
			logger.NewField("courier_id", e.CourierID),
		)

		if err := s.runRound(ctx, e.OrderID); err != nil {
			s.logger.Error("failed to advance dispatch after expiry",
				logger.NewField("order_id", e.OrderID),
				logger.NewField("error", err.Error()),
			)
		}
	}

	return int64(len(expired)), nil
}

func (s *Dispatch) CancelDispatch(ctx context.Context, orderID string) error {
	if !isValidOrderID(orderID) {
		return ErrInvalidOrderID
	}

	request, err := s.requests.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	switch request.State {
	case entities.DispatchExhausted:
		// already closed, cancelling again is a no-op
		return nil
	case entities.DispatchAssigned:
		// the order is cancelled after assignment: free the slot,
		// the delivery never happened so no lifetime credit
		return s.presence.ReleaseCourier(ctx, *request.AssignedCourierID, false)
	default:
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.requests.MarkExhausted(ctx, orderID); err != nil {
			return err
		}
		return s.offers.SupersedePending(ctx, orderID)
	})
	if err != nil {
		if errors.Is(err, ErrDispatchTerminal) {
			return nil
		}
		return fmt.Errorf("cancel dispatch: %w", err)
	}

	DispatchResolvedTotal.WithLabelValues("cancelled").Inc()
	s.logger.Info("dispatch cancelled", logger.NewField("order_id", orderID))
	return nil
}

func (s *Dispatch) CompleteDelivery(ctx context.Context, orderID string) error {
	if !isValidOrderID(orderID) {
		return ErrInvalidOrderID
	}

	request, err := s.requests.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	if request.State != entities.DispatchAssigned || request.AssignedCourierID == nil {
		return ErrNotAssigned
	}

	return s.presence.ReleaseCourier(ctx, *request.AssignedCourierID, true)
}

// GetDispatch returns the request and, if the order is mid-cascade, the
// offer currently waiting on a courier.
func (s *Dispatch) GetDispatch(ctx context.Context, orderID string) (*entities.DispatchRequest, *entities.Offer, error) {
	if !isValidOrderID(orderID) {
		return nil, nil, ErrInvalidOrderID
	}

	request, err := s.requests.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	pending, err := s.offers.GetPendingByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOfferNotFound) {
			return request, nil, nil
		}
		return nil, nil, err
	}

	return request, pending, nil
}

// runRound issues the next offer for an order, or exhausts the dispatch
// when the cascade has nowhere left to go. Safe to call concurrently:
// the offering guard and the single-pending-offer index make the racing
// caller a no-op.
func (s *Dispatch) runRound(ctx context.Context, orderID string) error {
	request, err := s.requests.GetByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load dispatch request: %w", err)
	}
	if request.State.Terminal() {
		return nil
	}

	nextRound := request.Round + 1
	if nextRound > s.cfg.MaxRounds {
		return s.exhaust(ctx, orderID, "round limit reached")
	}

	offered, err := s.offers.ListOfferedCourierIDs(ctx, orderID)
	if err != nil {
		return fmt.Errorf("list offered couriers: %w", err)
	}

	candidates, err := s.presence.ListEligible(ctx, request.Pickup, offered)
	if err != nil {
		return fmt.Errorf("list eligible couriers: %w", err)
	}
	if len(candidates) == 0 {
		return s.exhaust(ctx, orderID, "no eligible couriers left")
	}

	best := candidates[0]
	var issued *entities.Offer
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.requests.MarkOffering(ctx, orderID, nextRound); err != nil {
			return err
		}

		result, issueErr := s.offers.Issue(ctx, entities.Offer{
			OrderID:    orderID,
			CourierID:  best.Courier.ID,
			Rank:       int64(len(offered)),
			Score:      best.Score,
			DistanceKm: best.DistanceKm,
			ExpiresAt:  time.Now().UTC().Add(s.cfg.OfferTTL),
		})
		if issueErr != nil {
			return issueErr
		}

		issued = result
		return nil
	})
	if err != nil {
		// a concurrent responder or sweeper got there first
		if errors.Is(err, ErrDispatchTerminal) || errors.Is(err, ErrOfferConflict) {
			return nil
		}
		return fmt.Errorf("issue offer: %w", err)
	}

	OffersTotal.WithLabelValues(entities.OfferPending.String()).Inc()
	s.logger.Info("offer issued",
		logger.NewField("offer_id", issued.ID),
		logger.NewField("order_id", orderID),
		logger.NewField("courier_id", issued.CourierID),
		logger.NewField("round", nextRound),
		logger.NewField("score", issued.Score),
		logger.NewField("distance_km", issued.DistanceKm),
	)

	if err := s.notifier.NotifyOffer(ctx, *issued); err != nil {
		s.logger.Warn("offer notification failed",
			logger.NewField("offer_id", issued.ID),
			logger.NewField("error", err.Error()),
		)
	}

	return nil
}

func (s *Dispatch) completeAccept(ctx context.Context, offer *entities.Offer) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.presence.IncrementLoad(ctx, offer.CourierID); err != nil {
			return err
		}
		if err := s.requests.MarkAssigned(ctx, offer.OrderID, offer.CourierID); err != nil {
			return err
		}
		return s.offers.SupersedePending(ctx, offer.OrderID)
	})
	if err != nil {
		// the courier filled up between the offer and the accept; the
		// accept stays on the ledger so they are not offered this order
		// again, and the cascade moves on
		if errors.Is(err, presence.ErrCapacityExceeded) {
			s.logger.Warn("accept voided, courier is at capacity",
				logger.NewField("offer_id", offer.ID),
				logger.NewField("order_id", offer.OrderID),
				logger.NewField("courier_id", offer.CourierID),
			)
			if cascadeErr := s.runRound(ctx, offer.OrderID); cascadeErr != nil {
				s.logger.Error("failed to advance dispatch after voided accept",
					logger.NewField("order_id", offer.OrderID),
					logger.NewField("error", cascadeErr.Error()),
				)
			}
			return fmt.Errorf("complete accept: %w", err)
		}
		if errors.Is(err, ErrDispatchTerminal) {
			return ErrDispatchTerminal
		}
		return fmt.Errorf("complete accept: %w", err)
	}

	DispatchResolvedTotal.WithLabelValues(entities.DispatchAssigned.String()).Inc()
	DispatchRounds.Observe(float64(offer.Rank + 1))
	s.logger.Info("order assigned",
		logger.NewField("order_id", offer.OrderID),
		logger.NewField("courier_id", offer.CourierID),
		logger.NewField("rounds", offer.Rank+1),
	)

	if err := s.notifier.NotifyAssignment(ctx, offer.OrderID, offer.CourierID); err != nil {
		s.logger.Warn("assignment notification failed",
			logger.NewField("order_id", offer.OrderID),
			logger.NewField("error", err.Error()),
		)
	}

	return nil
}

// assignDirect skips the offer cascade and books the best available
// courier immediately. Used when explicit accepts are switched off.
func (s *Dispatch) assignDirect(ctx context.Context, orderID string, pickup entities.Location) error {
	candidates, err := s.presence.ListEligible(ctx, pickup, nil)
	if err != nil {
		return fmt.Errorf("list eligible couriers: %w", err)
	}

	for _, candidate := range candidates {
		courierID := candidate.Courier.ID
		err := s.txManager.Do(ctx, func(ctx context.Context) error {
			if err := s.presence.IncrementLoad(ctx, courierID); err != nil {
				return err
			}
			return s.requests.MarkAssigned(ctx, orderID, courierID)
		})
		if err != nil {
			if errors.Is(err, presence.ErrCapacityExceeded) {
				continue
			}
			return fmt.Errorf("direct assign: %w", err)
		}

		DispatchResolvedTotal.WithLabelValues(entities.DispatchAssigned.String()).Inc()
		s.logger.Info("order assigned directly",
			logger.NewField("order_id", orderID),
			logger.NewField("courier_id", courierID),
			logger.NewField("score", candidate.Score),
		)

		if err := s.notifier.NotifyAssignment(ctx, orderID, courierID); err != nil {
			s.logger.Warn("assignment notification failed",
				logger.NewField("order_id", orderID),
				logger.NewField("error", err.Error()),
			)
		}
		return nil
	}

	return s.exhaust(ctx, orderID, "no eligible couriers")
}

func (s *Dispatch) exhaust(ctx context.Context, orderID, reason string) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.requests.MarkExhausted(ctx, orderID); err != nil {
			return err
		}
		return s.offers.SupersedePending(ctx, orderID)
	})
	if err != nil {
		if errors.Is(err, ErrDispatchTerminal) {
			return nil
		}
		return fmt.Errorf("exhaust dispatch: %w", err)
	}

	DispatchResolvedTotal.WithLabelValues(entities.DispatchExhausted.String()).Inc()
	s.logger.Warn("dispatch exhausted",
		logger.NewField("order_id", orderID),
		logger.NewField("reason", reason),
	)
	return nil
}
