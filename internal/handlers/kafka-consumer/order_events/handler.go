package order_events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"

	"dispatch/internal/entities"
	dispatchservice "dispatch/internal/service/dispatch"
	"dispatch/pkg/logger"
)

const (
	eventReadyForDispatch = "ready_for_dispatch"
	eventCancelled        = "cancelled"
	eventCompleted        = "completed"
)

type orderEvent struct {
	OrderID string  `json:"order_id"`
	Event   string  `json:"event"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type Handler struct {
	dispatchService          Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, dispatchService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		dispatchService:          dispatchService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("order.events: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("order.events: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing handles one Kafka message. It returns true when
// ConsumeClaim should stop (context cancelled, message stays unmarked
// and will be redelivered), false to keep consuming.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event orderEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("order.events handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("event", event.Event),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("order.events processing")

	switch event.Event {
	case eventReadyForDispatch:
		_, err = h.dispatchService.Dispatch(ctx, event.OrderID, entities.Location{
			Lat: event.Lat,
			Lng: event.Lng,
		})
	case eventCancelled:
		err = h.dispatchService.CancelDispatch(ctx, event.OrderID)
	case eventCompleted:
		err = h.dispatchService.CompleteDelivery(ctx, event.OrderID)
	default:
		msgLog.Warn("order.events handler unknown event type")
		sess.MarkMessage(message, "")
		return false
	}

	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.events handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, dispatchservice.ErrDuplicateOrder):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.events handler duplicate dispatch request")

		case errors.Is(err, dispatchservice.ErrDispatchNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.events handler unknown order")

		case errors.Is(err, dispatchservice.ErrDispatchTerminal),
			errors.Is(err, dispatchservice.ErrNotAssigned):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.events handler dispatch already resolved")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.events handler failed to process order")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("order.events: processed")

	sess.MarkMessage(message, "")
	return false
}
