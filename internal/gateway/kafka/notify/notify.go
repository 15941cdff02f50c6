package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"dispatch/internal/entities"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const (
	TopicOfferIssued   = "dispatch.offer.issued"
	TopicOrderAssigned = "dispatch.order.assigned"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 1 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type offerIssuedEvent struct {
	OfferID    int64     `json:"offer_id"`
	OrderID    string    `json:"order_id"`
	CourierID  int64     `json:"courier_id"`
	Rank       int64     `json:"rank"`
	Score      float64   `json:"score"`
	DistanceKm float64   `json:"distance_km"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type orderAssignedEvent struct {
	OrderID   string `json:"order_id"`
	CourierID int64  `json:"courier_id"`
}

type NotifyGateway struct {
	producer producer
	retrier  retrier
}

func New(producer producer) *NotifyGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     nil,
	}

	return &NotifyGateway{
		producer: producer,
		retrier:  backoff_adapter.New(retryConfig),
	}
}

func (n *NotifyGateway) NotifyOffer(ctx context.Context, offer entities.Offer) error {
	event := offerIssuedEvent{
		OfferID:    offer.ID,
		OrderID:    offer.OrderID,
		CourierID:  offer.CourierID,
		Rank:       offer.Rank,
		Score:      offer.Score,
		DistanceKm: offer.DistanceKm,
		ExpiresAt:  offer.ExpiresAt,
	}

	err := n.publish(ctx, TopicOfferIssued, offer.OrderID, event)
	if err != nil {
		return fmt.Errorf("gateway notify, offer issued: %s: %w", offer.OrderID, err)
	}

	return nil
}

func (n *NotifyGateway) NotifyAssignment(ctx context.Context, orderID string, courierID int64) error {
	event := orderAssignedEvent{
		OrderID:   orderID,
		CourierID: courierID,
	}

	err := n.publish(ctx, TopicOrderAssigned, orderID, event)
	if err != nil {
		return fmt.Errorf("gateway notify, order assigned: %s: %w", orderID, err)
	}

	return nil
}

// publish keys messages by order id so every event for one order lands
// on the same partition and stays ordered.
func (n *NotifyGateway) publish(ctx context.Context, topic, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	}

	var attempt uint64
	start := time.Now()

	err = n.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		_, _, sendErr := n.producer.SendMessage(msg)
		return sendErr
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	NotifyPublishDuration.WithLabelValues(topic, outcome).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		NotifyRetriesTotal.WithLabelValues(topic, outcome).Inc()
	}

	return err
}
