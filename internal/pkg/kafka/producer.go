package kafka

import (
	"fmt"

	"github.com/IBM/sarama"
)

// NewSyncProducer builds a producer that waits for the full ISR ack on
// every message. Notifications drive courier-facing offers, so losing
// one silently is worse than a slower publish.
func NewSyncProducer(versionStr string, brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}

	return producer, nil
}
