// Package events streams dashboard notifications to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
)

const queueSize = 64

// Envelope is the JSON value written for every notification.
type Envelope struct {
	Service      string                      `json:"service"`
	Notification dashboard.Notification      `json:"notification"`
	Level        dashboard.NotificationLevel `json:"level"`
	PublishedAt  time.Time                   `json:"publishedAt"`
}

// KafkaNotifier publishes notifications from a background worker so a slow
// broker never stalls the controller. Messages are dropped when the queue is full.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger

	mu        sync.RWMutex
	closed    bool
	queue     chan dashboard.Notification
	done      chan struct{}
	closeOnce sync.Once
}

// NewKafkaNotifier dials brokers and starts the publishing worker.
func NewKafkaNotifier(brokers []string, topic string, logger *slog.Logger) (*KafkaNotifier, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = "trafficai"
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Producer.Return.Successes = true
	cfg.Net.DialTimeout = 5 * time.Second
	cfg.Net.ReadTimeout = 5 * time.Second
	cfg.Net.WriteTimeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	n := newKafkaNotifier(producer, topic, logger)
	n.logger.Info("kafka notifier ready", "brokers", brokers, "topic", topic)
	return n, nil
}

func newKafkaNotifier(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	n := &KafkaNotifier{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "events.kafka"),
		queue:    make(chan dashboard.Notification, queueSize),
		done:     make(chan struct{}),
	}
	go n.run()
	return n
}

// Notify queues n for publishing. Notifications after Close are dropped.
func (k *KafkaNotifier) Notify(_ context.Context, n dashboard.Notification) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.closed {
		k.logger.Debug("notifier closed, dropping", "notification_id", n.ID)
		return
	}
	select {
	case k.queue <- n:
	default:
		k.logger.Warn("notification queue full, dropping", "notification_id", n.ID)
	}
}

func (k *KafkaNotifier) run() {
	defer close(k.done)
	for n := range k.queue {
		if err := k.publish(n); err != nil {
			k.logger.Warn("publish notification failed", "notification_id", n.ID, "error", err)
		}
	}
}

func (k *KafkaNotifier) publish(n dashboard.Notification) error {
	payload, err := json.Marshal(Envelope{
		Service:      "trafficai",
		Notification: n,
		Level:        n.Level,
		PublishedAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	_, _, err = k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(n.ID),
		Value: sarama.ByteEncoder(payload),
	})
	return err
}

// Close drains the queue and closes the producer.
func (k *KafkaNotifier) Close() error {
	var err error
	k.closeOnce.Do(func() {
		k.mu.Lock()
		k.closed = true
		close(k.queue)
		k.mu.Unlock()
		<-k.done
		err = k.producer.Close()
	})
	return err
}

var _ dashboard.Notifier = (*KafkaNotifier)(nil)
