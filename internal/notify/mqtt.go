package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/metrics"
)

const (
	DefaultTopic    = "fleet/maintenance/toasts"
	publishQoS      = 1
	publishTimeout  = 5 * time.Second
	connectTimeout  = 10 * time.Second
	defaultClientID = "fleet-maintenance"
	queueSize       = 64
)

var ErrPublishTimeout = errors.New("mqtt publish timed out")

// message is the payload published for each toast.
type message struct {
	maintenance.Toast
	SentAt time.Time `json:"sent_at"`
}

// MQTTNotifier publishes toasts as JSON to a broker topic. Toasts are queued
// and sent by a background worker, so a slow broker never holds up the
// operation that raised them. Failures and overflow are logged and dropped.
type MQTTNotifier struct {
	client  mqtt.Client
	topic   string
	timeout time.Duration
	clock   func() time.Time

	queue     chan maintenance.Toast
	done      chan struct{}
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewMQTTNotifier wraps an already configured client and starts its publish
// worker. Call Close to stop it.
func NewMQTTNotifier(client mqtt.Client, topic string) *MQTTNotifier {
	if topic == "" {
		topic = DefaultTopic
	}
	n := &MQTTNotifier{
		client:  client,
		topic:   topic,
		timeout: publishTimeout,
		clock:   time.Now,
		queue:   make(chan maintenance.Toast, queueSize),
		done:    make(chan struct{}),
	}
	go n.worker()
	return n
}

// DialMQTT connects to broker and returns a notifier publishing to topic.
func DialMQTT(broker, clientID, topic string) (*MQTTNotifier, error) {
	if clientID == "" {
		clientID = defaultClientID
	}
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).WithField("broker", broker).Warn("MQTT connection lost")
		})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", broker, err)
	}
	log.WithFields(log.Fields{"broker": broker, "topic": topic}).Info("Connected to MQTT broker")
	return NewMQTTNotifier(client, topic), nil
}

// Notify queues t for publishing and returns immediately.
func (n *MQTTNotifier) Notify(_ context.Context, t maintenance.Toast) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return
	}
	select {
	case n.queue <- t:
	default:
		log.WithFields(log.Fields{"topic": n.topic, "title": t.Title}).Warn("Toast queue full, dropping toast")
	}
}

func (n *MQTTNotifier) worker() {
	defer close(n.done)
	for t := range n.queue {
		if err := n.Publish(context.Background(), t); err != nil {
			log.WithError(err).WithFields(log.Fields{"topic": n.topic, "title": t.Title}).Warn("Failed to publish toast")
			continue
		}
		metrics.RecordNotification("mqtt", t.Variant)
	}
}

// Publish sends one toast and waits for the broker to acknowledge it.
func (n *MQTTNotifier) Publish(ctx context.Context, t maintenance.Toast) error {
	payload, err := json.Marshal(message{Toast: t, SentAt: n.clock().UTC()})
	if err != nil {
		return fmt.Errorf("encode toast: %w", err)
	}

	token := n.client.Publish(n.topic, publishQoS, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(n.timeout):
		return ErrPublishTimeout
	}
	return token.Error()
}

// Close stops accepting toasts, waits for the queue to drain and disconnects
// from the broker. It is safe to call more than once.
func (n *MQTTNotifier) Close() {
	n.closeOnce.Do(func() {
		n.mu.Lock()
		n.closed = true
		close(n.queue)
		n.mu.Unlock()

		<-n.done
		n.client.Disconnect(250)
	})
}
