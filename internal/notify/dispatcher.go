// Package notify delivers admin notifications off the request path. Emit
// publishes onto an in-process watermill channel; a single consumer writes
// each message to the admin_notifications table.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	json "github.com/goccy/go-json"

	"flyerhub-backend/internal/logging"
	"flyerhub-backend/internal/metrics"
)

const topic = "admin.notifications"

// Sink persists a notification.
type Sink interface {
	InsertNotification(ctx context.Context, title, message, severity string) error
}

// Event is the published payload.
type Event struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	RequestID string    `json:"request_id,omitempty"`
	EmittedAt time.Time `json:"emitted_at"`
}

type Dispatcher struct {
	pubsub       *gochannel.GoChannel
	sink         Sink
	writeTimeout time.Duration

	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher subscribes the sink and starts the consumer. buffer sizes
// the subscriber's output channel. Publishing hands each message to its own
// delivery goroutine and returns, so Emit never waits on the sink; the
// consumer still sees one message at a time, each acked before the next.
func NewDispatcher(sink Sink, buffer int64) (*Dispatcher, error) {
	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: buffer}, newLoggerAdapter())

	ctx, cancel := context.WithCancel(context.Background())
	messages, err := pubsub.Subscribe(ctx, topic)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	d := &Dispatcher{
		pubsub:       pubsub,
		sink:         sink,
		writeTimeout: 5 * time.Second,
		cancel:       cancel,
		done:         make(chan struct{}),
	}
	go d.consume(messages)
	return d, nil
}

// Emit queues a notification. Failures are logged and counted, never returned.
func (d *Dispatcher) Emit(ctx context.Context, title, msg, severity string) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.Notifications.WithLabelValues(severity, "dropped").Inc()
		return
	}

	payload, err := json.Marshal(Event{
		Title:     title,
		Message:   msg,
		Severity:  severity,
		RequestID: logging.RequestIDFromContext(ctx),
		EmittedAt: time.Now().UTC(),
	})
	if err != nil {
		metrics.Notifications.WithLabelValues(severity, "error").Inc()
		logging.Ctx(ctx).Error().Err(err).Str("title", title).Msg("failed to encode notification")
		return
	}

	if err := d.pubsub.Publish(topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		metrics.Notifications.WithLabelValues(severity, "error").Inc()
		logging.Ctx(ctx).Error().Err(err).Str("title", title).Msg("failed to publish notification")
	}
}

func (d *Dispatcher) consume(messages <-chan *message.Message) {
	defer close(d.done)
	for msg := range messages {
		d.handle(msg)
		msg.Ack()
	}
}

func (d *Dispatcher) handle(msg *message.Message) {
	var ev Event
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		metrics.Notifications.WithLabelValues("unknown", "error").Inc()
		logging.Error().Err(err).Str("message_uuid", msg.UUID).Msg("dropping malformed notification")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.writeTimeout)
	defer cancel()

	if err := d.sink.InsertNotification(ctx, ev.Title, ev.Message, ev.Severity); err != nil {
		metrics.Notifications.WithLabelValues(ev.Severity, "error").Inc()
		logging.Error().
			Err(err).
			Str("title", ev.Title).
			Str("request_id", ev.RequestID).
			Msg("failed to store notification")
		return
	}
	metrics.Notifications.WithLabelValues(ev.Severity, "stored").Inc()
}

// Close stops accepting notifications and waits for the consumer to exit.
// Messages still in flight when Close is called may be dropped.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	err := d.pubsub.Close()
	d.cancel()
	<-d.done
	return err
}
