package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flyerhub-backend/internal/logging"
	"flyerhub-backend/internal/models"
)

type stored struct {
	title, message, severity string
}

type fakeSink struct {
	mu   sync.Mutex
	rows []stored
	err  error
}

func (s *fakeSink) InsertNotification(_ context.Context, title, message, severity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, stored{title, message, severity})
	return nil
}

func (s *fakeSink) snapshot() []stored {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]stored(nil), s.rows...)
}

func TestDispatcher_DeliversToSink(t *testing.T) {
	sink := &fakeSink{}
	d, err := NewDispatcher(sink, 16)
	require.NoError(t, err)
	defer d.Close()

	ctx := logging.ContextWithRequestID(context.Background(), "req-1")
	d.Emit(ctx, "New Order Received", "Order #1 created by 42", models.SeveritySuccess)
	d.Emit(ctx, "Order Status Updated", "Order #1 status changed from pending to completed", models.SeverityWarning)

	require.Eventually(t, func() bool { return len(sink.snapshot()) == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []stored{
		{"New Order Received", "Order #1 created by 42", "success"},
		{"Order Status Updated", "Order #1 status changed from pending to completed", "warning"},
	}, sink.snapshot())
}

func TestDispatcher_SinkFailureDoesNotStopConsumer(t *testing.T) {
	sink := &fakeSink{err: errors.New("db down")}
	d, err := NewDispatcher(sink, 16)
	require.NoError(t, err)
	defer d.Close()

	d.Emit(context.Background(), "a", "b", models.SeverityInfo)
	time.Sleep(50 * time.Millisecond)

	sink.mu.Lock()
	sink.err = nil
	sink.mu.Unlock()

	d.Emit(context.Background(), "c", "d", models.SeverityInfo)
	require.Eventually(t, func() bool { return len(sink.snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "c", sink.snapshot()[0].title)
}

func TestDispatcher_EmitAfterCloseIsDropped(t *testing.T) {
	sink := &fakeSink{}
	d, err := NewDispatcher(sink, 1)
	require.NoError(t, err)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	assert.NotPanics(t, func() {
		d.Emit(context.Background(), "late", "x", models.SeverityInfo)
	})
	assert.Empty(t, sink.snapshot())
}

// gatedSink holds every insert until the gate is closed.
type gatedSink struct {
	fakeSink
	gate chan struct{}
}

func (s *gatedSink) InsertNotification(ctx context.Context, title, message, severity string) error {
	<-s.gate
	return s.fakeSink.InsertNotification(ctx, title, message, severity)
}

func TestDispatcher_EmitDoesNotWaitForSlowSink(t *testing.T) {
	sink := &gatedSink{gate: make(chan struct{})}
	d, err := NewDispatcher(sink, 1)
	require.NoError(t, err)
	defer d.Close()

	emitted := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			d.Emit(context.Background(), "New Order Received", "Order", models.SeveritySuccess)
		}
		close(emitted)
	}()

	select {
	case <-emitted:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked while the sink was stalled")
	}
	assert.Empty(t, sink.snapshot())

	close(sink.gate)
	require.Eventually(t, func() bool { return len(sink.snapshot()) == 20 }, 5*time.Second, 10*time.Millisecond)
}
