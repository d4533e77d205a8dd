package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"delivery-routing/internal/service/orders"
	testlog "delivery-routing/internal/testutil"
)

type fakeSession struct {
	ctx context.Context

	mu     sync.Mutex
	marked int
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(*sarama.ConsumerMessage, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked++
}

func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "" }
func (s *fakeSession) GenerationID() int32                      { return 0 }

func (s *fakeSession) MarkedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked
}

type fakeClaim struct {
	ch chan *sarama.ConsumerMessage
}

func (c fakeClaim) Topic() string              { return "t" }
func (c fakeClaim) Partition() int32           { return 0 }
func (c fakeClaim) InitialOffset() int64       { return 0 }
func (c fakeClaim) HighWaterMarkOffset() int64 { return 0 }
func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage {
	return c.ch
}

func claimWith(values ...[]byte) fakeClaim {
	ch := make(chan *sarama.ConsumerMessage, len(values))
	for _, v := range values {
		ch <- &sarama.ConsumerMessage{Value: v}
	}
	close(ch)
	return fakeClaim{ch: ch}
}

func TestConsumeClaim_BadJSON_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, orders.Event) error {
			t.Fatal("handler must not be called")
			return nil
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, claimWith([]byte("not-json")))
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.True(t, hasMsg(rec.Entries(), "kafka bad json"))
}

func TestConsumeClaim_MalformedEvent_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, orders.Event) error {
			calls++
			return nil
		},
	}
	h := &groupHandler{c: c}

	noOrder, _ := json.Marshal(EventDTO{OrderID: "   ", DeliveryID: 7, Status: "DELIVERED"})
	noDelivery, _ := json.Marshal(EventDTO{OrderID: "o1", Status: "DELIVERED"})

	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, claimWith(noOrder, noDelivery))
	require.NoError(t, err)
	require.Equal(t, 2, sess.MarkedCount())
	require.Equal(t, 0, calls)
	require.True(t, hasMsg(rec.Entries(), "kafka malformed order event"))
}

func TestConsumeClaim_HandlerError_StopsForRetry(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	sentinel := errors.New("boom")
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, orders.Event) error {
			return sentinel
		},
	}
	h := &groupHandler{c: c}

	b, _ := json.Marshal(EventDTO{OrderID: "o1", DeliveryID: 7, Status: "DELIVERED", CreatedAt: time.Now().UTC()})

	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, claimWith(b))
	require.ErrorIs(t, err, sentinel)

	// unmarked so the group redelivers it
	require.Equal(t, 0, sess.MarkedCount())
	require.True(t, hasMsg(rec.Entries(), "kafka handle failed, retry"))
}

func TestConsumeClaim_Success_Marks(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(_ context.Context, ev orders.Event) error {
			calls++
			require.Equal(t, "o1", ev.OrderID)
			require.Equal(t, int64(7), ev.DeliveryID)
			return nil
		},
	}
	h := &groupHandler{c: c}

	b, _ := json.Marshal(EventDTO{OrderID: "o1", DeliveryID: 7, Status: "DELIVERED"})

	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, claimWith(b))
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, 1, sess.MarkedCount())
}

func TestToDomain_TrimsAndCopiesFields(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	got := ToDomain(EventDTO{
		OrderID:    "  order-1  ",
		DeliveryID: 7,
		Status:     "  DELIVERED  ",
		CreatedAt:  ts,
	})

	require.Equal(t, orders.Event{
		OrderID:    "order-1",
		DeliveryID: 7,
		Status:     "DELIVERED",
		CreatedAt:  ts,
	}, got)
}

func hasMsg(entries []testlog.Entry, msg string) bool {
	for _, e := range entries {
		if e.Msg == msg {
			return true
		}
	}
	return false
}
