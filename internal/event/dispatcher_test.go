package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func (p *recordingPublisher) Publish(_ context.Context, events ...Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) Close() error {
	p.closed = true
	return nil
}

func TestDispatcherDeliversBeforeClose(t *testing.T) {
	pub := &recordingPublisher{}
	d, err := NewDispatcher(pub, 2)
	require.NoError(t, err)

	now := time.Now()
	for i := int64(1); i <= 10; i++ {
		d.Dispatch(New(TypeFunded, model.KindDonation, i, 100, now))
	}
	d.Dispatch()

	require.NoError(t, d.Close())
	assert.Len(t, pub.events, 10)
	assert.True(t, pub.closed)
}

func TestNewEvent(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := New(TypeProjectCreated, model.KindCharityProject, 7, 500, at)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "charity_project", e.Key())
	assert.Equal(t, at, e.OccurredAt)
	assert.Equal(t, string(TypeReportExported), New(TypeReportExported, "", 0, 0, at).Key())
}

func (p *recordingPublisher) ids() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int64, len(p.events))
	for i, e := range p.events {
		out[i] = e.EntityId
	}
	return out
}

// gatedPublisher 阻塞实体 1 的投递直到 gate 关闭
type gatedPublisher struct {
	recordingPublisher
	started chan struct{}
	gate    chan struct{}
}

func (p *gatedPublisher) Publish(ctx context.Context, events ...Event) error {
	if events[0].EntityId == 1 {
		close(p.started)
		<-p.gate
	}
	return p.recordingPublisher.Publish(ctx, events...)
}

func TestDispatcherPublishesInlineWhenPoolBusy(t *testing.T) {
	pub := &gatedPublisher{started: make(chan struct{}), gate: make(chan struct{})}
	d, err := NewDispatcher(pub, 1)
	require.NoError(t, err)

	now := time.Now()
	d.Dispatch(New(TypeFunded, model.KindDonation, 1, 100, now))
	<-pub.started

	d.Dispatch(New(TypeFunded, model.KindDonation, 2, 100, now))
	assert.Equal(t, []int64{2}, pub.ids())

	close(pub.gate)
	require.NoError(t, d.Close())
	assert.ElementsMatch(t, []int64{1, 2}, pub.ids())
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	pub := &recordingPublisher{}
	d, err := NewDispatcher(pub, 2)
	require.NoError(t, err)
	require.NoError(t, d.Close())

	d.Dispatch(New(TypeFunded, model.KindDonation, 1, 100, time.Now()))

	assert.Empty(t, pub.ids())
	assert.NoError(t, d.Close())
}
