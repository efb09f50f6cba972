package logic

import (
	"sync"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/cache"
	"github.com/Frenky19/QRkot-spreadsheets/internal/event"
	"github.com/Frenky19/QRkot-spreadsheets/internal/lock"
	"github.com/Frenky19/QRkot-spreadsheets/internal/repository/repositorytest"
)

type recordingSink struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recordingSink) Dispatch(events ...event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
}

func (r *recordingSink) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// tickingClock 每次调用前进一分钟，保证创建顺序可区分
func tickingClock() func() time.Time {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

type fixture struct {
	store     *repositorytest.Store
	sink      *recordingSink
	cache     *cache.MemoryCache
	locker    *lock.LocalLock
	funder    *Funder
	projects  *ProjectLogic
	donations *DonationLogic
}

func newFixture() *fixture {
	store := repositorytest.NewStore()
	sink := &recordingSink{}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	locker := lock.NewLocalLock()
	funder := NewFunder(store, locker, sink, c, tickingClock())
	return &fixture{
		store:     store,
		sink:      sink,
		cache:     c,
		locker:    locker,
		funder:    funder,
		projects:  NewProjectLogic(store, funder),
		donations: NewDonationLogic(store, funder),
	}
}
