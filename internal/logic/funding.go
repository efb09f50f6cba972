package logic

import (
	"context"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/cache"
	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/event"
	"github.com/Frenky19/QRkot-spreadsheets/internal/invest"
	"github.com/Frenky19/QRkot-spreadsheets/internal/lock"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/Frenky19/QRkot-spreadsheets/internal/metrics"
	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"github.com/Frenky19/QRkot-spreadsheets/internal/repository"
)

const poolLockTTL = 30 * time.Second

// Funder 串行化资金池上的写操作：创建实体、分配资金、提交后的通知
type Funder struct {
	store     repository.Store
	locker    lock.Locker
	allocator *invest.Allocator
	events    EventSink
	cache     cache.Cache
	now       func() time.Time
}

// NewFunder 创建资金池协调器，now 为空时使用 time.Now
func NewFunder(store repository.Store, locker lock.Locker, events EventSink, c cache.Cache, now func() time.Time) *Funder {
	if now == nil {
		now = time.Now
	}
	return &Funder{
		store:     store,
		locker:    locker,
		allocator: invest.NewAllocator(now),
		events:    events,
		cache:     c,
		now:       now,
	}
}

type createFunc func(tx repository.Store, now time.Time) (model.Fundable, error)

type openFunc func(tx repository.Store) ([]model.Fundable, error)

// withPoolLock 在资金池锁内执行 fn
func (f *Funder) withPoolLock(ctx context.Context, fn func() error) error {
	release, err := lock.Obtain(ctx, f.locker, lock.PoolKey, poolLockTTL)
	if err != nil {
		logger.Warn("Funding pool lock not acquired: %v", err)
		return errno.ErrLockTimeout
	}
	defer release()

	return fn()
}

// fund 在同一事务内插入新实体、锁定对手方的未满记录并完成分配
func (f *Funder) fund(ctx context.Context, create createFunc, open openFunc) (model.Fundable, error) {
	var (
		target model.Fundable
		result invest.Result
	)

	err := f.withPoolLock(ctx, func() error {
		start := time.Now()
		err := f.store.Transaction(ctx, func(tx repository.Store) error {
			var err error
			target, err = create(tx, f.now().UTC())
			if err != nil {
				return err
			}

			sources, err := open(tx)
			if err != nil {
				return err
			}

			result = f.allocator.Allocate(target, sources)
			return tx.SaveFundables(ctx, result.Modified)
		})
		metrics.AllocationDuration.Observe(time.Since(start).Seconds())
		return err
	})
	if err != nil {
		return nil, err
	}

	f.afterCommit(ctx, target, result)
	return target, nil
}

func (f *Funder) afterCommit(ctx context.Context, target model.Fundable, result invest.Result) {
	inv := target.Funding()
	kind := string(target.Kind())
	metrics.FundablesCreated.WithLabelValues(kind).Inc()
	metrics.AmountPledged.WithLabelValues(kind).Add(float64(inv.FullAmount))
	metrics.AmountAllocated.Add(float64(result.Amount))

	createdType := event.TypeDonationCreated
	if target.Kind() == model.KindCharityProject {
		createdType = event.TypeProjectCreated
	}
	events := []event.Event{event.New(createdType, target.Kind(), target.GetId(), inv.FullAmount, inv.CreateDate)}

	logger.Info("%s %d created, %d allocated, %d closed", kind, target.GetId(), result.Amount, len(result.Closed))
	f.closed(ctx, result.Closed, events...)
}

// closed 处理本次关闭的实体：指标、事件，以及项目关闭时失效报表缓存
func (f *Funder) closed(ctx context.Context, items []model.Fundable, events ...event.Event) {
	projectClosed := false
	for _, item := range items {
		metrics.FundablesClosed.WithLabelValues(string(item.Kind())).Inc()
		inv := item.Funding()
		events = append(events, event.New(event.TypeFunded, item.Kind(), item.GetId(), inv.InvestedAmount, *inv.CloseDate))
		if item.Kind() == model.KindCharityProject {
			projectClosed = true
		}
	}

	if f.events != nil {
		f.events.Dispatch(events...)
	}

	if projectClosed && f.cache != nil {
		if err := f.cache.Delete(ctx, reportCacheKey); err != nil {
			logger.Warn("Failed to invalidate report cache: %v", err)
		}
	}
}

func donationsAsFundables(items []*model.DonationModel) []model.Fundable {
	out := make([]model.Fundable, len(items))
	for i, d := range items {
		out[i] = d
	}
	return out
}

func projectsAsFundables(items []*model.CharityProjectModel) []model.Fundable {
	out := make([]model.Fundable, len(items))
	for i, p := range items {
		out[i] = p
	}
	return out
}
