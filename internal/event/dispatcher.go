package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/panjf2000/ants/v2"
)

const publishTimeout = 5 * time.Second

// Dispatcher 通过协程池异步投递事件，不阻塞请求
type Dispatcher struct {
	publisher Publisher
	pool      *ants.Pool
	wg        sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher 创建事件分发器
func NewDispatcher(publisher Publisher, size int) (*Dispatcher, error) {
	if size <= 0 {
		size = 1
	}
	pool, err := ants.NewPool(size, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create event pool: %w", err)
	}
	return &Dispatcher{publisher: publisher, pool: pool}, nil
}

// Dispatch 异步发布；池中没有空闲协程时同步发布。
// Close 之后的事件只记录日志并丢弃。
func (d *Dispatcher) Dispatch(events ...Event) {
	if len(events) == 0 {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		logger.Warn("Dispatcher closed, dropping %d events", len(events))
		return
	}

	d.wg.Add(1)
	err := d.pool.Submit(func() {
		defer d.wg.Done()
		d.publish(events)
	})
	if err != nil {
		logger.Warn("Failed to submit events to pool, publishing inline: %v", err)
		d.publish(events)
		d.wg.Done()
	}
}

func (d *Dispatcher) publish(events []Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, events...); err != nil {
		logger.Error("Failed to publish %d events: %v", len(events), err)
	}
}

// Close 拒绝新事件，等待在途事件投递完成后释放资源
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	d.wg.Wait()
	d.pool.Release()
	return d.publisher.Close()
}
