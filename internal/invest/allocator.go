package invest

import (
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
)

// Result 一次分配的结果
type Result struct {
	Modified []model.Fundable // 需要持久化的实体，target 总在最后
	Closed   []model.Fundable // 本次分配中满额关闭的实体
	Amount   int64            // 本次转移的总金额
	ClosedAt time.Time        // 本次关闭实体共用的时间戳
}

// Allocator 按先到先得原则在新实体与未关闭的对手方之间分配资金。
// 不持有跨调用的状态，调用方负责串行化同一资金池上的分配。
type Allocator struct {
	now func() time.Time
}

// NewAllocator 创建分配器，now 为空时使用系统时间
func NewAllocator(now func() time.Time) *Allocator {
	if now == nil {
		now = time.Now
	}
	return &Allocator{now: now}
}

// Allocate 将 sources 按给定顺序（create_date 升序）依次与 target 撮合。
// target 满额后停止，其余 sources 不变且不返回。
func (a *Allocator) Allocate(target model.Fundable, sources []model.Fundable) Result {
	result := Result{
		Modified: make([]model.Fundable, 0, len(sources)+1),
		ClosedAt: a.now().UTC(),
	}

	t := target.Funding()
	for _, source := range sources {
		if t.FullyInvested {
			break
		}

		s := source.Funding()
		if s.FullyInvested || s.Remaining() <= 0 {
			// 调用方应只传入未关闭的实体
			logger.Warn("Skipping closed %s %d in allocation pool", source.Kind(), source.GetId())
			continue
		}

		amount := min(t.Remaining(), s.Remaining())
		t.InvestedAmount += amount
		s.InvestedAmount += amount
		result.Amount += amount

		if s.CloseIfFunded(result.ClosedAt) {
			result.Closed = append(result.Closed, source)
		}
		if t.CloseIfFunded(result.ClosedAt) {
			result.Closed = append(result.Closed, target)
		}

		result.Modified = append(result.Modified, source)
	}

	result.Modified = append(result.Modified, target)
	return result
}
