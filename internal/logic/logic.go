package logic

import (
	"errors"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/event"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
)

// reportCacheKey 已关闭项目排行的缓存键
const reportCacheKey = "qrkot:report:closed_projects"

// EventSink 领域事件出口，由 event.Dispatcher 实现
type EventSink interface {
	Dispatch(events ...event.Event)
}

// storeError 业务错误原样返回，其余记录日志后统一为数据库错误
func storeError(op string, err error) error {
	var e *errno.Errno
	if errors.As(err, &e) {
		return err
	}
	logger.Error("%s: %v", op, err)
	return errno.ErrDatabase
}
