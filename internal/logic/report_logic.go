package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/cache"
	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/event"
	"github.com/Frenky19/QRkot-spreadsheets/internal/lock"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/Frenky19/QRkot-spreadsheets/internal/metrics"
	"github.com/Frenky19/QRkot-spreadsheets/internal/report"
	"github.com/Frenky19/QRkot-spreadsheets/internal/repository"
)

const (
	msgReportEmpty   = "Нет закрытых проектов для отчета"
	msgReportUpdated = "Отчет успешно обновлен"
)

// ExportResult 报表导出结果
type ExportResult struct {
	Message        string  `json:"message"`
	SpreadsheetURL *string `json:"spreadsheet_url"`
	ProjectsCount  int     `json:"projects_count"`
}

// ReportLogic 已关闭项目排行与导出
type ReportLogic struct {
	store    repository.Store
	locker   lock.Locker
	cache    cache.Cache
	exporter report.Exporter
	events   EventSink
	ttl      time.Duration
}

// NewReportLogic 创建报表业务逻辑，exporter 为空表示未配置导出。
// 启用缓存时 locker 必须与 Funder 共用同一把资金池锁。
func NewReportLogic(store repository.Store, locker lock.Locker, c cache.Cache, exporter report.Exporter, events EventSink, ttl time.Duration) *ReportLogic {
	return &ReportLogic{
		store:    store,
		locker:   locker,
		cache:    c,
		exporter: exporter,
		events:   events,
		ttl:      ttl,
	}
}

// ClosedProjects 按募集耗时升序排列的已关闭项目
func (l *ReportLogic) ClosedProjects(ctx context.Context) ([]report.Row, error) {
	if l.cache == nil || l.ttl <= 0 {
		return l.buildRows(ctx)
	}

	var rows []report.Row
	err := l.cache.Get(ctx, reportCacheKey, &rows)
	if err == nil {
		return rows, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("Report cache read failed: %v", err)
	}

	// 重建缓存期间持有资金池锁，关闭项目的分配只能在写缓存之后提交并失效
	release, err := lock.Obtain(ctx, l.locker, lock.PoolKey, poolLockTTL)
	if err != nil {
		logger.Warn("Report cache rebuild skipped: %v", err)
		return l.buildRows(ctx)
	}
	defer release()

	rows, err = l.buildRows(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.cache.Set(ctx, reportCacheKey, rows, l.ttl); err != nil {
		logger.Warn("Report cache write failed: %v", err)
	}
	return rows, nil
}

func (l *ReportLogic) buildRows(ctx context.Context) ([]report.Row, error) {
	projects, err := l.store.ListClosedProjects(ctx)
	if err != nil {
		return nil, storeError("list closed projects", err)
	}
	return report.BuildRows(projects), nil
}

// Export 将排行写入外部表格
func (l *ReportLogic) Export(ctx context.Context) (*ExportResult, error) {
	if l.exporter == nil {
		return nil, errno.ErrExportUnavailable
	}

	rows, err := l.ClosedProjects(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &ExportResult{Message: msgReportEmpty}, nil
	}

	url, err := l.exporter.Export(ctx, rows)
	if err != nil {
		metrics.ReportExports.WithLabelValues("failed").Inc()
		var e *errno.Errno
		if errors.As(err, &e) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errno.ErrExportFailed, err)
	}
	metrics.ReportExports.WithLabelValues("ok").Inc()

	if l.events != nil {
		l.events.Dispatch(event.New(event.TypeReportExported, "", 0, int64(len(rows)), time.Now().UTC()))
	}

	return &ExportResult{
		Message:        msgReportUpdated,
		SpreadsheetURL: &url,
		ProjectsCount:  len(rows),
	}, nil
}
