package task

import (
	"context"
	"errors"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

const jobTimeout = 2 * time.Minute

type reportExporter interface {
	Export(ctx context.Context) (*logic.ExportResult, error)
}

// ReportExportJob 定期把已关闭项目排行写入 Google 表格
type ReportExportJob struct {
	reports  reportExporter
	interval time.Duration
}

// NewReportExportJob 创建报表导出任务
func NewReportExportJob(reports reportExporter, interval time.Duration) *ReportExportJob {
	return &ReportExportJob{reports: reports, interval: interval}
}

// GetName 获取任务名称
func (j *ReportExportJob) GetName() string {
	return "report_export"
}

// GetSchedule 获取调度配置
func (j *ReportExportJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute 执行任务
func (j *ReportExportJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result, err := j.reports.Export(ctx)
	switch {
	case errors.Is(err, errno.ErrExportUnavailable):
		logger.Warn("Report export skipped: %v", err)
	case err != nil:
		logger.Error("Report export failed: %v", err)
	default:
		logger.Info("Report export completed: %s (%d projects)", result.Message, result.ProjectsCount)
	}
}
