package task

import (
	"context"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

type auditor interface {
	Audit(ctx context.Context) ([]logic.Violation, error)
}

// FundingAuditJob 巡检资金不变量
type FundingAuditJob struct {
	auditor  auditor
	interval time.Duration
}

func NewFundingAuditJob(a auditor, interval time.Duration) *FundingAuditJob {
	return &FundingAuditJob{auditor: a, interval: interval}
}

func (j *FundingAuditJob) GetName() string {
	return "funding_audit"
}

func (j *FundingAuditJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

func (j *FundingAuditJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	violations, err := j.auditor.Audit(ctx)
	if err != nil {
		logger.Error("Funding audit failed: %v", err)
		return
	}
	if len(violations) > 0 {
		logger.Warn("Funding audit found %d violations", len(violations))
		return
	}
	logger.Debug("Funding audit passed")
}
