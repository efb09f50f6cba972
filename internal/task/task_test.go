package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExporter struct {
	calls atomic.Int32
	err   error
}

func (e *countingExporter) Export(context.Context) (*logic.ExportResult, error) {
	e.calls.Add(1)
	if e.err != nil {
		return nil, e.err
	}
	return &logic.ExportResult{Message: "ok", ProjectsCount: 3}, nil
}

type countingAuditor struct {
	calls atomic.Int32
}

func (a *countingAuditor) Audit(context.Context) ([]logic.Violation, error) {
	a.calls.Add(1)
	return []logic.Violation{{Id: 1, Reason: "broken"}}, nil
}

func TestJobsExecute(t *testing.T) {
	exporter := &countingExporter{err: errno.ErrExportUnavailable}
	NewReportExportJob(exporter, time.Minute).Execute()
	assert.Equal(t, int32(1), exporter.calls.Load())

	auditor := &countingAuditor{}
	job := NewFundingAuditJob(auditor, time.Minute)
	job.Execute()
	assert.Equal(t, int32(1), auditor.calls.Load())
	assert.Equal(t, "funding_audit", job.GetName())
}

func TestManagerRunsJobs(t *testing.T) {
	exporter := &countingExporter{}
	auditor := &countingAuditor{}

	m, err := NewManager(
		NewReportExportJob(exporter, 10*time.Millisecond),
		NewFundingAuditJob(auditor, 10*time.Millisecond),
	)
	require.NoError(t, err)
	m.Start()
	defer m.Stop()

	assert.Eventually(t, func() bool {
		return exporter.calls.Load() > 0 && auditor.calls.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestManagerRejectsBadInterval(t *testing.T) {
	_, err := NewManager(NewFundingAuditJob(&countingAuditor{}, 0))
	assert.Error(t, err)
}
