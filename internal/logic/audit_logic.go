package logic

import (
	"context"

	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/Frenky19/QRkot-spreadsheets/internal/metrics"
	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"github.com/Frenky19/QRkot-spreadsheets/internal/repository"
)

// Violation 违反资金不变量的记录
type Violation struct {
	Kind   model.FundableKind
	Id     int64
	Reason string
}

// AuditLogic 资金一致性巡检
type AuditLogic struct {
	store repository.Store
}

func NewAuditLogic(store repository.Store) *AuditLogic {
	return &AuditLogic{store: store}
}

// Audit 扫描全部项目与捐款，返回并记录所有违规行
func (l *AuditLogic) Audit(ctx context.Context) ([]Violation, error) {
	projects, err := l.store.ListProjects(ctx)
	if err != nil {
		return nil, storeError("audit list projects", err)
	}
	donations, err := l.store.ListDonations(ctx)
	if err != nil {
		return nil, storeError("audit list donations", err)
	}

	var violations []Violation
	for i := range projects {
		violations = append(violations, check(&projects[i])...)
	}
	for i := range donations {
		violations = append(violations, check(&donations[i])...)
	}

	for _, v := range violations {
		logger.Warn("Funding audit: %s %d %s", v.Kind, v.Id, v.Reason)
	}
	metrics.AuditViolations.Set(float64(len(violations)))
	return violations, nil
}

func check(f model.Fundable) []Violation {
	inv := f.Funding()
	var out []Violation
	add := func(reason string) {
		out = append(out, Violation{Kind: f.Kind(), Id: f.GetId(), Reason: reason})
	}

	if inv.InvestedAmount < 0 || inv.InvestedAmount > inv.FullAmount {
		add("invested_amount out of range")
	}
	if inv.FullyInvested != (inv.InvestedAmount == inv.FullAmount) {
		add("fully_invested does not match amounts")
	}
	if inv.FullyInvested && inv.CloseDate == nil {
		add("closed without close_date")
	}
	if !inv.FullyInvested && inv.CloseDate != nil {
		add("open with close_date")
	}
	return out
}
