package model

import "time"

// FundableKind 可投资实体类型
type FundableKind string

const (
	KindCharityProject FundableKind = "charity_project"
	KindDonation       FundableKind = "donation"
)

// Investment 项目与捐款共有的资金字段
type Investment struct {
	FullAmount     int64      `json:"full_amount" gorm:"not null;check:full_amount > 0"`
	InvestedAmount int64      `json:"invested_amount" gorm:"not null"`
	FullyInvested  bool       `json:"fully_invested" gorm:"not null;index"`
	CreateDate     time.Time  `json:"create_date" gorm:"not null;index"`
	CloseDate      *time.Time `json:"close_date,omitempty"`
}

// Funding 返回资金字段本身，供分配器统一读写
func (i *Investment) Funding() *Investment {
	return i
}

// Remaining 尚可分配的金额
func (i *Investment) Remaining() int64 {
	return i.FullAmount - i.InvestedAmount
}

// IsOpen 是否仍在参与分配
func (i *Investment) IsOpen() bool {
	return !i.FullyInvested
}

// CloseIfFunded 金额已满时关闭，返回是否在本次调用中关闭
func (i *Investment) CloseIfFunded(now time.Time) bool {
	if i.FullyInvested || i.InvestedAmount != i.FullAmount {
		return false
	}
	i.FullyInvested = true
	closedAt := now
	i.CloseDate = &closedAt
	return true
}

// Fundable 项目或捐款
type Fundable interface {
	Funding() *Investment
	Kind() FundableKind
	GetId() int64
}

// NewInvestment 新建实体的初始资金状态
func NewInvestment(fullAmount int64, now time.Time) Investment {
	return Investment{
		FullAmount: fullAmount,
		CreateDate: now,
	}
}
