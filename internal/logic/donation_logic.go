package logic

import (
	"context"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"github.com/Frenky19/QRkot-spreadsheets/internal/repository"
)

// DonationInput 创建捐款参数
type DonationInput struct {
	FullAmount int64
	Comment    string
}

// DonationLogic 捐款业务逻辑
type DonationLogic struct {
	store  repository.Store
	funder *Funder
}

// NewDonationLogic 创建捐款业务逻辑
func NewDonationLogic(store repository.Store, funder *Funder) *DonationLogic {
	return &DonationLogic{store: store, funder: funder}
}

// CreateDonation 创建捐款并按创建顺序分配给未满的项目
func (l *DonationLogic) CreateDonation(ctx context.Context, userId int64, in DonationInput) (*model.DonationModel, error) {
	target, err := l.funder.fund(ctx,
		func(tx repository.Store, now time.Time) (model.Fundable, error) {
			donation := &model.DonationModel{
				UserId:     userId,
				Comment:    in.Comment,
				Investment: model.NewInvestment(in.FullAmount, now),
			}
			if err := tx.CreateDonation(ctx, donation); err != nil {
				return nil, err
			}
			return donation, nil
		},
		func(tx repository.Store) ([]model.Fundable, error) {
			projects, err := tx.ListOpenProjects(ctx)
			if err != nil {
				return nil, err
			}
			return projectsAsFundables(projects), nil
		},
	)
	if err != nil {
		return nil, storeError("create donation", err)
	}

	return target.(*model.DonationModel), nil
}

// ListDonations 全部捐款
func (l *DonationLogic) ListDonations(ctx context.Context) ([]model.DonationModel, error) {
	donations, err := l.store.ListDonations(ctx)
	if err != nil {
		return nil, storeError("list donations", err)
	}
	return donations, nil
}

// ListUserDonations 指定用户的捐款
func (l *DonationLogic) ListUserDonations(ctx context.Context, userId int64) ([]model.DonationModel, error) {
	donations, err := l.store.ListDonationsByUser(ctx, userId)
	if err != nil {
		return nil, storeError("list user donations", err)
	}
	return donations, nil
}
