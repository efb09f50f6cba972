package repository

import (
	"context"
	"fmt"

	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
)

// CreateDonation 新建捐款
func (s *GormStore) CreateDonation(ctx context.Context, donation *model.DonationModel) error {
	return translate(s.db.WithContext(ctx).Create(donation).Error)
}

// ListDonations 全部捐款
func (s *GormStore) ListDonations(ctx context.Context) ([]model.DonationModel, error) {
	var donations []model.DonationModel
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return donations, nil
}

// ListDonationsByUser 某用户的捐款
func (s *GormStore) ListDonationsByUser(ctx context.Context, userId int64) ([]model.DonationModel, error) {
	var donations []model.DonationModel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("id ASC").
		Find(&donations).Error
	if err != nil {
		return nil, fmt.Errorf("list donations of user %d: %w", userId, err)
	}
	return donations, nil
}

// ListOpenDonations 未分配完的捐款，按创建时间、ID 升序并加行锁
func (s *GormStore) ListOpenDonations(ctx context.Context) ([]*model.DonationModel, error) {
	var donations []*model.DonationModel
	err := s.forUpdate(ctx).
		Where("fully_invested = ?", false).
		Order("create_date ASC").
		Order("id ASC").
		Find(&donations).Error
	if err != nil {
		return nil, fmt.Errorf("list open donations: %w", err)
	}
	return donations, nil
}
