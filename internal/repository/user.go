package repository

import (
	"context"

	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
)

// CreateUser 新建用户，邮箱重复时返回 ErrDuplicate
func (s *GormStore) CreateUser(ctx context.Context, user *model.UserModel) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

// GetUser 按 ID 获取用户
func (s *GormStore) GetUser(ctx context.Context, id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetUserByEmail 按邮箱获取用户
func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	var user model.UserModel
	if err := s.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
