package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 违反唯一约束
	ErrDuplicate = errors.New("duplicate record")
)

// Store 持久化接口，Transaction 内的 fn 收到绑定到同一事务的 Store
type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error

	CreateProject(ctx context.Context, project *model.CharityProjectModel) error
	GetProject(ctx context.Context, id int64) (*model.CharityProjectModel, error)
	GetProjectIdByName(ctx context.Context, name string) (int64, error)
	ListProjects(ctx context.Context) ([]model.CharityProjectModel, error)
	ListOpenProjects(ctx context.Context) ([]*model.CharityProjectModel, error)
	ListClosedProjects(ctx context.Context) ([]model.CharityProjectModel, error)
	UpdateProject(ctx context.Context, project *model.CharityProjectModel) error
	DeleteProject(ctx context.Context, project *model.CharityProjectModel) error

	CreateDonation(ctx context.Context, donation *model.DonationModel) error
	ListDonations(ctx context.Context) ([]model.DonationModel, error)
	ListDonationsByUser(ctx context.Context, userId int64) ([]model.DonationModel, error)
	ListOpenDonations(ctx context.Context) ([]*model.DonationModel, error)

	// SaveFundables 持久化一次分配修改过的全部实体
	SaveFundables(ctx context.Context, items []model.Fundable) error

	CreateUser(ctx context.Context, user *model.UserModel) error
	GetUser(ctx context.Context, id int64) (*model.UserModel, error)
	GetUserByEmail(ctx context.Context, email string) (*model.UserModel, error)
}

// GormStore 基于 gorm 的 Store 实现
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建 gorm 存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Transaction 在单个数据库事务中执行 fn，fn 返回错误时整体回滚
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// SaveFundables 持久化一次分配修改过的全部实体
func (s *GormStore) SaveFundables(ctx context.Context, items []model.Fundable) error {
	for _, item := range items {
		if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
			return fmt.Errorf("save %s %d: %w", item.Kind(), item.GetId(), translate(err))
		}
	}
	return nil
}

// forUpdate 读取资金池时锁定行，防止并发分配读到同一份旧数据
func (s *GormStore) forUpdate(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}
