package repository

import (
	"context"
	"fmt"

	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
)

// CreateProject 新建项目
func (s *GormStore) CreateProject(ctx context.Context, project *model.CharityProjectModel) error {
	return translate(s.db.WithContext(ctx).Create(project).Error)
}

// GetProject 按 ID 获取项目
func (s *GormStore) GetProject(ctx context.Context, id int64) (*model.CharityProjectModel, error) {
	var project model.CharityProjectModel
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, translate(err)
	}
	return &project, nil
}

// GetProjectIdByName 按名称查找项目 ID，不存在时返回 ErrNotFound
func (s *GormStore) GetProjectIdByName(ctx context.Context, name string) (int64, error) {
	var project model.CharityProjectModel
	err := s.db.WithContext(ctx).
		Select("id").
		Where("name = ?", name).
		Take(&project).Error
	if err != nil {
		return 0, translate(err)
	}
	return project.Id, nil
}

// ListProjects 获取全部项目
func (s *GormStore) ListProjects(ctx context.Context) ([]model.CharityProjectModel, error) {
	var projects []model.CharityProjectModel
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// ListOpenProjects 未满额项目，按创建时间、ID 升序并加行锁
func (s *GormStore) ListOpenProjects(ctx context.Context) ([]*model.CharityProjectModel, error) {
	var projects []*model.CharityProjectModel
	err := s.forUpdate(ctx).
		Where("fully_invested = ?", false).
		Order("create_date ASC").
		Order("id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list open projects: %w", err)
	}
	return projects, nil
}

// ListClosedProjects 已满额项目
func (s *GormStore) ListClosedProjects(ctx context.Context) ([]model.CharityProjectModel, error) {
	var projects []model.CharityProjectModel
	err := s.db.WithContext(ctx).
		Where("fully_invested = ?", true).
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list closed projects: %w", err)
	}
	return projects, nil
}

// UpdateProject 保存项目全部字段
func (s *GormStore) UpdateProject(ctx context.Context, project *model.CharityProjectModel) error {
	return translate(s.db.WithContext(ctx).Save(project).Error)
}

// DeleteProject 删除项目
func (s *GormStore) DeleteProject(ctx context.Context, project *model.CharityProjectModel) error {
	return translate(s.db.WithContext(ctx).Delete(project).Error)
}
