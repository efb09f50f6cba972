package logic

import (
	"context"
	"errors"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"github.com/Frenky19/QRkot-spreadsheets/internal/repository"
)

// ProjectInput 创建项目参数
type ProjectInput struct {
	Name        string
	Description string
	FullAmount  int64
}

// ProjectPatch 更新项目参数，nil 字段不修改
type ProjectPatch struct {
	Name        *string
	Description *string
	FullAmount  *int64
}

func (p ProjectPatch) empty() bool {
	return p.Name == nil && p.Description == nil && p.FullAmount == nil
}

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	store  repository.Store
	funder *Funder
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(store repository.Store, funder *Funder) *ProjectLogic {
	return &ProjectLogic{store: store, funder: funder}
}

// CreateProject 创建项目并立即用未分配完的捐款为其注资
func (l *ProjectLogic) CreateProject(ctx context.Context, in ProjectInput) (*model.CharityProjectModel, error) {
	if err := l.checkNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	target, err := l.funder.fund(ctx,
		func(tx repository.Store, now time.Time) (model.Fundable, error) {
			project := &model.CharityProjectModel{
				Name:        in.Name,
				Description: in.Description,
				Investment:  model.NewInvestment(in.FullAmount, now),
			}
			if err := tx.CreateProject(ctx, project); err != nil {
				return nil, err
			}
			return project, nil
		},
		func(tx repository.Store) ([]model.Fundable, error) {
			donations, err := tx.ListOpenDonations(ctx)
			if err != nil {
				return nil, err
			}
			return donationsAsFundables(donations), nil
		},
	)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, errno.ErrDuplicateProjectName
	}
	if err != nil {
		return nil, storeError("create project", err)
	}

	return target.(*model.CharityProjectModel), nil
}

// ListProjects 获取项目列表
func (l *ProjectLogic) ListProjects(ctx context.Context) ([]model.CharityProjectModel, error) {
	projects, err := l.store.ListProjects(ctx)
	if err != nil {
		return nil, storeError("list projects", err)
	}
	return projects, nil
}

// GetProject 获取项目详情
func (l *ProjectLogic) GetProject(ctx context.Context, id int64) (*model.CharityProjectModel, error) {
	project, err := l.store.GetProject(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errno.ErrProjectNotFound
	}
	if err != nil {
		return nil, storeError("get project", err)
	}
	return project, nil
}

// UpdateProject 更新未关闭的项目。
// full_amount 改为已募集金额时项目随之关闭。
func (l *ProjectLogic) UpdateProject(ctx context.Context, id int64, patch ProjectPatch) (*model.CharityProjectModel, error) {
	var project *model.CharityProjectModel

	err := l.funder.withPoolLock(ctx, func() error {
		var err error
		project, err = l.GetProject(ctx, id)
		if err != nil {
			return err
		}
		if project.FullyInvested {
			return errno.ErrProjectClosed
		}
		if patch.empty() {
			return errno.ErrNothingToSave
		}
		if patch.Name != nil {
			if err := l.checkNameFree(ctx, *patch.Name, id); err != nil {
				return err
			}
			project.Name = *patch.Name
		}
		if patch.Description != nil {
			project.Description = *patch.Description
		}
		if patch.FullAmount != nil {
			if *patch.FullAmount < project.InvestedAmount {
				return errno.ErrFullAmountBelowInvested
			}
			project.FullAmount = *patch.FullAmount
		}

		closed := project.CloseIfFunded(l.funder.now().UTC())

		if err := l.store.UpdateProject(ctx, project); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return errno.ErrDuplicateProjectName
			}
			return storeError("update project", err)
		}

		if closed {
			logger.Info("Project %d closed by full_amount update", project.Id)
			l.funder.closed(ctx, []model.Fundable{project})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject 删除尚未收到资金的项目，返回被删除的项目
func (l *ProjectLogic) DeleteProject(ctx context.Context, id int64) (*model.CharityProjectModel, error) {
	var project *model.CharityProjectModel

	err := l.funder.withPoolLock(ctx, func() error {
		var err error
		project, err = l.GetProject(ctx, id)
		if err != nil {
			return err
		}
		if project.InvestedAmount > 0 {
			return errno.ErrProjectInvested
		}
		if err := l.store.DeleteProject(ctx, project); err != nil {
			return storeError("delete project", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Project %d deleted", project.Id)
	return project, nil
}

// checkNameFree 名称未被其他项目占用，exceptId 为当前项目
func (l *ProjectLogic) checkNameFree(ctx context.Context, name string, exceptId int64) error {
	id, err := l.store.GetProjectIdByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return storeError("check project name", err)
	}
	if id != exceptId {
		return errno.ErrDuplicateProjectName
	}
	return nil
}
