package logic

import (
	"context"
	"errors"
	"strings"

	"github.com/Frenky19/QRkot-spreadsheets/internal/auth"
	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"github.com/Frenky19/QRkot-spreadsheets/internal/repository"
)

// UserLogic 用户注册、登录与鉴权
type UserLogic struct {
	store  repository.Store
	tokens *auth.TokenIssuer
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(store repository.Store, tokens *auth.TokenIssuer) *UserLogic {
	return &UserLogic{store: store, tokens: tokens}
}

// Register 注册普通用户
func (l *UserLogic) Register(ctx context.Context, email, password string) (*model.UserModel, error) {
	return l.create(ctx, email, password, false)
}

func (l *UserLogic) create(ctx context.Context, email, password string, superuser bool) (*model.UserModel, error) {
	email = strings.TrimSpace(email)
	if err := auth.ValidatePassword(password, email); err != nil {
		return nil, err
	}

	_, err := l.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, errno.ErrUserExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError("get user by email", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, storeError("hash password", err)
	}

	user := &model.UserModel{
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
		IsSuperuser:    superuser,
		IsVerified:     superuser,
	}
	if err := l.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errno.ErrUserExists
		}
		return nil, storeError("create user", err)
	}

	logger.Info("User %d registered", user.Id)
	return user, nil
}

// Login 校验邮箱与密码并签发访问令牌
func (l *UserLogic) Login(ctx context.Context, email, password string) (string, error) {
	user, err := l.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return "", errno.ErrBadCredentials
	}
	if err != nil {
		return "", storeError("get user by email", err)
	}
	if !user.IsActive || !auth.CheckPassword(user.HashedPassword, password) {
		return "", errno.ErrBadCredentials
	}

	token, err := l.tokens.Issue(user.Id)
	if err != nil {
		return "", storeError("issue token", err)
	}
	return token, nil
}

// Authenticate 由访问令牌解析出当前活跃用户
func (l *UserLogic) Authenticate(ctx context.Context, token string) (*model.UserModel, error) {
	userId, err := l.tokens.Verify(token)
	if err != nil {
		return nil, errno.ErrTokenInvalid
	}

	user, err := l.store.GetUser(ctx, userId)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errno.ErrTokenInvalid
	}
	if err != nil {
		return nil, storeError("get user", err)
	}
	if !user.IsActive {
		return nil, errno.ErrTokenInvalid
	}
	return user, nil
}

// GetUser 按 id 查询用户
func (l *UserLogic) GetUser(ctx context.Context, id int64) (*model.UserModel, error) {
	user, err := l.store.GetUser(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errno.ErrUserNotFound
	}
	if err != nil {
		return nil, storeError("get user", err)
	}
	return user, nil
}

// EnsureSuperuser 启动时按配置创建第一个超级用户，已存在则跳过
func (l *UserLogic) EnsureSuperuser(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := l.create(ctx, email, password, true)
	if errors.Is(err, errno.ErrUserExists) {
		logger.Debug("Superuser %s already exists", email)
		return nil
	}
	return err
}
