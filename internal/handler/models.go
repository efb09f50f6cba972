package handler

import (
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 项目相关请求模型

// ProjectCreateRequest 创建项目请求
type ProjectCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"required,min=1"`
	FullAmount  int64  `json:"full_amount" binding:"required,gt=0"`
}

// ProjectUpdateRequest 更新项目请求，未出现的字段不修改
type ProjectUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	FullAmount  *int64  `json:"full_amount" binding:"omitempty,gt=0"`
}

// 捐款相关模型

// DonationCreateRequest 创建捐款请求
type DonationCreateRequest struct {
	FullAmount int64  `json:"full_amount" binding:"required,gt=0"`
	Comment    string `json:"comment"`
}

// DonationResponse 捐款人可见的字段
type DonationResponse struct {
	Id         int64     `json:"id"`
	FullAmount int64     `json:"full_amount"`
	Comment    string    `json:"comment,omitempty"`
	CreateDate time.Time `json:"create_date"`
}

// DonationAdminResponse 超级用户可见的全部字段
type DonationAdminResponse struct {
	DonationResponse
	UserId         int64      `json:"user_id"`
	InvestedAmount int64      `json:"invested_amount"`
	FullyInvested  bool       `json:"fully_invested"`
	CloseDate      *time.Time `json:"close_date,omitempty"`
}

func newDonationResponse(d *model.DonationModel) DonationResponse {
	return DonationResponse{
		Id:         d.Id,
		FullAmount: d.FullAmount,
		Comment:    d.Comment,
		CreateDate: d.CreateDate,
	}
}

func newDonationAdminResponse(d *model.DonationModel) DonationAdminResponse {
	return DonationAdminResponse{
		DonationResponse: newDonationResponse(d),
		UserId:           d.UserId,
		InvestedAmount:   d.InvestedAmount,
		FullyInvested:    d.FullyInvested,
		CloseDate:        d.CloseDate,
	}
}

// 用户相关模型

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest 登录请求，兼容 OAuth2 密码模式的表单字段
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse 登录响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
