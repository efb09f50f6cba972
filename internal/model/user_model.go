package model

import "time"

// UserModel 平台用户
type UserModel struct {
	Id             int64     `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Email          string    `json:"email" gorm:"size:320;not null;uniqueIndex"`
	HashedPassword string    `json:"-" gorm:"size:1024;not null"`
	IsActive       bool      `json:"is_active" gorm:"not null"`
	IsSuperuser    bool      `json:"is_superuser" gorm:"not null"`
	IsVerified     bool      `json:"is_verified" gorm:"not null"`
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "users"
}
