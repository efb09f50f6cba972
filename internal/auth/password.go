package auth

import (
	"strings"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength 密码最短长度
const MinPasswordLength = 3

// HashPassword bcrypt 哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword 校验明文密码与哈希是否匹配
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword 密码策略：长度不少于 3 且不包含邮箱
func ValidatePassword(password, email string) error {
	if len([]rune(password)) < MinPasswordLength {
		return errno.ErrPasswordTooShort
	}
	if email != "" && strings.Contains(password, email) {
		return errno.ErrPasswordEmail
	}
	return nil
}
