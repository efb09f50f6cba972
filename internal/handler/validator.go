package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/go-playground/validator/v10"
)

// GetErrorMsg 将校验错误转换为可读信息
func GetErrorMsg(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	var errMsgs []string
	for _, e := range validationErrors {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("%s is required", field))
		case "email":
			errMsgs = append(errMsgs, fmt.Sprintf("%s is not a valid email", field))
		case "min":
			errMsgs = append(errMsgs, fmt.Sprintf("%s must be at least %s characters", field, param))
		case "max":
			errMsgs = append(errMsgs, fmt.Sprintf("%s must be at most %s characters", field, param))
		case "gt":
			errMsgs = append(errMsgs, fmt.Sprintf("%s must be greater than %s", field, param))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("%s failed on %s", field, e.Tag()))
		}
	}
	return strings.Join(errMsgs, "; ")
}

// bindError 请求体绑定失败统一返回 422
func bindError(err error) error {
	return fmt.Errorf("%w: %s", errno.ErrBind, GetErrorMsg(err))
}
