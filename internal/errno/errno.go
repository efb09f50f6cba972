package errno

import (
	"errors"
	"net/http"
)

// Errno 业务错误码
type Errno struct {
	Status  int // HTTP 状态码
	Code    int
	Message string
}

func (e *Errno) Error() string {
	return e.Message
}

// Decode 将任意错误转换为 HTTP 状态码、错误码与消息。
// 包装过的 Errno 保留外层消息，便于携带上下文。
func Decode(err error) (int, int, string) {
	if err == nil {
		return http.StatusOK, OK.Code, OK.Message
	}

	var e *Errno
	if errors.As(err, &e) {
		return e.Status, e.Code, err.Error()
	}
	return ErrInternal.Status, ErrInternal.Code, ErrInternal.Message
}

// Common Errors
var (
	OK               = &Errno{Status: http.StatusOK, Code: 0, Message: "Success"}
	ErrInternal      = &Errno{Status: http.StatusInternalServerError, Code: 10001, Message: "Internal server error"}
	ErrBind          = &Errno{Status: http.StatusUnprocessableEntity, Code: 10002, Message: "Invalid request body"}
	ErrTokenInvalid  = &Errno{Status: http.StatusUnauthorized, Code: 10003, Message: "Token invalid"}
	ErrForbidden     = &Errno{Status: http.StatusForbidden, Code: 10004, Message: "Superuser privileges required"}
	ErrInvalidParam  = &Errno{Status: http.StatusUnprocessableEntity, Code: 10005, Message: "Invalid path parameter"}
	ErrDatabase      = &Errno{Status: http.StatusInternalServerError, Code: 10006, Message: "Database error"}
	ErrLockTimeout   = &Errno{Status: http.StatusServiceUnavailable, Code: 10007, Message: "Funding pool is busy, retry later"}
	ErrNothingToSave = &Errno{Status: http.StatusUnprocessableEntity, Code: 10008, Message: "No fields to update"}
)

// Business Errors (20000+)
var (
	ErrUserNotFound     = &Errno{Status: http.StatusNotFound, Code: 20101, Message: "User not found"}
	ErrUserExists       = &Errno{Status: http.StatusBadRequest, Code: 20102, Message: "REGISTER_USER_ALREADY_EXISTS"}
	ErrBadCredentials   = &Errno{Status: http.StatusBadRequest, Code: 20103, Message: "LOGIN_BAD_CREDENTIALS"}
	ErrPasswordTooShort = &Errno{Status: http.StatusBadRequest, Code: 20104, Message: "Password should be at least 3 characters"}
	ErrPasswordEmail    = &Errno{Status: http.StatusBadRequest, Code: 20105, Message: "Password should not contain e-mail"}

	ErrProjectNotFound         = &Errno{Status: http.StatusNotFound, Code: 20201, Message: "Project not found"}
	ErrDuplicateProjectName    = &Errno{Status: http.StatusBadRequest, Code: 20202, Message: "Project with this name already exists"}
	ErrProjectClosed           = &Errno{Status: http.StatusBadRequest, Code: 20203, Message: "Closed project cannot be edited"}
	ErrProjectInvested         = &Errno{Status: http.StatusBadRequest, Code: 20204, Message: "Project has received funds and cannot be deleted"}
	ErrFullAmountBelowInvested = &Errno{Status: http.StatusBadRequest, Code: 20205, Message: "full_amount cannot be less than the invested amount"}

	ErrExportUnavailable   = &Errno{Status: http.StatusServiceUnavailable, Code: 20301, Message: "Spreadsheet export is not configured"}
	ErrSpreadsheetNotFound = &Errno{Status: http.StatusBadRequest, Code: 20302, Message: "Spreadsheet not found, check spreadsheet_id and access rights"}
	ErrExportFailed        = &Errno{Status: http.StatusInternalServerError, Code: 20303, Message: "Report export failed"}
)
