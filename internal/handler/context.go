package handler

import (
	"strconv"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"github.com/gin-gonic/gin"
)

// ContextUserKey 鉴权中间件写入当前用户的键
const ContextUserKey = "user"

// CurrentUser 当前登录用户，未登录时为 nil
func CurrentUser(c *gin.Context) *model.UserModel {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.UserModel)
	return user
}

func pathId(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errno.ErrInvalidParam
	}
	return id, nil
}
