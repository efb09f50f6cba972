package handler

import (
	"net/http"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logic"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userLogic *logic.UserLogic
}

func NewUserHandler(userLogic *logic.UserLogic) *UserHandler {
	return &UserHandler{userLogic: userLogic}
}

// Register 注册
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, bindError(err))
		return
	}

	user, err := h.userLogic.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "User registered", user)
}

// Login 登录，支持表单与 JSON
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		ErrorResponse(c, bindError(err))
		return
	}

	token, err := h.userLogic.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me 当前用户
func (h *UserHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		ErrorResponse(c, errno.ErrTokenInvalid)
		return
	}
	SuccessResponse(c, http.StatusOK, "", user)
}

// GetUser 按 id 查询用户（超级用户）
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	user, err := h.userLogic.GetUser(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", user)
}
