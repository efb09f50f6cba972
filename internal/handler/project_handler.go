package handler

import (
	"net/http"

	"github.com/Frenky19/QRkot-spreadsheets/internal/logic"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
}

func NewProjectHandler(projectLogic *logic.ProjectLogic) *ProjectHandler {
	return &ProjectHandler{projectLogic: projectLogic}
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, bindError(err))
		return
	}

	project, err := h.projectLogic.CreateProject(c.Request.Context(), logic.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		FullAmount:  req.FullAmount,
	})
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Project created", project)
}

// GetProjects 获取项目列表
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectLogic.ListProjects(c.Request.Context())
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", projects)
}

// GetProject 获取单个项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	project, err := h.projectLogic.GetProject(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", project)
}

// UpdateProject 部分更新项目
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	var req ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, bindError(err))
		return
	}

	project, err := h.projectLogic.UpdateProject(c.Request.Context(), id, logic.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		FullAmount:  req.FullAmount,
	})
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Project updated", project)
}

// DeleteProject 删除项目
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := pathId(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	project, err := h.projectLogic.DeleteProject(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Project deleted", project)
}
