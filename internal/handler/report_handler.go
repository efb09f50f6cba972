package handler

import (
	"net/http"

	"github.com/Frenky19/QRkot-spreadsheets/internal/logic"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportLogic *logic.ReportLogic
}

func NewReportHandler(reportLogic *logic.ReportLogic) *ReportHandler {
	return &ReportHandler{reportLogic: reportLogic}
}

// GetReport 按募集速度排列的已关闭项目
func (h *ReportHandler) GetReport(c *gin.Context) {
	rows, err := h.reportLogic.ClosedProjects(c.Request.Context())
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", rows)
}

// ExportReport 将报表写入 Google 表格
func (h *ReportHandler) ExportReport(c *gin.Context) {
	result, err := h.reportLogic.Export(c.Request.Context())
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, result.Message, result)
}
