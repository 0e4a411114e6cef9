package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/service"
	"github.com/benitha200/cherryapp-backend/pkg/response"
)

// ReportHandler yield reports
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Completed lots of completed processings with outturn
// GET /api/bagging-off/report/completed
func (h *ReportHandler) Completed(c *gin.Context) {
	report, err := h.reportSvc.Completed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, report)
}

// Summary station and batch yields
// GET /api/bagging-off/report/summary?cwsId=&startDate=&endDate=
func (h *ReportHandler) Summary(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	report, err := h.reportSvc.Summary(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, report)
}
