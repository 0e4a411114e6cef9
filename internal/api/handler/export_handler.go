package handler

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler spreadsheet downloads
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSummary yield summary workbook
// GET /api/reports/summary.xlsx?cwsId=&startDate=&endDate=
func (h *ExportHandler) ExportSummary(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportSummary(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	sendWorkbook(c, buf, filename)
}

// ExportPurchases purchases workbook for an inclusive date range
// GET /api/reports/purchases.xlsx?startDate=&endDate=
func (h *ExportHandler) ExportPurchases(c *gin.Context) {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportPurchases(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	sendWorkbook(c, buf, filename)
}

func sendWorkbook(c *gin.Context, buf *bytes.Buffer, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
