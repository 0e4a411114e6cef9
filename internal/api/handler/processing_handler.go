package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/service"
	"github.com/benitha200/cherryapp-backend/pkg/response"
)

// ProcessingHandler processing lifecycle
type ProcessingHandler struct {
	processingSvc service.ProcessingService
}

// NewProcessingHandler creates a ProcessingHandler
func NewProcessingHandler(processingSvc service.ProcessingService) *ProcessingHandler {
	return &ProcessingHandler{processingSvc: processingSvc}
}

// Start opens processing for a purchased batch
// POST /api/processing
func (h *ProcessingHandler) Start(c *gin.Context) {
	var req dto.StartProcessingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	p, err := h.processingSvc.Start(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, p)
}

// GetByBatch
// GET /api/processing/batch/:batchNo
func (h *ProcessingHandler) GetByBatch(c *gin.Context) {
	p, err := h.processingSvc.GetByBatch(c.Request.Context(), c.Param("batchNo"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, p)
}

// SetStatus
// PUT /api/processing/:id/status
func (h *ProcessingHandler) SetStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProcessingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	p, err := h.processingSvc.SetStatus(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, p)
}

// ListByStation optionally filtered by status and processing type
// GET /api/processing/cws/:cwsId?status=&processingType=
func (h *ProcessingHandler) ListByStation(c *gin.Context) {
	cwsID, ok := parseUintParam(c, "cwsId")
	if !ok {
		return
	}

	var q dto.ProcessingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	list, err := h.processingSvc.ListByStation(c.Request.Context(), cwsID, &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// Stats kgs and counts per (type, status)
// GET /api/processing/stats/:cwsId
func (h *ProcessingHandler) Stats(c *gin.Context) {
	cwsID, ok := parseUintParam(c, "cwsId")
	if !ok {
		return
	}

	stats, err := h.processingSvc.Stats(c.Request.Context(), cwsID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, stats)
}
