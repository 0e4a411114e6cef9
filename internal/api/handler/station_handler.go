package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/service"
	"github.com/benitha200/cherryapp-backend/pkg/response"
)

// StationHandler coffee washing stations (CWS)
type StationHandler struct {
	stationSvc service.StationService
}

// NewStationHandler creates a StationHandler
func NewStationHandler(stationSvc service.StationService) *StationHandler {
	return &StationHandler{stationSvc: stationSvc}
}

// Create
// POST /api/cws
func (h *StationHandler) Create(c *gin.Context) {
	var req dto.CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	st, err := h.stationSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, st)
}

// List
// GET /api/cws
func (h *StationHandler) List(c *gin.Context) {
	stations, err := h.stationSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, stations)
}

// Get
// GET /api/cws/:id
func (h *StationHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	st, err := h.stationSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, st)
}

// Update
// PUT /api/cws/:id
func (h *StationHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	st, err := h.stationSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, st)
}

// Delete
// DELETE /api/cws/:id
func (h *StationHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.stationSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, nil)
}
