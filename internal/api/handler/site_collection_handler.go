package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/service"
	"github.com/benitha200/cherryapp-backend/pkg/response"
)

// SiteCollectionHandler collection points attached to a station
type SiteCollectionHandler struct {
	siteSvc service.SiteCollectionService
}

// NewSiteCollectionHandler creates a SiteCollectionHandler
func NewSiteCollectionHandler(siteSvc service.SiteCollectionService) *SiteCollectionHandler {
	return &SiteCollectionHandler{siteSvc: siteSvc}
}

// Create
// POST /api/site-collections
func (h *SiteCollectionHandler) Create(c *gin.Context) {
	var req dto.CreateSiteCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	sc, err := h.siteSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, sc)
}

// List
// GET /api/site-collections
func (h *SiteCollectionHandler) List(c *gin.Context) {
	list, err := h.siteSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// ListByStation
// GET /api/site-collections/cws/:cwsId
func (h *SiteCollectionHandler) ListByStation(c *gin.Context) {
	cwsID, ok := parseUintParam(c, "cwsId")
	if !ok {
		return
	}

	list, err := h.siteSvc.ListByStation(c.Request.Context(), cwsID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// Get
// GET /api/site-collections/:id
func (h *SiteCollectionHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	sc, err := h.siteSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, sc)
}

// Update
// PUT /api/site-collections/:id
func (h *SiteCollectionHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSiteCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	sc, err := h.siteSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, sc)
}

// Delete refused while purchases reference the site
// DELETE /api/site-collections/:id
func (h *SiteCollectionHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.siteSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, nil)
}
