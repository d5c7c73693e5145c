package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"birthday-backend/internal/common/response"
	"birthday-backend/internal/features/selection/models"
	"birthday-backend/internal/features/selection/service"
)

type SelectionHandler struct {
	service service.SelectionService
}

func NewSelectionHandler(service service.SelectionService) *SelectionHandler {
	return &SelectionHandler{service: service}
}

func (h *SelectionHandler) RegisterRoutes(router *gin.RouterGroup, adminAuth gin.HandlerFunc) {
	selections := router.Group("/selections")
	{
		selections.GET("", h.list)
		// Visitors create entries; only deletion is an admin operation.
		selections.POST("", h.create)
		selections.DELETE("", adminAuth, h.delete)
	}
}

// @Summary List selections
// @Description Returns the full choice log, newest first
// @Tags selections
// @Produce json
// @Success 200 {object} response.Envelope "Selections"
// @Router /selections [get]
func (h *SelectionHandler) list(c *gin.Context) {
	selections, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, selections)
}

// @Summary Record selection
// @Description Appends a choice log entry
// @Tags selections
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope "Created selection"
// @Router /selections [post]
func (h *SelectionHandler) create(c *gin.Context) {
	var selection models.UserSelection
	if err := c.ShouldBindJSON(&selection); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &selection, c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, created)
}

// @Summary Delete selection
// @Description Deletes one choice log entry by query id
// @Tags selections
// @Produce json
// @Param id query string true "Selection id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Missing id"
// @Failure 404 {object} response.Envelope "Selection not found"
// @Router /selections [delete]
func (h *SelectionHandler) delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Fail(c, http.StatusBadRequest, "Selection ID is required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{})
}
