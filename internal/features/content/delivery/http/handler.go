package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"birthday-backend/internal/common/response"
	"birthday-backend/internal/features/content/service"
)

type ContentHandler struct {
	service service.ContentService
}

func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

func (h *ContentHandler) RegisterRoutes(router *gin.RouterGroup, adminAuth gin.HandlerFunc) {
	content := router.Group("/content")
	{
		content.GET("", h.get)
		content.PUT("", adminAuth, h.update)
	}
}

// @Summary Get page content
// @Description Returns the singleton page content document, creating it with defaults if absent
// @Tags content
// @Produce json
// @Success 200 {object} response.Envelope "Page content"
// @Router /content [get]
func (h *ContentHandler) get(c *gin.Context) {
	content, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, content)
}

// @Summary Update page content
// @Description Merges the partial body into the singleton document and returns the merged result
// @Tags content
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope "Merged page content"
// @Failure 400 {object} response.Envelope "Malformed body"
// @Router /content [put]
func (h *ContentHandler) update(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	content, err := h.service.Update(c.Request.Context(), patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, content)
}
