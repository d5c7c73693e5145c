package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"birthday-backend/internal/common/response"
	"birthday-backend/internal/features/gift/models"
	"birthday-backend/internal/features/gift/service"
)

type GiftHandler struct {
	service service.GiftService
}

func NewGiftHandler(service service.GiftService) *GiftHandler {
	return &GiftHandler{service: service}
}

func (h *GiftHandler) RegisterRoutes(router *gin.RouterGroup, adminAuth gin.HandlerFunc) {
	gifts := router.Group("/gifts")
	{
		gifts.GET("", h.list)
		gifts.POST("", adminAuth, h.create)
		gifts.PUT("", adminAuth, h.update)
		gifts.DELETE("", adminAuth, h.delete)
	}
}

// @Summary List gifts
// @Description Returns all gifts ordered ascending; ?view=selection or ?view=luck returns the page-filtered views
// @Tags gifts
// @Produce json
// @Param view query string false "Page view filter" Enums(selection, luck)
// @Success 200 {object} response.Envelope "Gifts"
// @Router /gifts [get]
func (h *GiftHandler) list(c *gin.Context) {
	var (
		gifts []*models.Gift
		err   error
	)

	switch c.Query("view") {
	case "":
		gifts, err = h.service.List(c.Request.Context())
	case string(models.PageSelection):
		gifts, err = h.service.SelectionView(c.Request.Context())
	case string(models.PageLuckGame):
		gifts, err = h.service.LuckGameView(c.Request.Context())
	default:
		response.Fail(c, http.StatusBadRequest, "view must be 'selection' or 'luck'")
		return
	}

	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gifts)
}

// @Summary Create gift
// @Description Creates a new gift and returns it with a generated id
// @Tags gifts
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope "Created gift"
// @Failure 400 {object} response.Envelope "Validation error"
// @Router /gifts [post]
func (h *GiftHandler) create(c *gin.Context) {
	var gift models.Gift
	if err := c.ShouldBindJSON(&gift); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &gift)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, created)
}

// @Summary Update gift
// @Description Merges the body fields into the gift identified by body id; a gift-new- prefixed id inserts instead
// @Tags gifts
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope "Updated gift"
// @Failure 400 {object} response.Envelope "Missing id"
// @Failure 404 {object} response.Envelope "Gift not found"
// @Router /gifts [put]
func (h *GiftHandler) update(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	gift, err := h.service.Update(c.Request.Context(), patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gift)
}

// @Summary Delete gift
// @Description Deletes the gift by query id; with &page= applies the remove-from-page rule instead of an unconditional delete
// @Tags gifts
// @Produce json
// @Param id query string true "Gift id"
// @Param page query string false "Remove from one page only" Enums(selection, luck)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Missing id"
// @Failure 404 {object} response.Envelope "Gift not found"
// @Router /gifts [delete]
func (h *GiftHandler) delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Fail(c, http.StatusBadRequest, "Gift ID is required")
		return
	}

	var err error
	if page := c.Query("page"); page != "" {
		err = h.service.RemoveFromPage(c.Request.Context(), id, models.Page(page))
	} else {
		err = h.service.Delete(c.Request.Context(), id)
	}

	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{})
}
