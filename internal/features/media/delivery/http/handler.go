package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"birthday-backend/internal/common/response"
	"birthday-backend/internal/features/media/service"
)

type MediaHandler struct {
	service service.MediaService
}

func NewMediaHandler(service service.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

func (h *MediaHandler) RegisterRoutes(router *gin.RouterGroup, adminAuth gin.HandlerFunc) {
	router.POST("/upload", adminAuth, h.upload)
}

// @Summary Upload media
// @Description Uploads a multipart file to the media host and returns its retrieval URL
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to store"
// @Param folder formData string false "Target folder (default media)"
// @Success 200 {object} response.Envelope "Retrieval URL"
// @Failure 400 {object} response.Envelope "No file provided"
// @Router /upload [post]
func (h *MediaHandler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "No file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	url, err := h.service.Upload(
		c.Request.Context(),
		file,
		c.PostForm("folder"),
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.CreatedURL(c, url)
}
