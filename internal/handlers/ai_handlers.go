package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 10 MB is plenty for a phone photo.
const maxImageBytes = 10 << 20

// ExtractCarDetails is the handler for POST /v1/admin/cars/extract. The
// uploaded photo goes to the vision model and the structured listing
// guess comes back for the intake form to pre-fill.
func (h *Handlers) ExtractCarDetails(c *gin.Context) {
	image, mimeType, ok := readImageUpload(c)
	if !ok {
		return
	}

	details, err := h.AIService.ExtractCarDetails(c.Request.Context(), image, mimeType)
	if err != nil {
		h.Log.Errorw("car detail extraction failed", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to analyze image: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": details})
}

// ImageSearch is the handler for POST /v1/ai/image-search: a photo in,
// the make/bodyType/color guess out, for the client to feed into
// GET /v1/cars as regular filters.
func (h *Handlers) ImageSearch(c *gin.Context) {
	image, mimeType, ok := readImageUpload(c)
	if !ok {
		return
	}

	params, err := h.AIService.ExtractSearchParams(c.Request.Context(), image, mimeType)
	if err != nil {
		h.Log.Errorw("image search extraction failed", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to analyze image: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": params})
}

// readImageUpload pulls the "image" part out of a multipart form. On
// failure it writes the error response itself and returns ok=false.
func readImageUpload(c *gin.Context) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "An image file is required"})
		return nil, "", false
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "error": "Image is too large (10 MB max)"})
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to read image"})
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to read image"})
		return nil, "", false
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return data, mimeType, true
}
