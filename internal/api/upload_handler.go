package api

import (
	"fmt"
	"net/http"
	"strings"

	"lfmachado/gym-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadHandler hands out presigned URLs for exercise demonstration
// videos. The video bytes go straight between the client and the bucket.
type UploadHandler struct {
	fileStorage storage.FileStorage
}

func NewUploadHandler(fileStorage storage.FileStorage) *UploadHandler {
	return &UploadHandler{fileStorage: fileStorage}
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type UploadURLResponse struct {
	ObjectKey string `json:"objectKey"`
	UploadURL string `json:"uploadUrl"`
}

type DownloadURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// CreateVideoUploadURL mints a presigned PUT URL under the trainer's key
// prefix. The returned objectKey is what the client stores on the exercise
// as its videoUrl reference.
func (h *UploadHandler) CreateVideoUploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "contentType is required.")
		return
	}

	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}

	objectKey := fmt.Sprintf("videos/%s/%s", trainerID.Hex(), uuid.NewString())
	url, err := h.fileStorage.GeneratePresignedUploadURL(c.Request.Context(), objectKey, req.ContentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not generate upload URL.")
		return
	}

	c.JSON(http.StatusOK, UploadURLResponse{
		ObjectKey: objectKey,
		UploadURL: url,
	})
}

// DeleteVideo removes a stored video object, for when an exercise drops
// its videoUrl reference. Only keys under the caller's own prefix are
// deletable.
func (h *UploadHandler) DeleteVideo(c *gin.Context) {
	objectKey := c.Query("objectKey")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "objectKey query parameter is required.")
		return
	}

	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}
	if !strings.HasPrefix(objectKey, "videos/"+trainerID.Hex()+"/") {
		abortWithError(c, http.StatusForbidden, "Object does not belong to this trainer.")
		return
	}

	if err := h.fileStorage.DeleteObject(c.Request.Context(), objectKey); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not delete object.")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetVideoDownloadURL mints a presigned GET URL for a stored video.
func (h *UploadHandler) GetVideoDownloadURL(c *gin.Context) {
	objectKey := c.Query("objectKey")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "objectKey query parameter is required.")
		return
	}

	url, err := h.fileStorage.GeneratePresignedDownloadURL(c.Request.Context(), objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not generate download URL.")
		return
	}
	c.JSON(http.StatusOK, DownloadURLResponse{DownloadURL: url})
}
