package ml

import (
	"context"
	"errors"
	"io"
	"net/http"

	"smart-pantry-chef/internal/core/image"
	coreML "smart-pantry-chef/internal/core/ml"
	"smart-pantry-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Predictor image classification
type Predictor interface {
	PredictIngredients(ctx context.Context, upload coreML.Upload) ([]string, error)
}

// Handler image upload endpoint
type Handler struct {
	predictor Predictor
	images    *image.Service
	maxBytes  int64
}

// NewHandler creates an ML Handler
func NewHandler(predictor Predictor, images *image.Service, maxBytes int64) *Handler {
	return &Handler{
		predictor: predictor,
		images:    images,
		maxBytes:  maxBytes,
	}
}

// PredictImage POST /api/ml/predict-image
func (h *Handler) PredictImage(c *gin.Context) {
	requestID := common.RequestIDFromContext(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			common.RespondError(c, http.StatusBadRequest, "File too large", err)
			return
		}
		common.RespondError(c, http.StatusBadRequest, "No file uploaded", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "No file uploaded", err)
		return
	}
	defer file.Close()

	// one extra byte so oversized files are detected without reading them whole
	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to process image", err)
		return
	}

	info, err := h.images.Validate(data)
	if err != nil {
		common.LogWarn("Rejected upload",
			zap.Error(err),
			zap.String("filename", fileHeader.Filename),
			zap.String("request_id", requestID),
		)
		common.RespondCustomError(c, err, "Invalid image")
		return
	}

	if !info.Recognized {
		common.LogWarn("Upload is not a recognized image format, forwarding anyway",
			zap.String("filename", fileHeader.Filename),
			zap.String("content_type", info.ContentType),
			zap.String("request_id", requestID),
		)
	}

	common.LogInfo("Forwarding image to ML service",
		zap.String("filename", fileHeader.Filename),
		zap.String("format", info.Format),
		zap.Int("size", info.Size),
		zap.String("request_id", requestID),
	)

	ingredients, err := h.predictor.PredictIngredients(c.Request.Context(), coreML.Upload{
		Filename:    fileHeader.Filename,
		ContentType: info.ContentType,
		Data:        data,
	})
	if err != nil {
		common.RespondCustomError(c, err, "Failed to process image")
		return
	}

	common.RespondSuccess(c, http.StatusOK, gin.H{
		"data": gin.H{"ingredients": ingredients},
	})
}
