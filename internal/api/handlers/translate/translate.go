package translate

import (
	"net/http"
	"strings"

	"smart-pantry-chef/internal/core/translation"
	"smart-pantry-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultSource language used when a request names none
const DefaultSource = "en"

// Request translation body
type Request struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Handler translation endpoint
type Handler struct {
	translator translation.TextTranslator
}

// NewHandler creates a translation Handler
func NewHandler(translator translation.TextTranslator) *Handler {
	return &Handler{
		translator: translator,
	}
}

// Translate POST /api/translate
func (h *Handler) Translate(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.Target) == "" {
		common.RespondError(c, http.StatusBadRequest, "text and target are required", err)
		return
	}

	source := req.Source
	if source == "" {
		source = DefaultSource
	}

	translated, err := h.translator.Translate(c.Request.Context(), req.Text, source, req.Target)
	if err != nil {
		common.LogError("Translation error",
			zap.Error(err),
			zap.String("request_id", common.RequestIDFromContext(c.Request.Context())),
		)
		common.RespondError(c, http.StatusInternalServerError, "Translation failed", err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, gin.H{
		"translatedText": translated,
	})
}
