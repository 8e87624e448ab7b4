package recipe

import (
	"context"
	"net/http"
	"strings"

	coreRecipe "smart-pantry-chef/internal/core/recipe"
	"smart-pantry-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gateway recipe provider operations used by the handler
type Gateway interface {
	FindByIngredients(ctx context.Context, ingredients []string) (*coreRecipe.SearchResult, error)
	GetByID(ctx context.Context, id string) (coreRecipe.Recipe, error)
}

// ByIngredientsRequest recipe search body. Ingredients is a pointer so a missing
// field can be told apart from an empty list.
type ByIngredientsRequest struct {
	Ingredients *[]string `json:"ingredients"`
}

// Handler recipe endpoints
type Handler struct {
	gateway Gateway
}

// NewHandler creates a recipe Handler
func NewHandler(gateway Gateway) *Handler {
	return &Handler{
		gateway: gateway,
	}
}

// FindByIngredients POST /api/recipes/by-ingredients
func (h *Handler) FindByIngredients(c *gin.Context) {
	requestID := common.RequestIDFromContext(c.Request.Context())

	var req ByIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Ingredients == nil {
		common.LogWarn("Invalid ingredients payload",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.RespondError(c, http.StatusBadRequest, "Invalid ingredients. Expected an array of ingredients.", err)
		return
	}

	ingredients := make([]string, 0, len(*req.Ingredients))
	for _, ing := range *req.Ingredients {
		if trimmed := strings.TrimSpace(ing); trimmed != "" {
			ingredients = append(ingredients, trimmed)
		}
	}

	result, err := h.gateway.FindByIngredients(c.Request.Context(), ingredients)
	if err != nil {
		common.LogError("Recipe search failed",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.RespondCustomError(c, err, "Failed to fetch recipes")
		return
	}

	payload := gin.H{"recipes": result.Recipes}
	if len(result.Warnings) > 0 {
		payload["warnings"] = result.Warnings
	}
	common.RespondSuccess(c, http.StatusOK, payload)
}

// GetByID GET /api/recipes/:id
func (h *Handler) GetByID(c *gin.Context) {
	recipe, err := h.gateway.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.LogError("Recipe detail fetch failed",
			zap.Error(err),
			zap.String("recipe_id", c.Param("id")),
			zap.String("request_id", common.RequestIDFromContext(c.Request.Context())),
		)
		common.RespondCustomError(c, err, "Failed to fetch recipe")
		return
	}

	common.RespondSuccess(c, http.StatusOK, gin.H{
		"recipe": recipe,
	})
}
