package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"smart-pantry-chef/internal/core/translation"
	"smart-pantry-chef/internal/infrastructure/config"
	"smart-pantry-chef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Recipe provider recipe, relayed as-is
type Recipe = json.RawMessage

// IngredientNormalizer translates ingredient lists into the provider's language
type IngredientNormalizer interface {
	Normalize(ctx context.Context, ingredients []string) translation.Result
}

// SearchResult recipes matching an ingredient list
type SearchResult struct {
	Recipes     []Recipe
	Ingredients []string // ingredients as sent to the provider
	Warnings    []string // ingredients that could not be translated
}

// Gateway Spoonacular recipe search client
type Gateway struct {
	config     config.RecipeConfig
	client     *resty.Client
	normalizer IngredientNormalizer
}

// NewGateway creates a Gateway
func NewGateway(cfg config.RecipeConfig, normalizer IngredientNormalizer) *Gateway {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Gateway{
		config:     cfg,
		client:     client,
		normalizer: normalizer,
	}
}

// FindByIngredients returns up to the configured number of recipes using the given
// ingredients. An empty list returns no recipes without calling the provider.
func (g *Gateway) FindByIngredients(ctx context.Context, ingredients []string) (*SearchResult, error) {
	if len(ingredients) == 0 {
		return &SearchResult{Recipes: []Recipe{}, Ingredients: []string{}}, nil
	}

	if g.config.APIKey == "" {
		common.LogError("SPOONACULAR_API_KEY is not defined")
		return nil, common.NewError(common.ErrCodeConfiguration, "Server configuration error", http.StatusInternalServerError,
			errors.New("API key not configured"))
	}

	normalized := g.normalizer.Normalize(ctx, ingredients)
	common.LogInfo("Searching recipes by ingredients",
		zap.Strings("original", ingredients),
		zap.Strings("translated", normalized.Ingredients),
		zap.String("request_id", common.RequestIDFromContext(ctx)),
	)

	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ingredients": strings.Join(normalized.Ingredients, ","),
			"number":      strconv.Itoa(g.config.ResultCount),
			"ranking":     strconv.Itoa(g.config.Ranking),
			"apiKey":      g.config.APIKey,
		}).
		Get("/recipes/findByIngredients")
	if err = g.checkResponse(resp, err, "No response from recipe service", "Failed to fetch recipes"); err != nil {
		common.LogProviderCall("spoonacular", "findByIngredients", time.Since(start), err, common.RequestIDFromContext(ctx))
		return nil, err
	}

	var recipes []Recipe
	if err := common.ParseJSONBytes(resp.Body(), &recipes); err != nil {
		err = common.NewError(common.ErrCodeUpstream, "Failed to fetch recipes", http.StatusInternalServerError,
			fmt.Errorf("failed to parse recipe search response: %w", err))
		common.LogProviderCall("spoonacular", "findByIngredients", time.Since(start), err, common.RequestIDFromContext(ctx))
		return nil, err
	}
	if recipes == nil {
		recipes = []Recipe{}
	}
	common.LogProviderCall("spoonacular", "findByIngredients", time.Since(start), nil, common.RequestIDFromContext(ctx))

	common.LogInfo("Successfully fetched recipes", zap.Int("count", len(recipes)))

	return &SearchResult{
		Recipes:     recipes,
		Ingredients: normalized.Ingredients,
		Warnings:    normalized.Fallbacks,
	}, nil
}

// GetByID returns recipe detail including nutrition.
func (g *Gateway) GetByID(ctx context.Context, id string) (Recipe, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, common.NewError(common.ErrCodeInvalidRequest, "Recipe ID is required", http.StatusBadRequest, nil)
	}

	if g.config.APIKey == "" {
		return nil, common.NewError(common.ErrCodeConfiguration, "API key not configured", http.StatusInternalServerError, nil)
	}

	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetQueryParams(map[string]string{
			"apiKey":           g.config.APIKey,
			"includeNutrition": "true",
		}).
		Get("/recipes/{id}/information")
	if err = g.checkResponse(resp, err, "Failed to fetch recipe", "Failed to fetch recipe"); err != nil {
		common.LogProviderCall("spoonacular", "information", time.Since(start), err, common.RequestIDFromContext(ctx))
		return nil, err
	}

	var recipe Recipe
	if err := common.ParseJSONBytes(resp.Body(), &recipe); err != nil {
		err = common.NewError(common.ErrCodeUpstream, "Failed to fetch recipe", http.StatusInternalServerError,
			fmt.Errorf("failed to parse recipe detail response: %w", err))
		common.LogProviderCall("spoonacular", "information", time.Since(start), err, common.RequestIDFromContext(ctx))
		return nil, err
	}
	common.LogProviderCall("spoonacular", "information", time.Since(start), nil, common.RequestIDFromContext(ctx))

	return recipe, nil
}

// checkResponse separates "no response" (transport failure, timeout) from an error
// response, which keeps the provider's status and message.
func (g *Gateway) checkResponse(resp *resty.Response, err error, noResponseMessage, errorMessage string) error {
	if err != nil {
		if isTimeout(err) {
			err = fmt.Errorf("recipe provider timed out after %s: %w", g.config.Timeout, err)
		}
		return common.NewError(common.ErrCodeUpstreamNoResponse, noResponseMessage, http.StatusInternalServerError, err)
	}

	if resp.IsError() {
		status := resp.StatusCode()
		message := common.ProviderMessage(resp.Body())
		if message == "" {
			message = errorMessage
		}
		return common.NewError(common.ErrCodeUpstream, message, status,
			fmt.Errorf("recipe provider returned status %d", status))
	}

	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
