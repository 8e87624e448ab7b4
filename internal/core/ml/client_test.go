package ml

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smart-pantry-chef/internal/infrastructure/config"
	"smart-pantry-chef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(config.MLConfig{BaseURL: url, Timeout: 2 * time.Second})
}

func TestPredictIngredients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict-image", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)

		assert.Equal(t, "fridge.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, []byte("png-bytes"), data)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ingredients":["tomato","egg"]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).PredictIngredients(context.Background(), Upload{
		Filename:    "fridge.png",
		ContentType: "image/png",
		Data:        []byte("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tomato", "egg"}, got)
}

func TestPredictIngredientsMissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"labels":[]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).PredictIngredients(context.Background(), Upload{Filename: "a.jpg", Data: []byte("x")})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPredictIngredientsServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).PredictIngredients(context.Background(), Upload{Filename: "a.jpg", Data: []byte("x")})
	require.Error(t, err)

	ce, ok := common.AsCustomError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, ce.Status)
	assert.Equal(t, "Failed to process image", ce.Message)
}
