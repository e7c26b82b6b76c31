package handler

import (
	"net/http"
	"testing"

	catalogapp "github.com/blueselfcheckout/backend/internal/application/catalog"
	"github.com/blueselfcheckout/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler(t *testing.T) {
	s := newTestServer(t)
	s.seedCatalog(t)

	t.Run("get", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/products/BURGER", nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeData[catalogapp.ProductDetailResponse](t, w)
		assert.Equal(t, "Burger", got.ItemName)
		assert.Len(t, got.Materials, 1)
	})

	t.Run("replace materials", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/v1/products/BURGER/materials", map[string]any{
			"materials": []map[string]any{
				{"item_code": "PATTY", "quantity": "1", "is_primary": "Y"},
				{"item_code": "CHEESE", "quantity": "2"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decodeData[catalogapp.ProductDetailResponse](t, w)
		require.Len(t, got.Materials, 2)
		assert.Equal(t, "CHEESE", got.Materials[0].ItemCode)
		assert.Equal(t, "PATTY", got.Materials[1].ItemCode)
	})

	t.Run("blank material key", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/v1/products/BURGER/materials", map[string]any{
			"materials": []map[string]any{{"quantity": "1"}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("replace accompaniments", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/v1/products/BURGER/accompaniments", map[string]any{
			"accompaniments": []map[string]any{
				{"item_code": "SODA", "price": "15", "price_old": "20"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decodeData[catalogapp.ProductDetailResponse](t, w)
		require.Len(t, got.Accompaniments, 1)
		assert.True(t, got.Accompaniments[0].Price.Equal(decimal.NewFromInt(15)))
	})

	t.Run("unknown product", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/v1/products/NOPE/materials", map[string]any{"materials": []any{}})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductTreeHandler(t *testing.T) {
	s := newTestServer(t)
	s.seedCatalog(t)

	w := s.do(t, http.MethodPut, "/api/v1/product-trees/COMBO1", map[string]any{
		"item_name": "Combo 1 large",
		"items": []map[string]any{
			{"line_number": 1, "item_code": "BURGER", "quantity": "1"},
			{"item_code": "FRIES-L", "quantity": "1"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decodeData[catalogapp.ProductTreeResponse](t, w)
	assert.Equal(t, "Combo 1 large", got.ItemName)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Items[1].LineNumber)

	w = s.do(t, http.MethodGet, "/api/v1/product-trees/COMBO1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData[catalogapp.ProductTreeResponse](t, w).Items, 2)

	w = s.do(t, http.MethodGet, "/api/v1/product-trees/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductTreeHandler_Create(t *testing.T) {
	s := newTestServer(t)
	s.seedCatalog(t)

	w := s.do(t, http.MethodPost, "/api/v1/product-trees", map[string]any{
		"item_code": "COMBO2",
		"item_name": "Combo 2",
		"quantity":  "1",
		"items": []map[string]any{
			{"item_code": "BURGER", "quantity": "1"},
			{"item_code": "SODA", "quantity": "1"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decodeData[catalogapp.ProductTreeResponse](t, w)
	assert.Equal(t, "Y", got.Enabled)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 1, got.Items[0].LineNumber)
	assert.Equal(t, 2, got.Items[1].LineNumber)
	assert.Equal(t, "COMBO2", got.Items[1].TreeItemCode)

	w = s.do(t, http.MethodGet, "/api/v1/product-trees/COMBO2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData[catalogapp.ProductTreeResponse](t, w).Items, 2)

	t.Run("existing item code", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/product-trees", map[string]any{"item_code": "COMBO2", "item_name": "Dup"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeConflict, decodeResponse(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("missing item name", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/product-trees", map[string]any{"item_code": "COMBO3"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w.Body.Bytes())
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "item_name: This field is required")
	})
}

func TestCategoryHandler(t *testing.T) {
	s := newTestServer(t)
	s.seedCatalog(t)

	t.Run("list", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/categories/COMBOS/accompaniments", nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeData[catalogapp.CategorySlotsResponse](t, w)
		require.Len(t, got.Accompaniments, 1)
		assert.True(t, got.Accompaniments[0].CanBeEnlarged)
	})

	t.Run("missing products are reported", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/v1/categories/COMBOS/accompaniments", map[string]any{
			"accompaniments": []map[string]any{
				{"accompaniment_item_code": "SALAD"},
			},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w.Body.Bytes())
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, []string{"SALAD"}, resp.Error.Details)
	})

	t.Run("reconcile", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/v1/categories/COMBOS/accompaniments", map[string]any{
			"accompaniments": []map[string]any{
				{"line_number": 1, "accompaniment_item_code": "FRIES", "enlargement_item_code": "FRIES-L"},
				{"accompaniment_item_code": "SODA"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decodeData[catalogapp.CategorySlotsResponse](t, w)
		require.Len(t, got.Accompaniments, 2)
		assert.Equal(t, 2, got.Accompaniments[1].LineNumber)
	})

	t.Run("next line number", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/categories/COMBOS/accompaniments/next-line-number", nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeData[catalogapp.NextLineNumberResponse](t, w)
		assert.Equal(t, 3, got.NextLineNumber)
		assert.Equal(t, "COMBOS", got.CategoryItemCode)
	})
}
