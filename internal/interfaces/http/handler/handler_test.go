package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/blueselfcheckout/backend/internal/application/catalog"
	salesapp "github.com/blueselfcheckout/backend/internal/application/sales"
	"github.com/blueselfcheckout/backend/internal/infrastructure/persistence"
	"github.com/blueselfcheckout/backend/internal/infrastructure/persistence/models"
	"github.com/blueselfcheckout/backend/internal/interfaces/http/middleware"
	"github.com/blueselfcheckout/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	db     *gorm.DB
	router *gin.Engine
}

// newTestServer wires the handlers over a fresh SQLite database the way the
// router does under /api/v1.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewSQLiteDB(t)

	products := persistence.NewGormProductRepository(db)
	orders := NewOrderHandler(salesapp.NewOrderService(persistence.NewGormOrderRepository(db)))
	productHandler := NewProductHandler(catalogapp.NewProductService(products, nil))
	trees := NewProductTreeHandler(catalogapp.NewProductTreeService(persistence.NewGormProductTreeRepository(db)))
	categories := NewCategoryHandler(catalogapp.NewCategoryService(persistence.NewGormCategoryRepository(db), products))

	router := gin.New()
	router.Use(middleware.RequestID())
	v1 := router.Group("/api/v1")
	v1.GET("/orders", orders.List)
	v1.POST("/orders", orders.Create)
	v1.GET("/orders/:id", orders.GetByID)
	v1.PUT("/orders/:id", orders.Update)
	v1.DELETE("/orders/:id", orders.Delete)
	v1.GET("/products/:code", productHandler.GetByCode)
	v1.PUT("/products/:code/materials", productHandler.ReplaceMaterials)
	v1.PUT("/products/:code/accompaniments", productHandler.ReplaceAccompaniments)
	v1.POST("/product-trees", trees.Create)
	v1.GET("/product-trees/:code", trees.GetByCode)
	v1.PUT("/product-trees/:code", trees.Update)
	v1.GET("/categories/:code/accompaniments", categories.GetAccompaniments)
	v1.PUT("/categories/:code/accompaniments", categories.ReconcileAccompaniments)
	v1.GET("/categories/:code/accompaniments/next-line-number", categories.NextLineNumber)

	return &testServer{db: db, router: router}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a success envelope into T.
func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.True(t, envelope.Success, w.Body.String())
	return envelope.Data
}

func (s *testServer) seedCatalog(t *testing.T) {
	t.Helper()
	d := decimal.NewFromInt
	rows := []any{
		&models.ProductModel{ItemCode: "BURGER", ItemName: "Burger", Price: d(90), SellItem: "Y", Available: "Y", Enabled: "Y"},
		&models.ProductModel{ItemCode: "FRIES", ItemName: "Fries", Price: d(30), SellItem: "Y", Available: "Y", Enabled: "Y"},
		&models.ProductModel{ItemCode: "FRIES-L", ItemName: "Large fries", Price: d(40), SellItem: "Y", Available: "Y", Enabled: "Y"},
		&models.ProductModel{ItemCode: "SODA", ItemName: "Soda", Price: d(20), SellItem: "Y", Available: "Y", Enabled: "Y"},
		&models.ProductMaterialModel{ProductItemCode: "BURGER", ItemCode: "BUN", Quantity: d(1), IsPrimary: "N"},
		&models.CategoryModel{ItemCode: "COMBOS", ItemName: "Combos", Enabled: "Y"},
		&models.CategoryAccompanimentModel{CategoryItemCode: "COMBOS", LineNumber: 1, AccompanimentItemCode: "FRIES", EnlargementItemCode: "FRIES-L"},
		&models.ProductTreeModel{ItemCode: "COMBO1", ItemName: "Combo 1", Quantity: d(1), Enabled: "Y"},
		&models.ProductTreeItemModel{TreeItemCode: "COMBO1", LineNumber: 1, ItemCode: "BURGER", Quantity: d(1)},
	}
	for _, row := range rows {
		require.NoError(t, s.db.Create(row).Error)
	}
}
