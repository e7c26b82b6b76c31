package integration

import (
	"context"
	"testing"

	appcatalog "github.com/blueselfcheckout/backend/internal/application/catalog"
	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/blueselfcheckout/backend/internal/infrastructure/persistence"
	"github.com/blueselfcheckout/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(tdb *TestDB) {
	tdb.Seed(
		&models.ProductModel{ItemCode: "BURGER", ItemName: "Burger", Price: dec("90"), SellItem: "Y", Available: "Y", Enabled: "Y"},
		&models.ProductModel{ItemCode: "FRIES", ItemName: "Fries", Price: dec("30"), SellItem: "Y", Available: "Y", Enabled: "Y"},
		&models.ProductModel{ItemCode: "FRIES-L", ItemName: "Large fries", Price: dec("40"), SellItem: "Y", Available: "Y", Enabled: "Y"},
		&models.ProductModel{ItemCode: "SODA", ItemName: "Soda", Price: dec("20"), SellItem: "Y", Available: "Y", Enabled: "Y"},
		&models.ProductMaterialModel{ProductItemCode: "BURGER", ItemCode: "BUN", Quantity: dec("1"), IsPrimary: "N"},
		&models.ProductMaterialModel{ProductItemCode: "BURGER", ItemCode: "PATTY", Quantity: dec("1"), IsPrimary: "Y"},
		&models.CategoryModel{ItemCode: "COMBOS", ItemName: "Combos", Enabled: "Y"},
		&models.CategoryAccompanimentModel{CategoryItemCode: "COMBOS", LineNumber: 1, AccompanimentItemCode: "FRIES", EnlargementItemCode: "FRIES-L"},
		&models.ProductTreeModel{ItemCode: "COMBO1", ItemName: "Combo 1", Quantity: dec("1"), Enabled: "Y"},
		&models.ProductTreeItemModel{TreeItemCode: "COMBO1", LineNumber: 1, ItemCode: "BURGER", Quantity: dec("1")},
	)
}

func TestProductMaterials_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	seedCatalog(tdb)
	ctx := context.Background()
	svc := appcatalog.NewProductService(persistence.NewGormProductRepository(tdb.DB), nil)

	resp, err := svc.ReplaceMaterials(ctx, "BURGER", appcatalog.ReplaceMaterialsRequest{
		Materials: []appcatalog.MaterialRequest{
			{ItemCode: "PATTY", Quantity: dec("2"), IsPrimary: "Y"},
			{ItemCode: "CHEESE", Quantity: dec("1")},
			{ItemCode: "CHEESE", Quantity: dec("0.5")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Materials, 2)
	assert.Equal(t, "CHEESE", resp.Materials[0].ItemCode)
	assert.True(t, resp.Materials[0].Quantity.Equal(dec("0.5")))

	t.Run("empty list clears the recipe", func(t *testing.T) {
		resp, err := svc.ReplaceMaterials(ctx, "BURGER", appcatalog.ReplaceMaterialsRequest{Materials: []appcatalog.MaterialRequest{}})
		require.NoError(t, err)
		assert.Empty(t, resp.Materials)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.ReplaceMaterials(ctx, "NOPE", appcatalog.ReplaceMaterialsRequest{Materials: []appcatalog.MaterialRequest{}})
		assert.True(t, shared.IsCode(err, shared.CodeNotFound))
	})
}

func TestCategorySlots_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	seedCatalog(tdb)
	ctx := context.Background()
	svc := appcatalog.NewCategoryService(
		persistence.NewGormCategoryRepository(tdb.DB),
		persistence.NewGormProductRepository(tdb.DB),
	)

	resp, err := svc.ReconcileAccompaniments(ctx, "COMBOS", appcatalog.ReconcileSlotsRequest{
		Accompaniments: []appcatalog.SlotRequest{
			{LineNumber: 1, AccompanimentItemCode: "FRIES"},
			{AccompanimentItemCode: "SODA", Discount: dec("2.5")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Accompaniments, 2)
	assert.False(t, resp.Accompaniments[0].CanBeEnlarged)
	assert.Equal(t, 2, resp.Accompaniments[1].LineNumber)

	next, err := svc.NextLineNumber(ctx, "COMBOS")
	require.NoError(t, err)
	assert.Equal(t, 3, next.NextLineNumber)

	_, err = svc.ReconcileAccompaniments(ctx, "COMBOS", appcatalog.ReconcileSlotsRequest{
		Accompaniments: []appcatalog.SlotRequest{{AccompanimentItemCode: "SALAD"}},
	})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeValidation, de.Code)
	assert.Equal(t, []string{"SALAD"}, de.Details)
}

func TestProductTree_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	seedCatalog(tdb)
	ctx := context.Background()
	svc := appcatalog.NewProductTreeService(persistence.NewGormProductTreeRepository(tdb.DB))

	name := "Combo deluxe"
	resp, err := svc.Update(ctx, "COMBO1", appcatalog.UpdateProductTreeRequest{
		ItemName: &name,
		Items: []appcatalog.TreeItemRequest{
			{LineNumber: 1, ItemCode: "BURGER", Quantity: dec("1")},
			{ItemCode: "FRIES", Quantity: dec("1")},
			{ItemCode: "SODA", Quantity: dec("1")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Combo deluxe", resp.ItemName)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{resp.Items[0].LineNumber, resp.Items[1].LineNumber, resp.Items[2].LineNumber})

	t.Run("removing the tree cascades to its items", func(t *testing.T) {
		require.NoError(t, tdb.DB.Where("item_code = ?", "COMBO1").Delete(&models.ProductTreeModel{}).Error)

		var count int64
		require.NoError(t, tdb.DB.Model(&models.ProductTreeItemModel{}).Where("tree_item_code = ?", "COMBO1").Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestProductTreeCreate_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	seedCatalog(tdb)
	ctx := context.Background()
	svc := appcatalog.NewProductTreeService(persistence.NewGormProductTreeRepository(tdb.DB))

	resp, err := svc.Create(ctx, appcatalog.CreateProductTreeRequest{
		ItemCode: "COMBO2",
		ItemName: "Burger and soda",
		Quantity: dec("1"),
		Items: []appcatalog.TreeItemRequest{
			{ItemCode: "BURGER", Quantity: dec("1")},
			{ItemCode: "SODA", Quantity: dec("1")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, []int{1, 2}, []int{resp.Items[0].LineNumber, resp.Items[1].LineNumber})

	var count int64
	require.NoError(t, tdb.DB.Model(&models.ProductTreeItemModel{}).Where("tree_item_code = ?", "COMBO2").Count(&count).Error)
	assert.Equal(t, int64(2), count)

	t.Run("existing code conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, appcatalog.CreateProductTreeRequest{
			ItemCode: "COMBO1",
			ItemName: "Duplicate",
			Items:    []appcatalog.TreeItemRequest{{ItemCode: "SODA", Quantity: dec("1")}},
		})
		assert.True(t, shared.IsCode(err, shared.CodeConflict))
	})
}
