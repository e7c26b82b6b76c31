package catalog

import (
	"github.com/blueselfcheckout/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// MaterialRequest is one recipe material, keyed by item code
type MaterialRequest struct {
	ItemCode  string          `json:"item_code" binding:"required,max=50"`
	ItemName  string          `json:"item_name" binding:"max=200"`
	Quantity  decimal.Decimal `json:"quantity"`
	ImageURL  string          `json:"image_url" binding:"omitempty,max=500"`
	IsPrimary string          `json:"is_primary" binding:"omitempty,oneof=Y N"`
}

// ReplaceMaterialsRequest carries the full desired recipe of a product.
// A null materials field leaves the recipe as it is.
type ReplaceMaterialsRequest struct {
	Materials []MaterialRequest `json:"materials" binding:"omitempty,dive"`
}

// AccompanimentRequest is one side item of a product, keyed by item code
type AccompanimentRequest struct {
	ItemCode string          `json:"item_code" binding:"required,max=50"`
	ItemName string          `json:"item_name" binding:"max=200"`
	PriceOld decimal.Decimal `json:"price_old"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url" binding:"omitempty,max=500"`
}

// ReplaceAccompanimentsRequest carries the full desired side items of a product
type ReplaceAccompanimentsRequest struct {
	Accompaniments []AccompanimentRequest `json:"accompaniments" binding:"omitempty,dive"`
}

// ProductResponse represents a product header in API responses
type ProductResponse struct {
	ItemCode         string          `json:"item_code"`
	EANCode          string          `json:"ean_code"`
	ItemName         string          `json:"item_name"`
	FrgnName         string          `json:"frgn_name"`
	Price            decimal.Decimal `json:"price"`
	Discount         decimal.Decimal `json:"discount"`
	ImageURL         string          `json:"image_url"`
	Description      string          `json:"description"`
	SellItem         string          `json:"sell_item"`
	Available        string          `json:"available"`
	Enabled          string          `json:"enabled"`
	GroupItemCode    string          `json:"group_item_code"`
	CategoryItemCode string          `json:"category_item_code"`
	WaitingTime      int             `json:"waiting_time"`
	Rating           decimal.Decimal `json:"rating"`
}

// MaterialResponse represents a recipe material in API responses
type MaterialResponse struct {
	ProductItemCode string          `json:"product_item_code"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	ImageURL        string          `json:"image_url"`
	IsPrimary       string          `json:"is_primary"`
}

// AccompanimentResponse represents a product accompaniment in API responses
type AccompanimentResponse struct {
	ProductItemCode string          `json:"product_item_code"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	PriceOld        decimal.Decimal `json:"price_old"`
	Price           decimal.Decimal `json:"price"`
	ImageURL        string          `json:"image_url"`
}

// ProductDetailResponse is a product with its recipe and side items
type ProductDetailResponse struct {
	ProductResponse
	Materials      []MaterialResponse      `json:"materials"`
	Accompaniments []AccompanimentResponse `json:"accompaniments"`
}

// TreeItemRequest is one component line of a product tree. LineNumber zero
// marks a new line.
type TreeItemRequest struct {
	LineNumber int             `json:"line_number" binding:"min=0"`
	ItemCode   string          `json:"item_code" binding:"required,max=50"`
	ItemName   string          `json:"item_name" binding:"max=200"`
	Quantity   decimal.Decimal `json:"quantity"`
	ImageURL   string          `json:"image_url" binding:"omitempty,max=500"`
}

// CreateProductTreeRequest creates a tree together with its items
type CreateProductTreeRequest struct {
	ItemCode   string            `json:"item_code" binding:"required,max=50"`
	ItemName   string            `json:"item_name" binding:"required,max=200"`
	Quantity   decimal.Decimal   `json:"quantity"`
	Enabled    string            `json:"enabled" binding:"omitempty,oneof=Y N"`
	DataSource string            `json:"data_source" binding:"omitempty,max=1"`
	Items      []TreeItemRequest `json:"items" binding:"omitempty,dive"`
}

func (r CreateProductTreeRequest) toDomain() catalog.ProductTree {
	return catalog.ProductTree{
		ItemCode:   r.ItemCode,
		ItemName:   r.ItemName,
		Quantity:   r.Quantity,
		Enabled:    r.Enabled,
		DataSource: r.DataSource,
	}
}

// UpdateProductTreeRequest changes the tree header and reconciles its items
type UpdateProductTreeRequest struct {
	ItemName   *string           `json:"item_name" binding:"omitempty,min=1,max=200"`
	Quantity   *decimal.Decimal  `json:"quantity"`
	Enabled    *string           `json:"enabled" binding:"omitempty,oneof=Y N"`
	DataSource *string           `json:"data_source" binding:"omitempty,max=1"`
	Items      []TreeItemRequest `json:"items" binding:"omitempty,dive"`
}

// TreeItemResponse represents a product tree line in API responses
type TreeItemResponse struct {
	TreeItemCode string          `json:"tree_item_code"`
	LineNumber   int             `json:"line_number"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	ImageURL     string          `json:"image_url"`
}

// ProductTreeResponse represents a product tree in API responses
type ProductTreeResponse struct {
	ItemCode   string             `json:"item_code"`
	ItemName   string             `json:"item_name"`
	Quantity   decimal.Decimal    `json:"quantity"`
	Enabled    string             `json:"enabled"`
	DataSource string             `json:"data_source"`
	Items      []TreeItemResponse `json:"items"`
}

// SlotRequest is one accompaniment slot of a category. LineNumber zero marks
// a new slot.
type SlotRequest struct {
	LineNumber            int             `json:"line_number" binding:"min=0"`
	AccompanimentItemCode string          `json:"accompaniment_item_code" binding:"required,max=50"`
	Discount              decimal.Decimal `json:"discount"`
	EnlargementItemCode   string          `json:"enlargement_item_code" binding:"omitempty,max=50"`
	EnlargementDiscount   decimal.Decimal `json:"enlargement_discount"`
}

// ReconcileSlotsRequest carries the full desired slot list of a category
type ReconcileSlotsRequest struct {
	Accompaniments []SlotRequest `json:"accompaniments" binding:"omitempty,dive"`
}

// SlotResponse represents a category accompaniment slot in API responses
type SlotResponse struct {
	CategoryItemCode      string          `json:"category_item_code"`
	LineNumber            int             `json:"line_number"`
	AccompanimentItemCode string          `json:"accompaniment_item_code"`
	Discount              decimal.Decimal `json:"discount"`
	EnlargementItemCode   string          `json:"enlargement_item_code"`
	EnlargementDiscount   decimal.Decimal `json:"enlargement_discount"`
	CanBeEnlarged         bool            `json:"can_be_enlarged"`
}

// CategorySlotsResponse is a category with its accompaniment slots
type CategorySlotsResponse struct {
	ItemCode       string         `json:"item_code"`
	ItemName       string         `json:"item_name"`
	Accompaniments []SlotResponse `json:"accompaniments"`
}

// NextLineNumberResponse is the line number a new slot would receive
type NextLineNumberResponse struct {
	CategoryItemCode string `json:"category_item_code"`
	NextLineNumber   int    `json:"next_line_number"`
}

func materialsToDomain(reqs []MaterialRequest) []catalog.ProductMaterial {
	if reqs == nil {
		return nil
	}
	out := make([]catalog.ProductMaterial, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, catalog.ProductMaterial{
			ItemCode:  r.ItemCode,
			ItemName:  r.ItemName,
			Quantity:  r.Quantity,
			ImageURL:  r.ImageURL,
			IsPrimary: r.IsPrimary,
		})
	}
	return out
}

func accompanimentsToDomain(reqs []AccompanimentRequest) []catalog.ProductAccompaniment {
	if reqs == nil {
		return nil
	}
	out := make([]catalog.ProductAccompaniment, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, catalog.ProductAccompaniment{
			ItemCode: r.ItemCode,
			ItemName: r.ItemName,
			PriceOld: r.PriceOld,
			Price:    r.Price,
			ImageURL: r.ImageURL,
		})
	}
	return out
}

func treeItemsToDomain(reqs []TreeItemRequest) []catalog.ProductTreeItem {
	if reqs == nil {
		return nil
	}
	out := make([]catalog.ProductTreeItem, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, catalog.ProductTreeItem{
			LineNumber: r.LineNumber,
			ItemCode:   r.ItemCode,
			ItemName:   r.ItemName,
			Quantity:   r.Quantity,
			ImageURL:   r.ImageURL,
		})
	}
	return out
}

func slotsToDomain(reqs []SlotRequest) []catalog.CategoryAccompaniment {
	if reqs == nil {
		return nil
	}
	out := make([]catalog.CategoryAccompaniment, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, catalog.CategoryAccompaniment{
			LineNumber:            r.LineNumber,
			AccompanimentItemCode: r.AccompanimentItemCode,
			Discount:              r.Discount,
			EnlargementItemCode:   r.EnlargementItemCode,
			EnlargementDiscount:   r.EnlargementDiscount,
		})
	}
	return out
}

func (r UpdateProductTreeRequest) applyTo(t *catalog.ProductTree) {
	if r.ItemName != nil {
		t.ItemName = *r.ItemName
	}
	if r.Quantity != nil {
		t.Quantity = *r.Quantity
	}
	if r.Enabled != nil {
		t.Enabled = *r.Enabled
	}
	if r.DataSource != nil {
		t.DataSource = *r.DataSource
	}
}

// ToProductDetailResponse converts a product detail to the API shape
func ToProductDetailResponse(d *catalog.ProductDetail) *ProductDetailResponse {
	p := d.Product
	resp := &ProductDetailResponse{
		ProductResponse: ProductResponse{
			ItemCode:         p.ItemCode,
			EANCode:          p.EANCode,
			ItemName:         p.ItemName,
			FrgnName:         p.FrgnName,
			Price:            p.Price,
			Discount:         p.Discount,
			ImageURL:         p.ImageURL,
			Description:      p.Description,
			SellItem:         p.SellItem,
			Available:        p.Available,
			Enabled:          p.Enabled,
			GroupItemCode:    p.GroupItemCode,
			CategoryItemCode: p.CategoryItemCode,
			WaitingTime:      p.WaitingTime,
			Rating:           p.Rating,
		},
		Materials:      make([]MaterialResponse, 0, len(d.Materials)),
		Accompaniments: make([]AccompanimentResponse, 0, len(d.Accompaniments)),
	}
	for _, m := range d.Materials {
		resp.Materials = append(resp.Materials, MaterialResponse(m))
	}
	for _, a := range d.Accompaniments {
		resp.Accompaniments = append(resp.Accompaniments, AccompanimentResponse(a))
	}
	return resp
}

// ToProductTreeResponse converts a tree and its items to the API shape
func ToProductTreeResponse(t catalog.ProductTree, items []catalog.ProductTreeItem) *ProductTreeResponse {
	resp := &ProductTreeResponse{
		ItemCode:   t.ItemCode,
		ItemName:   t.ItemName,
		Quantity:   t.Quantity,
		Enabled:    t.Enabled,
		DataSource: t.DataSource,
		Items:      make([]TreeItemResponse, 0, len(items)),
	}
	for _, i := range items {
		resp.Items = append(resp.Items, TreeItemResponse(i))
	}
	return resp
}

// ToCategorySlotsResponse converts a category and its slots to the API shape
func ToCategorySlotsResponse(c catalog.Category, slots []catalog.CategoryAccompaniment) *CategorySlotsResponse {
	resp := &CategorySlotsResponse{
		ItemCode:       c.ItemCode,
		ItemName:       c.ItemName,
		Accompaniments: make([]SlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Accompaniments = append(resp.Accompaniments, SlotResponse{
			CategoryItemCode:      s.CategoryItemCode,
			LineNumber:            s.LineNumber,
			AccompanimentItemCode: s.AccompanimentItemCode,
			Discount:              s.Discount,
			EnlargementItemCode:   s.EnlargementItemCode,
			EnlargementDiscount:   s.EnlargementDiscount,
			CanBeEnlarged:         s.CanBeEnlarged(),
		})
	}
	return resp
}
