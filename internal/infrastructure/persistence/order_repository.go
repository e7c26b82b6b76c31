package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/blueselfcheckout/backend/internal/domain/sales"
	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/blueselfcheckout/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	*CollectionStore[int64, sales.Order, sales.OrderLine, models.OrderModel, models.OrderLineModel]
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		CollectionStore: newCollectionStore(db, collectionSchema[int64, sales.Order, sales.OrderLine, models.OrderModel, models.OrderLineModel]{
			parentResource: "order",
			childResource:  "order line",
			parentWhere:    func(id int64) map[string]any { return map[string]any{"id": id} },
			childrenWhere:  func(id int64) map[string]any { return map[string]any{"order_id": id} },
			childOrder:     "line_id",
			parentKey:      func(o sales.Order) any { return o.ID },
			childKey:       func(l sales.OrderLine) any { return fmt.Sprintf("%d/%d", l.OrderID, l.LineID) },
			parentModel:    models.OrderModelFromDomain,
			parentDomain:   (*models.OrderModel).ToDomain,
			childModel:     models.OrderLineModelFromDomain,
			childDomain:    (*models.OrderLineModel).ToDomain,
		}),
		db: db,
	}
}

// Create inserts the header, then its lines, in one transaction. order.ID
// and each line's OrderID are set only once the transaction commits.
func (r *GormOrderRepository) Create(ctx context.Context, order *sales.Order, lines []sales.OrderLine) error {
	m := models.OrderModelFromDomain(*order)
	m.ID = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return translateError(err, "order", order.FolioNumber)
		}
		if len(lines) == 0 {
			return nil
		}
		rows := make([]*models.OrderLineModel, len(lines))
		for i, l := range lines {
			l.OrderID = m.ID
			rows[i] = models.OrderLineModelFromDomain(l)
		}
		if err := tx.Create(rows).Error; err != nil {
			return translateError(err, "order line", m.ID)
		}
		return nil
	})
	if err != nil {
		if shared.CodeOf(err) == "" {
			return shared.NewTransactionFailure("failed to create order", err)
		}
		return err
	}

	order.ID = m.ID
	for i := range lines {
		lines[i].OrderID = m.ID
	}
	return nil
}

// Delete removes the order and its lines.
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLineModel{}).Error; err != nil {
			return translateError(err, "order line", id)
		}
		res := tx.Where("id = ?", id).Delete(&models.OrderModel{})
		if res.Error != nil {
			return translateError(res.Error, "order", id)
		}
		if res.RowsAffected == 0 {
			return translateError(gorm.ErrRecordNotFound, "order", id)
		}
		return nil
	})
}

// List returns one page of orders with their lines. Lines for the whole page
// are fetched with a single query.
func (r *GormOrderRepository) List(ctx context.Context, filter sales.OrderFilter) ([]sales.OrderWithLines, int64, error) {
	filter.Filter = filter.Normalize()
	query := applyOrderFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "orders", "count")
	}
	if total == 0 {
		return []sales.OrderWithLines{}, 0, nil
	}

	sortField := ValidateSortField(filter.OrderBy, OrderSortFields, "id")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	order := sortField + " " + sortOrder
	if sortField != "id" {
		order += ", id ASC"
	}

	var headers []models.OrderModel
	if err := query.Order(order).Offset(filter.Offset()).Limit(filter.PageSize).Find(&headers).Error; err != nil {
		return nil, 0, translateError(err, "orders", "page")
	}
	if len(headers) == 0 {
		return []sales.OrderWithLines{}, total, nil
	}

	ids := make([]int64, len(headers))
	for i := range headers {
		ids[i] = headers[i].ID
	}
	var lineRows []models.OrderLineModel
	if err := r.db.WithContext(ctx).Where("order_id IN ?", ids).Order("order_id, line_id").Find(&lineRows).Error; err != nil {
		return nil, 0, translateError(err, "order lines", "page")
	}
	byOrder := make(map[int64][]sales.OrderLine, len(headers))
	for i := range lineRows {
		byOrder[lineRows[i].OrderID] = append(byOrder[lineRows[i].OrderID], lineRows[i].ToDomain())
	}

	out := make([]sales.OrderWithLines, len(headers))
	for i := range headers {
		lines := byOrder[headers[i].ID]
		if lines == nil {
			lines = []sales.OrderLine{}
		}
		out[i] = sales.OrderWithLines{Order: headers[i].ToDomain(), Lines: lines}
	}
	return out, total, nil
}

// applyOrderFilter applies the filter conditions without pagination or ordering
func applyOrderFilter(query *gorm.DB, filter sales.OrderFilter) *gorm.DB {
	if s := strings.ToLower(strings.TrimSpace(filter.Search)); s != "" {
		like := "%" + s + "%"
		query = query.Where(
			"LOWER(folio_prefix) LIKE ? OR LOWER(folio_number) LIKE ? OR LOWER(customer_code) LIKE ? OR "+
				"LOWER(customer_name) LIKE ? OR LOWER(nick_name) LIKE ? OR LOWER(device_code) LIKE ? OR LOWER(comments) LIKE ?",
			like, like, like, like, like, like, like,
		)
	}
	if filter.CustomerCode != "" {
		query = query.Where("customer_code = ?", filter.CustomerCode)
	}
	if filter.DeviceCode != "" {
		query = query.Where("device_code = ?", filter.DeviceCode)
	}
	if filter.DocStatus != "" {
		query = query.Where("doc_status = ?", filter.DocStatus)
	}
	if filter.From != nil {
		query = query.Where("doc_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("doc_date <= ?", *filter.To)
	}
	return query
}

var _ sales.OrderRepository = (*GormOrderRepository)(nil)
