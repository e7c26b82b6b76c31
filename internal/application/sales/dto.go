package sales

import (
	"time"

	"github.com/blueselfcheckout/backend/internal/domain/sales"
	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one line as submitted by a kiosk. LineID zero (or
// absent) marks a new line; line_total is always computed server side.
type OrderLineRequest struct {
	LineID     int             `json:"line_id" binding:"min=0"`
	ItemCode   string          `json:"item_code" binding:"required,max=50"`
	ItemName   string          `json:"item_name" binding:"max=200"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	LineStatus string          `json:"line_status" binding:"omitempty,oneof=P C"`
	TaxCode    string          `json:"tax_code" binding:"max=8"`
}

// CreateOrderRequest represents a request to create an order with its lines
type CreateOrderRequest struct {
	FolioPrefix  string             `json:"folio_prefix" binding:"max=5"`
	FolioNumber  string             `json:"folio_number" binding:"required,max=20"`
	CustomerCode string             `json:"customer_code" binding:"max=50"`
	CustomerName string             `json:"customer_name" binding:"max=200"`
	NickName     string             `json:"nick_name" binding:"max=100"`
	DeviceCode   string             `json:"device_code" binding:"max=50"`
	DocDate      *time.Time         `json:"doc_date"`
	DocDueDate   *time.Time         `json:"doc_due_date"`
	PaidType     string             `json:"paid_type" binding:"max=20"`
	DocRate      decimal.Decimal    `json:"doc_rate"`
	DocTotalFC   decimal.Decimal    `json:"doc_total_fc"`
	Comments     string             `json:"comments" binding:"max=254"`
	Lines        []OrderLineRequest `json:"lines" binding:"dive"`
}

// UpdateOrderRequest changes header fields and reconciles the lines. Absent
// header fields keep their value. An absent or null lines field keeps the
// lines; an empty array removes them all.
type UpdateOrderRequest struct {
	FolioPrefix  *string            `json:"folio_prefix" binding:"omitempty,max=5"`
	FolioNumber  *string            `json:"folio_number" binding:"omitempty,max=20"`
	CustomerCode *string            `json:"customer_code" binding:"omitempty,max=50"`
	CustomerName *string            `json:"customer_name" binding:"omitempty,max=200"`
	NickName     *string            `json:"nick_name" binding:"omitempty,max=100"`
	DeviceCode   *string            `json:"device_code" binding:"omitempty,max=50"`
	DocDate      *time.Time         `json:"doc_date"`
	DocDueDate   *time.Time         `json:"doc_due_date"`
	DocStatus    *string            `json:"doc_status" binding:"omitempty,oneof=P C"`
	PaidType     *string            `json:"paid_type" binding:"omitempty,max=20"`
	Transferred  *string            `json:"transferred" binding:"omitempty,oneof=Y N"`
	Printed      *string            `json:"printed" binding:"omitempty,oneof=Y N"`
	DocRate      *decimal.Decimal   `json:"doc_rate"`
	DocTotalFC   *decimal.Decimal   `json:"doc_total_fc"`
	Comments     *string            `json:"comments" binding:"omitempty,max=254"`
	Lines        []OrderLineRequest `json:"lines" binding:"omitempty,dive"`
}

// ListOrdersQuery holds the query string of GET /orders
type ListOrdersQuery struct {
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search       string     `form:"search" binding:"max=100"`
	CustomerCode string     `form:"customer_code" binding:"max=50"`
	DeviceCode   string     `form:"device_code" binding:"max=50"`
	Status       string     `form:"status" binding:"omitempty,oneof=P C"`
	From         *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To           *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	OrderBy      string     `form:"order_by" binding:"omitempty,max=30"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

func (q ListOrdersQuery) toFilter() sales.OrderFilter {
	f := sales.OrderFilter{
		Filter: shared.Filter{
			Page:     q.Page,
			PageSize: q.PageSize,
			OrderBy:  q.OrderBy,
			OrderDir: q.OrderDir,
			Search:   q.Search,
		}.Normalize(),
		CustomerCode: q.CustomerCode,
		DeviceCode:   q.DeviceCode,
		DocStatus:    q.Status,
		From:         q.From,
	}
	if q.To != nil {
		// date-only upper bound covers the whole day
		end := q.To.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}
	return f
}

// OrderListResponse is one page of orders
type OrderListResponse = shared.Paginated[OrderResponse]

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	OrderID    int64           `json:"order_id"`
	LineID     int             `json:"line_id"`
	ItemCode   string          `json:"item_code"`
	ItemName   string          `json:"item_name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	LineStatus string          `json:"line_status"`
	TaxCode    string          `json:"tax_code"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           int64               `json:"id"`
	FolioPrefix  string              `json:"folio_prefix"`
	FolioNumber  string              `json:"folio_number"`
	CustomerCode string              `json:"customer_code"`
	CustomerName string              `json:"customer_name"`
	NickName     string              `json:"nick_name"`
	DeviceCode   string              `json:"device_code"`
	DocDate      *time.Time          `json:"doc_date"`
	DocDueDate   *time.Time          `json:"doc_due_date"`
	DocStatus    string              `json:"doc_status"`
	DocType      string              `json:"doc_type"`
	PaidType     string              `json:"paid_type"`
	Transferred  string              `json:"transferred"`
	Printed      string              `json:"printed"`
	DocRate      decimal.Decimal     `json:"doc_rate"`
	DocTotal     decimal.Decimal     `json:"doc_total"`
	DocTotalFC   decimal.Decimal     `json:"doc_total_fc"`
	Comments     string              `json:"comments"`
	Lines        []OrderLineResponse `json:"lines"`
}

func (r OrderLineRequest) toDomain() sales.OrderLine {
	return sales.OrderLine{
		LineID:     r.LineID,
		ItemCode:   r.ItemCode,
		ItemName:   r.ItemName,
		Quantity:   r.Quantity,
		Price:      r.Price,
		LineStatus: r.LineStatus,
		TaxCode:    r.TaxCode,
	}
}

// linesToDomain keeps the nil/empty distinction of the request.
func linesToDomain(reqs []OrderLineRequest) []sales.OrderLine {
	if reqs == nil {
		return nil
	}
	lines := make([]sales.OrderLine, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, r.toDomain())
	}
	return lines
}

func (r CreateOrderRequest) toDomain() sales.Order {
	return sales.Order{
		FolioPrefix:  r.FolioPrefix,
		FolioNumber:  r.FolioNumber,
		CustomerCode: r.CustomerCode,
		CustomerName: r.CustomerName,
		NickName:     r.NickName,
		DeviceCode:   r.DeviceCode,
		DocDate:      r.DocDate,
		DocDueDate:   r.DocDueDate,
		PaidType:     r.PaidType,
		DocRate:      r.DocRate,
		DocTotalFC:   r.DocTotalFC,
		Comments:     r.Comments,
	}
}

func (r UpdateOrderRequest) applyTo(o *sales.Order) {
	setString(&o.FolioPrefix, r.FolioPrefix)
	setString(&o.FolioNumber, r.FolioNumber)
	setString(&o.CustomerCode, r.CustomerCode)
	setString(&o.CustomerName, r.CustomerName)
	setString(&o.NickName, r.NickName)
	setString(&o.DeviceCode, r.DeviceCode)
	setString(&o.DocStatus, r.DocStatus)
	setString(&o.PaidType, r.PaidType)
	setString(&o.Transferred, r.Transferred)
	setString(&o.Printed, r.Printed)
	setString(&o.Comments, r.Comments)
	if r.DocDate != nil {
		o.DocDate = r.DocDate
	}
	if r.DocDueDate != nil {
		o.DocDueDate = r.DocDueDate
	}
	if r.DocRate != nil {
		o.DocRate = *r.DocRate
	}
	if r.DocTotalFC != nil {
		o.DocTotalFC = *r.DocTotalFC
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// ToOrderResponse converts an order and its lines to the API shape
func ToOrderResponse(o sales.Order, lines []sales.OrderLine) *OrderResponse {
	resp := &OrderResponse{
		ID:           o.ID,
		FolioPrefix:  o.FolioPrefix,
		FolioNumber:  o.FolioNumber,
		CustomerCode: o.CustomerCode,
		CustomerName: o.CustomerName,
		NickName:     o.NickName,
		DeviceCode:   o.DeviceCode,
		DocDate:      o.DocDate,
		DocDueDate:   o.DocDueDate,
		DocStatus:    o.DocStatus,
		DocType:      o.DocType,
		PaidType:     o.PaidType,
		Transferred:  o.Transferred,
		Printed:      o.Printed,
		DocRate:      o.DocRate,
		DocTotal:     o.DocTotal,
		DocTotalFC:   o.DocTotalFC,
		Comments:     o.Comments,
		Lines:        make([]OrderLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			OrderID:    l.OrderID,
			LineID:     l.LineID,
			ItemCode:   l.ItemCode,
			ItemName:   l.ItemName,
			Quantity:   l.Quantity,
			Price:      l.Price,
			LineStatus: l.LineStatus,
			TaxCode:    l.TaxCode,
			LineTotal:  l.LineTotal,
		})
	}
	return resp
}
