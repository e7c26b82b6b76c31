package models

import (
	"time"

	"github.com/blueselfcheckout/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the order header.
type OrderModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	FolioPrefix  string          `gorm:"type:varchar(5)"`
	FolioNumber  string          `gorm:"type:varchar(20);not null;index"`
	CustomerCode string          `gorm:"type:varchar(50)"`
	CustomerName string          `gorm:"type:varchar(200)"`
	NickName     string          `gorm:"type:varchar(100)"`
	DeviceCode   string          `gorm:"type:varchar(50);index"`
	DocDate      *time.Time      `gorm:"index"`
	DocDueDate   *time.Time      `gorm:"column:doc_due_date"`
	DocStatus    string          `gorm:"type:varchar(1);not null;default:'P'"`
	DocType      string          `gorm:"type:varchar(1);not null;default:'O'"`
	PaidType     string          `gorm:"type:varchar(20)"`
	Transferred  string          `gorm:"type:varchar(1);not null;default:'N'"`
	Printed      string          `gorm:"type:varchar(1);not null;default:'N'"`
	DocRate      decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	DocTotal     decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	DocTotalFC   decimal.Decimal `gorm:"column:doc_total_fc;type:numeric(19,6);not null;default:0"`
	Comments     string          `gorm:"type:varchar(254)"`
	Timestamps
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the model to a domain Order.
func (m *OrderModel) ToDomain() sales.Order {
	return sales.Order{
		ID:           m.ID,
		FolioPrefix:  m.FolioPrefix,
		FolioNumber:  m.FolioNumber,
		CustomerCode: m.CustomerCode,
		CustomerName: m.CustomerName,
		NickName:     m.NickName,
		DeviceCode:   m.DeviceCode,
		DocDate:      m.DocDate,
		DocDueDate:   m.DocDueDate,
		DocStatus:    m.DocStatus,
		DocType:      m.DocType,
		PaidType:     m.PaidType,
		Transferred:  m.Transferred,
		Printed:      m.Printed,
		DocRate:      m.DocRate,
		DocTotal:     m.DocTotal,
		DocTotalFC:   m.DocTotalFC,
		Comments:     m.Comments,
	}
}

// OrderModelFromDomain creates a persistence model from a domain Order.
func OrderModelFromDomain(o sales.Order) *OrderModel {
	return &OrderModel{
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
	}
}

// OrderLineModel is the persistence model for an order line. The composite
// primary key (order_id, line_id) is what turns a racing insert into a
// uniqueness violation.
type OrderLineModel struct {
	OrderID    int64           `gorm:"primaryKey;autoIncrement:false"`
	LineID     int             `gorm:"primaryKey;autoIncrement:false"`
	ItemCode   string          `gorm:"type:varchar(50);not null"`
	ItemName   string          `gorm:"type:varchar(200)"`
	Quantity   decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	Price      decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	LineStatus string          `gorm:"type:varchar(1);not null;default:'P'"`
	TaxCode    string          `gorm:"type:varchar(20)"`
	LineTotal  decimal.Decimal `gorm:"type:numeric(19,6);not null;default:0"`
	Timestamps
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the model to a domain OrderLine.
func (m *OrderLineModel) ToDomain() sales.OrderLine {
	return sales.OrderLine{
		OrderID:    m.OrderID,
		LineID:     m.LineID,
		ItemCode:   m.ItemCode,
		ItemName:   m.ItemName,
		Quantity:   m.Quantity,
		Price:      m.Price,
		LineStatus: m.LineStatus,
		TaxCode:    m.TaxCode,
		LineTotal:  m.LineTotal,
	}
}

// OrderLineModelFromDomain creates a persistence model from a domain OrderLine.
func OrderLineModelFromDomain(l sales.OrderLine) *OrderLineModel {
	return &OrderLineModel{
		OrderID:    l.OrderID,
		LineID:     l.LineID,
		ItemCode:   l.ItemCode,
		ItemName:   l.ItemName,
		Quantity:   l.Quantity,
		Price:      l.Price,
		LineStatus: l.LineStatus,
		TaxCode:    l.TaxCode,
		LineTotal:  l.LineTotal,
	}
}
