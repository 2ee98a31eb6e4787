package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	InvoiceID        uint            `json:"invoice_id" gorm:"primaryKey"`
	UserID           uint            `json:"user_id" gorm:"not null;index"`
	VendorName       *string         `json:"vendor_name" gorm:"size:100"`
	InvoiceDate      time.Time       `json:"invoice_date" gorm:"type:date;not null;index"`
	TotalAmount      decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null;check:total_amount > 0"`
	ReceiptImagePath *string         `json:"receipt_image_path" gorm:"size:255"`
	Notes            *string         `json:"notes" gorm:"type:text"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// 关联
	Expenses []Expense `json:"expenses,omitempty" gorm:"foreignKey:InvoiceID"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceDetails 对应 invoice_details 视图的行
type InvoiceDetails struct {
	InvoiceID        uint            `json:"invoice_id"`
	UserID           uint            `json:"user_id"`
	VendorName       *string         `json:"vendor_name"`
	InvoiceDate      time.Time       `json:"invoice_date"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	ReceiptImagePath *string         `json:"receipt_image_path"`
	Notes            *string         `json:"notes"`
	ItemCount        int64           `json:"item_count"`
}

// InvoiceCreateRequest 发票头，金额必须等于明细合计
type InvoiceCreateRequest struct {
	VendorName       *string         `json:"vendor_name" validate:"omitempty,max=100"`
	InvoiceDate      string          `json:"invoice_date" validate:"required,datetime=2006-01-02"`
	TotalAmount      decimal.Decimal `json:"total_amount" validate:"required"`
	ReceiptImagePath *string         `json:"receipt_image_path" validate:"omitempty,max=255"`
	Notes            *string         `json:"notes"`
}

// InvoiceItemRequest 发票的一条费用明细
type InvoiceItemRequest struct {
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	ExpenseDate  string          `json:"expense_date" validate:"required,datetime=2006-01-02"`
	Label        *string         `json:"label" validate:"omitempty,max=255"`
	DefaultTagID uint            `json:"default_tag_id" validate:"required"`
	UserTagID    *uint           `json:"user_tag_id"`
}

// InvoiceExpensesRequest 发票头加明细，走发票创建流程
type InvoiceExpensesRequest struct {
	Invoice InvoiceCreateRequest `json:"invoice" validate:"required"`
	Items   []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}
