package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ExpenseID        uint            `json:"expense_id" gorm:"primaryKey"`
	UserID           uint            `json:"user_id" gorm:"not null;index"`
	InvoiceID        *uint           `json:"invoice_id" gorm:"index"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null;check:amount > 0"`
	ExpenseDate      time.Time       `json:"expense_date" gorm:"type:date;not null;index"`
	Description      *string         `json:"description" gorm:"size:255"`
	DefaultTagID     uint            `json:"default_tag_id" gorm:"not null"`
	UserTagID        *uint           `json:"user_tag_id" gorm:"check:chk_user_tag,user_tag_id IS NULL OR user_tag_id <> default_tag_id"`
	IsRecurring      bool            `json:"is_recurring" gorm:"not null;default:false"`
	ReceiptImagePath *string         `json:"receipt_image_path" gorm:"size:255;check:chk_invoice_receipt,invoice_id IS NULL OR receipt_image_path IS NULL"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// 关联
	Invoice    *Invoice `json:"invoice,omitempty" gorm:"foreignKey:InvoiceID"`
	DefaultTag *Tag     `json:"default_tag,omitempty" gorm:"foreignKey:DefaultTagID"`
	UserTag    *Tag     `json:"user_tag,omitempty" gorm:"foreignKey:UserTagID"`
}

func (Expense) TableName() string {
	return "expenses"
}

type ExpenseCreateRequest struct {
	UserID           uint            `json:"user_id"`
	InvoiceID        *uint           `json:"invoice_id"`
	Amount           decimal.Decimal `json:"amount" validate:"required"`
	ExpenseDate      string          `json:"expense_date" validate:"required,datetime=2006-01-02"`
	Description      *string         `json:"description" validate:"omitempty,max=255"`
	DefaultTagID     uint            `json:"default_tag_id" validate:"required"`
	UserTagID        *uint           `json:"user_tag_id"`
	IsRecurring      bool            `json:"is_recurring"`
	ReceiptImagePath *string         `json:"receipt_image_path" validate:"omitempty,max=255"`
}

type ExpenseUpdateRequest struct {
	Amount           *decimal.Decimal `json:"amount"`
	ExpenseDate      *string          `json:"expense_date" validate:"omitempty,datetime=2006-01-02"`
	Description      *string          `json:"description" validate:"omitempty,max=255"`
	DefaultTagID     *uint            `json:"default_tag_id"`
	UserTagID        *uint            `json:"user_tag_id"`
	IsRecurring      *bool            `json:"is_recurring"`
	ReceiptImagePath *string          `json:"receipt_image_path" validate:"omitempty,max=255"`
}

type ExpenseListRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
