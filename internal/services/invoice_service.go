package services

import (
	"expense-backend/internal/models"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// CreateInvoiceWithExpenses 在同一事务里写入发票和全部费用明细，
// 任何一行失败都会整体回滚，不会留下缺行的发票
func (s *InvoiceService) CreateInvoiceWithExpenses(userID uint, header *models.InvoiceCreateRequest, items []models.InvoiceItemRequest) (*models.Invoice, error) {
	if len(items) == 0 {
		return nil, validationError("发票至少需要一条费用明细")
	}
	if !header.TotalAmount.IsPositive() {
		return nil, validationError("发票总额必须大于 0")
	}

	invoiceDate, err := parseDate(header.InvoiceDate)
	if err != nil {
		return nil, validationError("无效的日期格式")
	}

	itemDates := make([]time.Time, len(items))
	sum := decimal.Zero
	for i, item := range items {
		if !item.Amount.IsPositive() {
			return nil, validationError("第 %d 条明细的金额必须大于 0", i+1)
		}
		itemDates[i], err = parseDate(item.ExpenseDate)
		if err != nil {
			return nil, validationError("第 %d 条明细的日期格式无效", i+1)
		}
		sum = sum.Add(item.Amount)
	}

	// 总额由调用方声明，不一致直接拒绝而不是悄悄重算
	if !sum.Equal(header.TotalAmount) {
		return nil, validationError("明细合计 %s 与发票总额 %s 不一致", sum.String(), header.TotalAmount.String())
	}

	invoice := models.Invoice{
		UserID:           userID,
		VendorName:       header.VendorName,
		InvoiceDate:      invoiceDate,
		TotalAmount:      header.TotalAmount,
		ReceiptImagePath: header.ReceiptImagePath,
		Notes:            header.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		for i, item := range items {
			if err := validateTagChoice(tx, userID, item.DefaultTagID, item.UserTagID); err != nil {
				return err
			}

			invoiceID := invoice.InvoiceID
			expense := models.Expense{
				UserID:       userID,
				InvoiceID:    &invoiceID,
				Amount:       item.Amount,
				ExpenseDate:  itemDates[i],
				Description:  item.Label,
				DefaultTagID: item.DefaultTagID,
				UserTagID:    item.UserTagID,
			}
			if err := tx.Create(&expense).Error; err != nil {
				return err
			}
			invoice.Expenses = append(invoice.Expenses, expense)
		}

		return nil
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id":    userID,
			"item_count": len(items),
		}).Error("发票创建失败，事务已回滚")
		return nil, err
	}

	return &invoice, nil
}

func (s *InvoiceService) GetInvoiceByID(invoiceID, userID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Preload("Expenses").First(&invoice, "invoice_id = ? AND user_id = ?", invoiceID, userID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetRecentInvoices 通过 invoice_details 视图返回最近 10 张发票及其明细行数
func (s *InvoiceService) GetRecentInvoices(userID uint) ([]models.InvoiceDetails, error) {
	var invoices []models.InvoiceDetails
	err := s.db.Table("invoice_details").
		Where("user_id = ?", userID).
		Order("invoice_date DESC").
		Limit(10).
		Scan(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}
