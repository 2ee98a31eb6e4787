package services

import (
	"expense-backend/internal/models"
	"math"

	"gorm.io/gorm"
)

type ExpenseService struct {
	db *gorm.DB
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

func (s *ExpenseService) GetExpenses(req *models.ExpenseListRequest) ([]models.Expense, *models.Pagination, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	var total int64
	if err := s.db.Model(&models.Expense{}).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	offset := (req.Page - 1) * req.Limit
	pages := int(math.Ceil(float64(total) / float64(req.Limit)))

	var expenses []models.Expense
	err := s.db.Order("expense_date DESC, expense_id DESC").
		Limit(req.Limit).Offset(offset).
		Find(&expenses).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := &models.Pagination{
		Page:  req.Page,
		Limit: req.Limit,
		Total: int(total),
		Pages: pages,
	}

	return expenses, pagination, nil
}

func (s *ExpenseService) GetExpenseByID(expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.First(&expense, "expense_id = ?", expenseID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *ExpenseService) CreateExpense(req *models.ExpenseCreateRequest) (*models.Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, validationError("金额必须大于 0")
	}

	expenseDate, err := parseDate(req.ExpenseDate)
	if err != nil {
		return nil, validationError("无效的日期格式")
	}

	// 票据归属于发票而不是明细行
	if req.InvoiceID != nil && req.ReceiptImagePath != nil {
		return nil, validationError("关联发票的费用不能单独携带票据")
	}

	if req.InvoiceID != nil {
		var count int64
		if err := s.db.Model(&models.Invoice{}).Where("invoice_id = ? AND user_id = ?", *req.InvoiceID, req.UserID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, validationError("发票不存在")
		}
	}

	if err := validateTagChoice(s.db, req.UserID, req.DefaultTagID, req.UserTagID); err != nil {
		return nil, err
	}

	expense := models.Expense{
		UserID:           req.UserID,
		InvoiceID:        req.InvoiceID,
		Amount:           req.Amount,
		ExpenseDate:      expenseDate,
		Description:      req.Description,
		DefaultTagID:     req.DefaultTagID,
		UserTagID:        req.UserTagID,
		IsRecurring:      req.IsRecurring,
		ReceiptImagePath: req.ReceiptImagePath,
	}

	if err := s.db.Create(&expense).Error; err != nil {
		return nil, err
	}

	return &expense, nil
}

func (s *ExpenseService) UpdateExpense(expenseID uint, req *models.ExpenseUpdateRequest) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.First(&expense, "expense_id = ?", expenseID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, validationError("金额必须大于 0")
		}
		expense.Amount = *req.Amount
	}

	if req.ExpenseDate != nil {
		expenseDate, err := parseDate(*req.ExpenseDate)
		if err != nil {
			return nil, validationError("无效的日期格式")
		}
		expense.ExpenseDate = expenseDate
	}

	if req.Description != nil {
		expense.Description = req.Description
	}
	if req.DefaultTagID != nil {
		expense.DefaultTagID = *req.DefaultTagID
	}
	if req.UserTagID != nil {
		expense.UserTagID = req.UserTagID
	}
	if req.IsRecurring != nil {
		expense.IsRecurring = *req.IsRecurring
	}
	if req.ReceiptImagePath != nil {
		expense.ReceiptImagePath = req.ReceiptImagePath
	}

	if expense.InvoiceID != nil && expense.ReceiptImagePath != nil {
		return nil, validationError("关联发票的费用不能单独携带票据")
	}

	if err := validateTagChoice(s.db, expense.UserID, expense.DefaultTagID, expense.UserTagID); err != nil {
		return nil, err
	}

	if err := s.db.Save(&expense).Error; err != nil {
		return nil, err
	}

	return &expense, nil
}

func (s *ExpenseService) DeleteExpense(expenseID uint) error {
	result := s.db.Delete(&models.Expense{}, "expense_id = ?", expenseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// validateTagChoice 校验默认标签存在且激活；用户标签必须不同于默认标签、
// 对该用户可见（系统标签或本人创建）并且处于激活状态
func validateTagChoice(db *gorm.DB, userID, defaultTagID uint, userTagID *uint) error {
	var count int64
	if err := db.Model(&models.Tag{}).Where("tag_id = ? AND is_active = ?", defaultTagID, true).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return validationError("默认标签不存在或已停用")
	}

	if userTagID == nil {
		return nil
	}
	if *userTagID == defaultTagID {
		return validationError("用户标签不能与默认标签相同")
	}

	err := db.Model(&models.Tag{}).
		Where("tag_id = ? AND is_active = ? AND (is_system = ? OR created_by = ?)", *userTagID, true, true, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return validationError("用户标签不可用")
	}

	return nil
}
