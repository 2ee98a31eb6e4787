package services

import (
	"testing"

	"expense-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoiceWithExpenses(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	user := createTestUser(t, db, "inv@example.com")
	sysID := firstSystemTagID(t, db)

	header := &models.InvoiceCreateRequest{
		VendorName:  strPtr("超市"),
		InvoiceDate: "2026-08-20",
		TotalAmount: decimal.RequireFromString("15.50"),
		Notes:       strPtr("周末采购"),
	}
	items := []models.InvoiceItemRequest{
		{Amount: decimal.RequireFromString("10.00"), ExpenseDate: "2026-08-20", Label: strPtr("食品"), DefaultTagID: sysID},
		{Amount: decimal.RequireFromString("5.50"), ExpenseDate: "2026-08-20", Label: strPtr("日用品"), DefaultTagID: sysID},
	}

	invoice, err := svc.CreateInvoiceWithExpenses(user.UserID, header, items)
	require.NoError(t, err)
	assert.NotZero(t, invoice.InvoiceID)
	require.Len(t, invoice.Expenses, 2)
	for _, expense := range invoice.Expenses {
		require.NotNil(t, expense.InvoiceID)
		assert.Equal(t, invoice.InvoiceID, *expense.InvoiceID)
		assert.Equal(t, user.UserID, expense.UserID)
		assert.Nil(t, expense.ReceiptImagePath)
	}

	// 重新加载验证明细已落库
	reloaded, err := svc.GetInvoiceByID(invoice.InvoiceID, user.UserID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Expenses, 2)
	assert.True(t, reloaded.TotalAmount.Equal(header.TotalAmount))

	// 其他用户看不到这张发票
	other := createTestUser(t, db, "inv2@example.com")
	_, err = svc.GetInvoiceByID(invoice.InvoiceID, other.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInvoiceTotalMismatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	user := createTestUser(t, db, "inv3@example.com")
	sysID := firstSystemTagID(t, db)

	header := &models.InvoiceCreateRequest{
		InvoiceDate: "2026-08-20",
		TotalAmount: decimal.RequireFromString("100.00"),
	}
	items := []models.InvoiceItemRequest{
		{Amount: decimal.RequireFromString("10.00"), ExpenseDate: "2026-08-20", DefaultTagID: sysID},
	}

	_, err := svc.CreateInvoiceWithExpenses(user.UserID, header, items)
	assert.ErrorIs(t, err, ErrValidation)

	// 预检失败时不写任何数据
	var invoiceCount, expenseCount int64
	require.NoError(t, db.Model(&models.Invoice{}).Count(&invoiceCount).Error)
	require.NoError(t, db.Model(&models.Expense{}).Count(&expenseCount).Error)
	assert.Zero(t, invoiceCount)
	assert.Zero(t, expenseCount)
}

func TestCreateInvoiceEmptyItems(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	user := createTestUser(t, db, "inv4@example.com")

	header := &models.InvoiceCreateRequest{
		InvoiceDate: "2026-08-20",
		TotalAmount: decimal.NewFromInt(10),
	}

	_, err := svc.CreateInvoiceWithExpenses(user.UserID, header, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateInvoiceRollsBackOnBadItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	user := createTestUser(t, db, "inv5@example.com")
	sysID := firstSystemTagID(t, db)

	header := &models.InvoiceCreateRequest{
		InvoiceDate: "2026-08-20",
		TotalAmount: decimal.RequireFromString("30.00"),
	}
	// 第二条明细的用户标签与默认标签冲突，在事务中途才会被发现
	items := []models.InvoiceItemRequest{
		{Amount: decimal.RequireFromString("10.00"), ExpenseDate: "2026-08-20", DefaultTagID: sysID},
		{Amount: decimal.RequireFromString("20.00"), ExpenseDate: "2026-08-21", DefaultTagID: sysID, UserTagID: uintPtr(sysID)},
	}

	_, err := svc.CreateInvoiceWithExpenses(user.UserID, header, items)
	assert.ErrorIs(t, err, ErrValidation)

	// 发票和第一条已写入的明细都必须回滚
	var invoiceCount, expenseCount int64
	require.NoError(t, db.Model(&models.Invoice{}).Count(&invoiceCount).Error)
	require.NoError(t, db.Model(&models.Expense{}).Count(&expenseCount).Error)
	assert.Zero(t, invoiceCount)
	assert.Zero(t, expenseCount)
}

func TestGetRecentInvoices(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db)
	user := createTestUser(t, db, "inv6@example.com")
	sysID := firstSystemTagID(t, db)

	_, err := svc.CreateInvoiceWithExpenses(user.UserID,
		&models.InvoiceCreateRequest{
			VendorName:  strPtr("商店 A"),
			InvoiceDate: "2026-08-01",
			TotalAmount: decimal.RequireFromString("10.00"),
		},
		[]models.InvoiceItemRequest{
			{Amount: decimal.RequireFromString("10.00"), ExpenseDate: "2026-08-01", DefaultTagID: sysID},
		})
	require.NoError(t, err)

	_, err = svc.CreateInvoiceWithExpenses(user.UserID,
		&models.InvoiceCreateRequest{
			VendorName:  strPtr("商店 B"),
			InvoiceDate: "2026-08-10",
			TotalAmount: decimal.RequireFromString("30.00"),
		},
		[]models.InvoiceItemRequest{
			{Amount: decimal.RequireFromString("10.00"), ExpenseDate: "2026-08-10", DefaultTagID: sysID},
			{Amount: decimal.RequireFromString("20.00"), ExpenseDate: "2026-08-10", DefaultTagID: sysID},
		})
	require.NoError(t, err)

	invoices, err := svc.GetRecentInvoices(user.UserID)
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	// 按发票日期倒序，明细行数来自视图
	require.NotNil(t, invoices[0].VendorName)
	assert.Equal(t, "商店 B", *invoices[0].VendorName)
	assert.Equal(t, int64(2), invoices[0].ItemCount)
	assert.Equal(t, int64(1), invoices[1].ItemCount)

	// 其他用户的列表为空
	other := createTestUser(t, db, "inv7@example.com")
	invoices, err = svc.GetRecentInvoices(other.UserID)
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestExpenseOnInvoiceCannotCarryReceipt(t *testing.T) {
	db := setupTestDB(t)
	invoiceSvc := NewInvoiceService(db)
	expenseSvc := NewExpenseService(db)
	user := createTestUser(t, db, "inv8@example.com")
	sysID := firstSystemTagID(t, db)

	invoice, err := invoiceSvc.CreateInvoiceWithExpenses(user.UserID,
		&models.InvoiceCreateRequest{
			InvoiceDate: "2026-08-20",
			TotalAmount: decimal.RequireFromString("10.00"),
		},
		[]models.InvoiceItemRequest{
			{Amount: decimal.RequireFromString("10.00"), ExpenseDate: "2026-08-20", DefaultTagID: sysID},
		})
	require.NoError(t, err)

	// 票据归属发票，明细行不能单独携带票据
	_, err = expenseSvc.CreateExpense(&models.ExpenseCreateRequest{
		UserID:           user.UserID,
		InvoiceID:        &invoice.InvoiceID,
		Amount:           decimal.NewFromInt(5),
		ExpenseDate:      "2026-08-20",
		DefaultTagID:     sysID,
		ReceiptImagePath: strPtr("/uploads/receipt.png"),
	})
	assert.ErrorIs(t, err, ErrValidation)

	expense := invoice.Expenses[0]
	_, err = expenseSvc.UpdateExpense(expense.ExpenseID, &models.ExpenseUpdateRequest{
		ReceiptImagePath: strPtr("/uploads/receipt.png"),
	})
	assert.ErrorIs(t, err, ErrValidation)
}
