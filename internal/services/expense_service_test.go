package services

import (
	"testing"

	"expense-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateExpense(t *testing.T) {
	db := setupTestDB(t)
	svc := NewExpenseService(db)
	user := createTestUser(t, db, "exp@example.com")
	sysID := firstSystemTagID(t, db)

	expense, err := svc.CreateExpense(&models.ExpenseCreateRequest{
		UserID:       user.UserID,
		Amount:       decimal.RequireFromString("42.50"),
		ExpenseDate:  "2026-08-15",
		Description:  strPtr("午餐"),
		DefaultTagID: sysID,
	})
	require.NoError(t, err)
	assert.NotZero(t, expense.ExpenseID)
	assert.True(t, expense.Amount.Equal(decimal.RequireFromString("42.50")))
	assert.Equal(t, "2026-08-15", expense.ExpenseDate.Format("2006-01-02"))

	reloaded, err := svc.GetExpenseByID(expense.ExpenseID)
	require.NoError(t, err)
	assert.True(t, reloaded.Amount.Equal(expense.Amount))
	require.NotNil(t, reloaded.Description)
	assert.Equal(t, "午餐", *reloaded.Description)
}

func TestCreateExpenseValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewExpenseService(db)
	user := createTestUser(t, db, "exp2@example.com")
	sysID := firstSystemTagID(t, db)

	// 金额必须为正
	_, err := svc.CreateExpense(&models.ExpenseCreateRequest{
		UserID:       user.UserID,
		Amount:       decimal.Zero,
		ExpenseDate:  "2026-08-15",
		DefaultTagID: sysID,
	})
	assert.ErrorIs(t, err, ErrValidation)

	// 日期格式必须是 YYYY-MM-DD
	_, err = svc.CreateExpense(&models.ExpenseCreateRequest{
		UserID:       user.UserID,
		Amount:       decimal.NewFromInt(10),
		ExpenseDate:  "15/08/2026",
		DefaultTagID: sysID,
	})
	assert.ErrorIs(t, err, ErrValidation)

	// 默认标签必须存在
	_, err = svc.CreateExpense(&models.ExpenseCreateRequest{
		UserID:       user.UserID,
		Amount:       decimal.NewFromInt(10),
		ExpenseDate:  "2026-08-15",
		DefaultTagID: 99999,
	})
	assert.ErrorIs(t, err, ErrValidation)

	// 用户标签不能等于默认标签
	_, err = svc.CreateExpense(&models.ExpenseCreateRequest{
		UserID:       user.UserID,
		Amount:       decimal.NewFromInt(10),
		ExpenseDate:  "2026-08-15",
		DefaultTagID: sysID,
		UserTagID:    uintPtr(sysID),
	})
	assert.ErrorIs(t, err, ErrValidation)

	// 他人创建的标签不可用作用户标签
	other := createTestUser(t, db, "exp3@example.com")
	otherTag := createUserTag(t, db, other.UserID, "他人标签")
	_, err = svc.CreateExpense(&models.ExpenseCreateRequest{
		UserID:       user.UserID,
		Amount:       decimal.NewFromInt(10),
		ExpenseDate:  "2026-08-15",
		DefaultTagID: sysID,
		UserTagID:    uintPtr(otherTag.TagID),
	})
	assert.ErrorIs(t, err, ErrValidation)

	// 关联不存在的发票
	_, err = svc.CreateExpense(&models.ExpenseCreateRequest{
		UserID:       user.UserID,
		InvoiceID:    uintPtr(99999),
		Amount:       decimal.NewFromInt(10),
		ExpenseDate:  "2026-08-15",
		DefaultTagID: sysID,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateExpenseWithOwnUserTag(t *testing.T) {
	db := setupTestDB(t)
	svc := NewExpenseService(db)
	user := createTestUser(t, db, "exp4@example.com")
	sysID := firstSystemTagID(t, db)
	mine := createUserTag(t, db, user.UserID, "自定义")

	expense, err := svc.CreateExpense(&models.ExpenseCreateRequest{
		UserID:       user.UserID,
		Amount:       decimal.NewFromInt(88),
		ExpenseDate:  "2026-08-20",
		DefaultTagID: sysID,
		UserTagID:    uintPtr(mine.TagID),
	})
	require.NoError(t, err)
	require.NotNil(t, expense.UserTagID)
	assert.Equal(t, mine.TagID, *expense.UserTagID)
}

func TestUpdateExpense(t *testing.T) {
	db := setupTestDB(t)
	svc := NewExpenseService(db)
	user := createTestUser(t, db, "exp5@example.com")
	sysID := firstSystemTagID(t, db)

	expense, err := svc.CreateExpense(&models.ExpenseCreateRequest{
		UserID:       user.UserID,
		Amount:       decimal.NewFromInt(20),
		ExpenseDate:  "2026-08-15",
		DefaultTagID: sysID,
	})
	require.NoError(t, err)

	amount := decimal.RequireFromString("25.50")
	recurring := true
	updated, err := svc.UpdateExpense(expense.ExpenseID, &models.ExpenseUpdateRequest{
		Amount:      &amount,
		ExpenseDate: strPtr("2026-08-16"),
		Description: strPtr("修改后"),
		IsRecurring: &recurring,
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(amount))
	assert.Equal(t, "2026-08-16", updated.ExpenseDate.Format("2006-01-02"))
	assert.True(t, updated.IsRecurring)

	// 金额校验同样作用于更新
	bad := decimal.NewFromInt(-1)
	_, err = svc.UpdateExpense(expense.ExpenseID, &models.ExpenseUpdateRequest{Amount: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateExpense(99999, &models.ExpenseUpdateRequest{Description: strPtr("无")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteExpense(t *testing.T) {
	db := setupTestDB(t)
	svc := NewExpenseService(db)
	user := createTestUser(t, db, "exp6@example.com")
	sysID := firstSystemTagID(t, db)

	expense, err := svc.CreateExpense(&models.ExpenseCreateRequest{
		UserID:       user.UserID,
		Amount:       decimal.NewFromInt(5),
		ExpenseDate:  "2026-08-15",
		DefaultTagID: sysID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExpense(expense.ExpenseID))

	_, err = svc.GetExpenseByID(expense.ExpenseID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteExpense(expense.ExpenseID), ErrNotFound)
}

func TestGetExpensesPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewExpenseService(db)
	user := createTestUser(t, db, "exp7@example.com")
	sysID := firstSystemTagID(t, db)

	for i := 0; i < 25; i++ {
		_, err := svc.CreateExpense(&models.ExpenseCreateRequest{
			UserID:       user.UserID,
			Amount:       decimal.NewFromInt(int64(i + 1)),
			ExpenseDate:  "2026-08-15",
			DefaultTagID: sysID,
		})
		require.NoError(t, err)
	}

	// 默认分页参数
	expenses, pagination, err := svc.GetExpenses(&models.ExpenseListRequest{})
	require.NoError(t, err)
	assert.Len(t, expenses, 20)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.Limit)
	assert.Equal(t, 25, pagination.Total)
	assert.Equal(t, 2, pagination.Pages)

	// 第二页
	expenses, pagination, err = svc.GetExpenses(&models.ExpenseListRequest{Page: 2, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, expenses, 5)
	assert.Equal(t, 2, pagination.Page)

	// 超出上限的 limit 回退到默认值
	_, pagination, err = svc.GetExpenses(&models.ExpenseListRequest{Page: 1, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 20, pagination.Limit)
}
