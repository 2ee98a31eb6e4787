package handlers

import (
	"expense-backend/internal/models"
	"expense-backend/internal/services"
	"expense-backend/internal/utils"
	appvalidator "expense-backend/pkg/validator"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
	invoiceService *services.InvoiceService
	statsService   *services.StatsService
	validator      *validator.Validate
}

func NewExpenseHandler(expenseService *services.ExpenseService, invoiceService *services.InvoiceService, statsService *services.StatsService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		invoiceService: invoiceService,
		statsService:   statsService,
		validator:      appvalidator.GetValidator(),
	}
}

func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	var req models.ExpenseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	expenses, pagination, err := h.expenseService.GetExpenses(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"expenses":   expenses,
		"pagination": pagination,
	})
}

func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	expenseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的费用ID")
		return
	}

	expense, err := h.expenseService.GetExpenseByID(uint(expenseID))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, expense)
}

// expenseCreateBody 同时承载两种创建方式：普通费用，
// 或带 invoice 字段的发票创建流程
type expenseCreateBody struct {
	models.ExpenseCreateRequest
	Invoice *models.InvoiceCreateRequest `json:"invoice"`
	Items   []models.InvoiceItemRequest  `json:"items"`
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID := currentUserID(c)

	var body expenseCreateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	// 带发票头时走发票创建流程
	if body.Invoice != nil {
		req := models.InvoiceExpensesRequest{
			Invoice: *body.Invoice,
			Items:   body.Items,
		}
		if err := h.validator.Struct(&req); err != nil {
			utils.ValidationError(c, err.Error())
			return
		}

		invoice, err := h.invoiceService.CreateInvoiceWithExpenses(userID, &req.Invoice, req.Items)
		if err != nil {
			respondError(c, err)
			return
		}

		utils.Created(c, "发票创建成功", invoice)
		return
	}

	req := body.ExpenseCreateRequest
	req.UserID = userID
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "创建成功", expense)
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	expenseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的费用ID")
		return
	}

	var req models.ExpenseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	expense, err := h.expenseService.UpdateExpense(uint(expenseID), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "更新成功", expense)
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	expenseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的费用ID")
		return
	}

	if err := h.expenseService.DeleteExpense(uint(expenseID)); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContent(c)
}

func (h *ExpenseHandler) GetWeeklyStats(c *gin.Context) {
	h.periodStats(c, h.statsService.GetExpensesPerWeek)
}

func (h *ExpenseHandler) GetMonthlyStats(c *gin.Context) {
	h.periodStats(c, h.statsService.GetExpensesPerMonth)
}

func (h *ExpenseHandler) GetYearlyStats(c *gin.Context) {
	h.periodStats(c, h.statsService.GetExpensesPerYear)
}

func (h *ExpenseHandler) periodStats(c *gin.Context, query func(uint) ([]models.PeriodStats, error)) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	stats, err := query(uint(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, stats)
}

func (h *ExpenseHandler) GetWeeklyTagStats(c *gin.Context) {
	h.periodTagStats(c, "week")
}

func (h *ExpenseHandler) GetMonthlyTagStats(c *gin.Context) {
	h.periodTagStats(c, "month")
}

func (h *ExpenseHandler) GetYearlyTagStats(c *gin.Context) {
	h.periodTagStats(c, "year")
}

func (h *ExpenseHandler) periodTagStats(c *gin.Context, period string) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	stats, err := h.statsService.GetExpensesPerPeriodByTag(uint(userID), period)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, stats)
}

func (h *ExpenseHandler) GetTagTimeSeries(c *gin.Context) {
	userID := currentUserID(c)

	period := c.DefaultQuery("period", "month")
	limitStr := c.DefaultQuery("limit", "12")
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的数量限制，必须在 1 到 60 之间")
		return
	}

	points, err := h.statsService.GetTagExpensesTimeSeries(userID, period, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, points)
}
