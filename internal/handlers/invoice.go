package handlers

import (
	"expense-backend/internal/services"
	"expense-backend/internal/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) GetRecentInvoices(c *gin.Context) {
	userID := currentUserID(c)

	invoices, err := h.invoiceService.GetRecentInvoices(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, invoices)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	userID := currentUserID(c)

	invoiceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的发票ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(uint(invoiceID), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, invoice)
}
