package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type bankHandler struct {
	bankService portssvc.BankSvcFacade
}

func newBankHandler(bs portssvc.BankSvcFacade) *bankHandler {
	return &bankHandler{bankService: bs}
}

func registerBankRoutes(business *gin.RouterGroup, bankService portssvc.BankSvcFacade) {
	h := newBankHandler(bankService)

	accounts := business.Group("/bankaccounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.createAccount)
		accounts.GET("/:accountId", h.getAccount)
		accounts.PUT("/:accountId", h.updateAccount)
		accounts.DELETE("/:accountId", h.deleteAccount)

		transactions := accounts.Group("/:accountId/transactions")
		{
			transactions.GET("", h.listTransactions)
			transactions.POST("", h.addTransaction)
			transactions.DELETE("/:txnId", h.deleteTransaction)
		}
	}
}

// listAccounts godoc
// @Summary List bank accounts
// @Tags bank
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {array} domain.BankAccount
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/bankaccounts [get]
func (h *bankHandler) listAccounts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	accounts, err := h.bankService.ListBankAccounts(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to list bank accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// createAccount godoc
// @Summary Create a bank account
// @Tags bank
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param account body dto.CreateBankAccountRequest true "Account"
// @Success 201 {object} domain.BankAccount
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Account number already registered"
// @Security BearerAuth
// @Router /business/{id}/bankaccounts [post]
func (h *bankHandler) createAccount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateBankAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.bankService.CreateBankAccount(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create bank account")
		return
	}
	c.JSON(http.StatusCreated, account)
}

// getAccount godoc
// @Summary Get a bank account
// @Tags bank
// @Produce json
// @Param id path string true "Business ID"
// @Param accountId path string true "Bank account ID"
// @Success 200 {object} domain.BankAccount
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/bankaccounts/{accountId} [get]
func (h *bankHandler) getAccount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	account, err := h.bankService.GetBankAccount(c.Request.Context(), c.Param("id"), c.Param("accountId"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve bank account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// updateAccount godoc
// @Summary Update a bank account
// @Description A new opening balance re-derives every passbook balance.
// @Tags bank
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param accountId path string true "Bank account ID"
// @Param account body dto.UpdateBankAccountRequest true "Changes"
// @Success 200 {object} domain.BankAccount
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/bankaccounts/{accountId} [put]
func (h *bankHandler) updateAccount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateBankAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.bankService.UpdateBankAccount(c.Request.Context(), c.Param("id"), c.Param("accountId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update bank account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// deleteAccount godoc
// @Summary Delete a bank account
// @Description Owner only. Removes the account with its transactions.
// @Tags bank
// @Param id path string true "Business ID"
// @Param accountId path string true "Bank account ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/bankaccounts/{accountId} [delete]
func (h *bankHandler) deleteAccount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.bankService.DeleteBankAccount(c.Request.Context(), c.Param("id"), c.Param("accountId"), userID); err != nil {
		respondError(c, err, "Failed to delete bank account")
		return
	}
	c.Status(http.StatusNoContent)
}

// listTransactions godoc
// @Summary Passbook
// @Description Lists transactions in date order with the balance after each, plus totals over the range.
// @Tags bank
// @Produce json
// @Param id path string true "Business ID"
// @Param accountId path string true "Bank account ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} dto.PassbookPage
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/bankaccounts/{accountId}/transactions [get]
func (h *bankHandler) listTransactions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.ListBankTransactionsParams
	if !bindQuery(c, &params) {
		return
	}

	page, err := h.bankService.ListTransactions(c.Request.Context(), c.Param("id"), c.Param("accountId"), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, page)
}

// addTransaction godoc
// @Summary Add a bank transaction
// @Description Back-dated transactions are allowed; later balances are re-derived.
// @Tags bank
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param accountId path string true "Bank account ID"
// @Param transaction body dto.CreateBankTransactionRequest true "Transaction"
// @Success 201 {object} domain.BankTransaction
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/bankaccounts/{accountId}/transactions [post]
func (h *bankHandler) addTransaction(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateBankTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.bankService.AddTransaction(c.Request.Context(), c.Param("id"), c.Param("accountId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add transaction")
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// deleteTransaction godoc
// @Summary Delete a bank transaction
// @Tags bank
// @Param id path string true "Business ID"
// @Param accountId path string true "Bank account ID"
// @Param txnId path string true "Transaction ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/bankaccounts/{accountId}/transactions/{txnId} [delete]
func (h *bankHandler) deleteTransaction(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	err := h.bankService.DeleteTransaction(c.Request.Context(), c.Param("id"), c.Param("accountId"), c.Param("txnId"), userID)
	if err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
