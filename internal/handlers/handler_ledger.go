package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizsuite/expense_ledger_app/internal/core/ports/services"
	"github.com/bizsuite/expense_ledger_app/internal/dto"
	"github.com/bizsuite/expense_ledger_app/internal/middleware"
)

// ledgerHandler handles HTTP requests for recording and listing transactions.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers transaction routes under an account.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	accounts := rg.Group("/accounts/:accountID")
	{
		accounts.POST("/deposits", h.recordDeposit)
		accounts.POST("/payments", h.recordPayment)
		accounts.POST("/payments/batch", h.recordPaymentBatch)
		accounts.GET("/transactions", h.listTransactions)
	}
}

// recordDeposit godoc
// @Summary Record a deposit
// @Description Appends a deposit to the account ledger and increments its balance
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/deposits [post]
func (h *ledgerHandler) recordDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordDeposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.RecordDeposit(c.Request.Context(), accountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record deposit")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// recordPayment godoc
// @Summary Record a payment
// @Description Appends a payment to the account ledger, failing without side effects if the balance cannot cover it
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   payment body dto.PaymentRequest true "Payment details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]interface{} "Insufficient funds; includes the shortfall"
// @Security BearerAuth
// @Router /accounts/{accountID}/payments [post]
func (h *ledgerHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.RecordPayment(c.Request.Context(), accountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// recordPaymentBatch godoc
// @Summary Record a batch of payments
// @Description Appends several payments atomically; if their sum exceeds the balance none are recorded
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   batch body dto.PaymentBatchRequest true "Payments to record together"
// @Success 201 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]interface{} "Insufficient funds for the batch sum"
// @Security BearerAuth
// @Router /accounts/{accountID}/payments/batch [post]
func (h *ledgerHandler) recordPaymentBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.PaymentBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPaymentBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txns, err := h.ledgerService.RecordPaymentBatch(c.Request.Context(), accountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment batch")
		return
	}

	c.JSON(http.StatusCreated, dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(txns)})
}

// listTransactions godoc
// @Summary List account transactions
// @Description Retrieves a filtered, cursor-paginated page of an account's transactions, newest occurrence first
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param   to query string false "End date (YYYY-MM-DD, inclusive)"
// @Param   type query string false "Filter by type" Enums(DEPOSIT, PAYMENT)
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.ledgerService.ListTransactions(c.Request.Context(), accountID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, page)
}
