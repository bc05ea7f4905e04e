package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finai_backend/internal/core/domain"
	portssvc "github.com/SscSPs/finai_backend/internal/core/ports/services"
	"github.com/SscSPs/finai_backend/internal/dto"
	"github.com/SscSPs/finai_backend/internal/middleware"
	"github.com/SscSPs/finai_backend/internal/utils/export"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions and month views.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(ts)

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.POST("", h.createTransaction)
		txns.GET("/month", h.getMonthView)
		txns.GET("/export.csv", h.exportMonthCSV)
		txns.POST("/projections/materialize", h.materializeProjection)
		txns.GET("/:id", h.getTransaction)
		txns.PUT("/:id", h.updateTransaction)
		txns.DELETE("/:id", h.deleteTransaction)
		txns.PATCH("/:id/status", h.toggleTransactionStatus)
	}
}

// requireUser reads the authenticated user or aborts with 401.
func requireUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return userID, ok
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Creates an income or expense, optionally recurring, for the logged-in user
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to create transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 412 {object} ErrorResponse "Projected transactions are not stored"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List stored transactions
// @Description Returns the user's stored transactions, newest first, one page at a time
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid paging parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateTransaction godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Transaction details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 412 {object} ErrorResponse "Projected transactions cannot be edited"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param   id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 412 {object} ErrorResponse "Projected transactions cannot be deleted"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleServiceError(c, logger, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// toggleTransactionStatus godoc
// @Summary Toggle a transaction between pending and completed
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 412 {object} ErrorResponse "Projected transactions cannot be edited"
// @Security BearerAuth
// @Router /transactions/{id}/status [patch]
func (h *transactionHandler) toggleTransactionStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	txn, err := h.transactionService.ToggleTransactionStatus(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, logger, err, "Failed to update transaction status")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// getMonthView godoc
// @Summary Month view
// @Description Returns the transactions of a month, filtered, with totals. Months after the current one list projections of recurring transactions.
// @Tags transactions
// @Produce  json
// @Param   month query string true "Month (YYYY-MM)"
// @Param   search query string false "Case-insensitive merchant or category substring"
// @Param   category query string false "Exact category or all" default(all)
// @Param   type query string false "income, expense or all" default(all)
// @Success 200 {object} dto.MonthViewResponse
// @Failure 400 {object} ErrorResponse "Invalid month or filter"
// @Security BearerAuth
// @Router /transactions/month [get]
func (h *transactionHandler) getMonthView(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	var params dto.MonthViewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	view, err := h.transactionService.GetMonthView(c.Request.Context(), userID, params.ToFilter())
	if err != nil {
		handleServiceError(c, logger, err, "Failed to build month view")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthViewResponse(view))
}

// exportMonthCSV godoc
// @Summary Export a month view as CSV
// @Tags transactions
// @Produce  text/csv
// @Param   month query string true "Month (YYYY-MM)"
// @Param   search query string false "Case-insensitive merchant or category substring"
// @Param   category query string false "Exact category or all" default(all)
// @Param   type query string false "income, expense or all" default(all)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Invalid month or filter"
// @Security BearerAuth
// @Router /transactions/export.csv [get]
func (h *transactionHandler) exportMonthCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	var params dto.MonthViewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}
	month, err := domain.ParseMonth(params.Month)
	if err != nil {
		handleServiceError(c, logger, err, "Invalid month")
		return
	}

	var buf bytes.Buffer
	if err := h.transactionService.ExportMonthCSV(c.Request.Context(), userID, params.ToFilter(), &buf); err != nil {
		handleServiceError(c, logger, err, "Failed to export month")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.CSVFileName(month)+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// materializeProjection godoc
// @Summary Store a projected transaction
// @Description Turns the projection of a recurring transaction into a real, editable transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   projection body dto.MaterializeProjectionRequest true "Source and month of the projection"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "No such projection"
// @Failure 412 {object} ErrorResponse "Month is not in the future"
// @Security BearerAuth
// @Router /transactions/projections/materialize [post]
func (h *transactionHandler) materializeProjection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	var req dto.MaterializeProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	txn, err := h.transactionService.MaterializeProjection(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to materialize projection")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
