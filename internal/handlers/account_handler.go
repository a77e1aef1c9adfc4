package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expenses/internal/errors"
	"expenses/internal/models"
	"expenses/internal/pagination"
	"expenses/internal/services"
)

// AccountHandler handles account browsing requests.
type AccountHandler struct {
	accountService     services.AccountServicer
	transactionService services.TransactionServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer, transactionService services.TransactionServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService, transactionService: transactionService}
}

// ListAccountsQuery represents the query parameters for listing accounts.
type ListAccountsQuery struct {
	Currency string `form:"currency" binding:"omitempty,iso4217"`
	Type     string `form:"type" binding:"omitempty,account_type"`
	Active   *bool  `form:"active"`
}

// GetAccounts returns all accounts in sort order, optionally filtered by
// currency and active flag.
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	var query ListAccountsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.AccountFilter{Active: query.Active}
	if query.Currency != "" {
		filter.Currency = &query.Currency
	}
	if query.Type != "" {
		accountType := models.AccountType(query.Type)
		filter.Type = &accountType
	}

	accounts, err := h.accountService.ListAccounts(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": accounts})
}

// GetAccountByID returns a single account.
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// AccountTransactionsQuery represents the query parameters for listing an
// account's transactions.
type AccountTransactionsQuery struct {
	pagination.PageRequest
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	CategoryID *int64 `form:"category_id" binding:"omitempty,min=1"`
	PayeeID    *int64 `form:"payee_id" binding:"omitempty,min=1"`
	ProjectID  *int64 `form:"project_id" binding:"omitempty,min=1"`
}

// GetAccountTransactions returns a paginated list of the account's
// transactions, newest first. The from/to dates are both inclusive.
func (h *AccountHandler) GetAccountTransactions(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query AccountTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransactionFilter{
		CategoryID: query.CategoryID,
		PayeeID:    query.PayeeID,
		ProjectID:  query.ProjectID,
	}
	if query.From != "" {
		since, _ := time.Parse("2006-01-02", query.From)
		filter.Since = &since
	}
	if query.To != "" {
		// Make the to-day inclusive by moving the exclusive bound past it.
		before, _ := time.Parse("2006-01-02", query.To)
		before = before.AddDate(0, 0, 1)
		filter.Before = &before
	}

	result, err := h.transactionService.GetAccountTransactions(id, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
