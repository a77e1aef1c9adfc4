package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expenses/internal/services"
)

// TransactionHandler handles transaction browsing requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// GetTransactionByID returns a single transaction with its splits.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}
