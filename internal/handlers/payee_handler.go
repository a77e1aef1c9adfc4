package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expenses/internal/services"
)

// PayeeHandler handles payee browsing requests.
type PayeeHandler struct {
	payeeService services.PayeeServicer
}

// NewPayeeHandler creates a new PayeeHandler.
func NewPayeeHandler(payeeService services.PayeeServicer) *PayeeHandler {
	return &PayeeHandler{payeeService: payeeService}
}

// GetPayees returns all payees in name order.
func (h *PayeeHandler) GetPayees(c *gin.Context) {
	payees, err := h.payeeService.ListPayees()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": payees})
}
