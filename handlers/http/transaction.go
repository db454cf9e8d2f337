package httpHandler

import (
	"errors"
	"net/http"

	"budget-server/entities"
	"budget-server/usecases"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	useCase *usecases.TransactionUseCase
}

func NewTransactionHandler(useCase *usecases.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{
		useCase: useCase,
	}
}

// TransactionRequest is the body of both create and update. Amount may be
// a JSON number or a numeric string.
type TransactionRequest struct {
	Date        entities.Date    `json:"date"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
}

func (r TransactionRequest) input() usecases.TransactionInput {
	return usecases.TransactionInput{
		Date:        r.Date,
		Description: r.Description,
		Category:    r.Category,
		Amount:      r.Amount,
	}
}

// bindTransaction decodes the body, reporting a bad date by its own message.
func bindTransaction(c *gin.Context, req *TransactionRequest) bool {
	err := c.ShouldBindJSON(req)
	switch {
	case err == nil:
		return true
	case errors.Is(err, entities.ErrInvalidDate):
		respondBadRequest(c, err.Error())
	default:
		respondBadRequest(c, "Invalid request body")
	}
	return false
}

// GetTransactions handles GET /api/user/:userId/transactions
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	txns, err := h.useCase.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, txns)
}

// CreateTransaction handles POST /api/user/:userId/transactions
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	var req TransactionRequest
	if !bindTransaction(c, &req) {
		return
	}

	txn, err := h.useCase.AddTransaction(c.Request.Context(), userID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

// UpdateTransaction handles PUT /api/transaction/:id
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req TransactionRequest
	if !bindTransaction(c, &req) {
		return
	}

	if err := h.useCase.UpdateTransaction(c.Request.Context(), id, req.input()); err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c)
}

// DeleteTransaction handles DELETE /api/transaction/:id
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.useCase.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c)
}
