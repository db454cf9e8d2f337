package httpHandler

import (
	"net/http"

	"budget-server/usecases"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type UserHandler struct {
	useCase *usecases.UserUseCase
}

func NewUserHandler(useCase *usecases.UserUseCase) *UserHandler {
	return &UserHandler{
		useCase: useCase,
	}
}

type UserRequest struct {
	Username string `json:"username"`
}

type IncomeRequest struct {
	Income *decimal.Decimal `json:"income"`
}

// GetOrCreateUser handles POST /api/user
func (h *UserHandler) GetOrCreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	user, err := h.useCase.GetOrCreateUser(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// SetIncome handles PUT /api/user/:userId/income
func (h *UserHandler) SetIncome(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if err := h.useCase.SetIncome(c.Request.Context(), userID, req.Income); err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c)
}

// ResetUser handles DELETE /api/user/:userId/reset
func (h *UserHandler) ResetUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	if err := h.useCase.ResetUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c)
}
