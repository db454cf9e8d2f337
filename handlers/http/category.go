package httpHandler

import (
	"net/http"

	"budget-server/usecases"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CategoryHandler struct {
	useCase *usecases.CategoryUseCase
}

func NewCategoryHandler(useCase *usecases.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{
		useCase: useCase,
	}
}

type BudgetRequest struct {
	Budget *decimal.Decimal `json:"budget"`
}

// GetCategories handles GET /api/user/:userId/categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	categories, err := h.useCase.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// UpdateBudget handles PUT /api/category/:id
func (h *CategoryHandler) UpdateBudget(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	if err := h.useCase.UpdateBudget(c.Request.Context(), id, req.Budget); err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c)
}
