package httpHandler

import (
	"net/http"

	"budget-server/usecases"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	useCase *usecases.AnalyticsUseCase
}

func NewAnalyticsHandler(useCase *usecases.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{
		useCase: useCase,
	}
}

// GetWeeklyExpenses handles GET /api/user/:userId/weekly-expenses
func (h *AnalyticsHandler) GetWeeklyExpenses(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	weeks, err := h.useCase.WeeklyExpenses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, weeks)
}
