package usecases

import (
	"context"

	"budget-server/entities"
	"budget-server/repositories"

	"github.com/shopspring/decimal"
)

type CategoryUseCase struct {
	CategoryRepo repositories.CategoryRepository
}

func NewCategoryUseCase(categoryRepo repositories.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{CategoryRepo: categoryRepo}
}

// ListCategories returns the user's categories in creation order.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, userID uint) ([]entities.Category, error) {
	categories, err := uc.CategoryRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, storeError("failed to load categories", err)
	}
	if categories == nil {
		categories = []entities.Category{}
	}
	return categories, nil
}

// UpdateBudget overwrites a category budget. Ownership is not checked and
// an unknown id is not an error.
func (uc *CategoryUseCase) UpdateBudget(ctx context.Context, categoryID uint, budget *decimal.Decimal) error {
	if budget == nil {
		return validationError("budget is required")
	}
	value, err := entities.NormalizeMoney(*budget)
	if err != nil {
		return validationError("budget: " + err.Error())
	}
	if err := uc.CategoryRepo.UpdateBudget(ctx, categoryID, value); err != nil {
		return storeError("failed to update budget", err)
	}
	return nil
}
