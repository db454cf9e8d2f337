package usecases

import (
	"context"

	"budget-server/entities"

	"github.com/shopspring/decimal"
)

// MockUserRepo implements repositories.UserRepository for testing
type MockUserRepo struct {
	CreateWithCategoriesFunc func(ctx context.Context, user *entities.User, categories []entities.Category) error
	GetByUsernameFunc        func(ctx context.Context, username string) (*entities.User, error)
	UpdateIncomeFunc         func(ctx context.Context, id uint, income decimal.Decimal) error
	ResetFunc                func(ctx context.Context, id uint) error
}

func (m *MockUserRepo) CreateWithCategories(ctx context.Context, user *entities.User, categories []entities.Category) error {
	if m.CreateWithCategoriesFunc != nil {
		return m.CreateWithCategoriesFunc(ctx, user, categories)
	}
	return nil
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *MockUserRepo) UpdateIncome(ctx context.Context, id uint, income decimal.Decimal) error {
	if m.UpdateIncomeFunc != nil {
		return m.UpdateIncomeFunc(ctx, id, income)
	}
	return nil
}

func (m *MockUserRepo) Reset(ctx context.Context, id uint) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, id)
	}
	return nil
}

// MockCategoryRepo implements repositories.CategoryRepository for testing
type MockCategoryRepo struct {
	GetByUserIDFunc  func(ctx context.Context, userID uint) ([]entities.Category, error)
	UpdateBudgetFunc func(ctx context.Context, id uint, budget decimal.Decimal) error
}

func (m *MockCategoryRepo) GetByUserID(ctx context.Context, userID uint) ([]entities.Category, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCategoryRepo) UpdateBudget(ctx context.Context, id uint, budget decimal.Decimal) error {
	if m.UpdateBudgetFunc != nil {
		return m.UpdateBudgetFunc(ctx, id, budget)
	}
	return nil
}

// MockTransactionRepo implements repositories.TransactionRepository for testing
type MockTransactionRepo struct {
	CreateFunc           func(ctx context.Context, txn *entities.Transaction) error
	GetByUserIDFunc      func(ctx context.Context, userID uint) ([]entities.Transaction, error)
	GetByUserIDSinceFunc func(ctx context.Context, userID uint, since entities.Date) ([]entities.Transaction, error)
	UpdateFunc           func(ctx context.Context, txn *entities.Transaction) error
	DeleteFunc           func(ctx context.Context, id uint) error
}

func (m *MockTransactionRepo) Create(ctx context.Context, txn *entities.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, txn)
	}
	return nil
}

func (m *MockTransactionRepo) GetByUserID(ctx context.Context, userID uint) ([]entities.Transaction, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockTransactionRepo) GetByUserIDSince(ctx context.Context, userID uint, since entities.Date) ([]entities.Transaction, error) {
	if m.GetByUserIDSinceFunc != nil {
		return m.GetByUserIDSinceFunc(ctx, userID, since)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Update(ctx context.Context, txn *entities.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, txn)
	}
	return nil
}

func (m *MockTransactionRepo) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
