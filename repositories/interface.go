package repositories

import (
	"context"
	"errors"

	"budget-server/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("duplicate key")
	ErrUnknownOwner = errors.New("referenced user does not exist")
)

type UserRepository interface {
	// CreateWithCategories inserts user and its categories in one transaction.
	CreateWithCategories(ctx context.Context, user *entities.User, categories []entities.Category) error
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	UpdateIncome(ctx context.Context, id uint, income decimal.Decimal) error
	// Reset deletes the user's transactions and zeroes its income atomically.
	Reset(ctx context.Context, id uint) error
}

type CategoryRepository interface {
	GetByUserID(ctx context.Context, userID uint) ([]entities.Category, error)
	UpdateBudget(ctx context.Context, id uint, budget decimal.Decimal) error
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *entities.Transaction) error
	GetByUserID(ctx context.Context, userID uint) ([]entities.Transaction, error)
	GetByUserIDSince(ctx context.Context, userID uint, since entities.Date) ([]entities.Transaction, error)
	// Update overwrites date, description, category and amount of txn.ID.
	Update(ctx context.Context, txn *entities.Transaction) error
	Delete(ctx context.Context, id uint) error
}
