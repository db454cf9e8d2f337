package usecases

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"budget-server/entities"
	"budget-server/repositories"

	"github.com/shopspring/decimal"
)

// TransactionInput is the client-supplied part of a transaction. Date and
// Amount are required; a zero Date counts as missing.
type TransactionInput struct {
	Date        entities.Date
	Description *string
	Category    *string
	Amount      *decimal.Decimal
}

type TransactionUseCase struct {
	TransactionRepo repositories.TransactionRepository
}

func NewTransactionUseCase(transactionRepo repositories.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{TransactionRepo: transactionRepo}
}

// ListTransactions returns the user's transactions, newest date first.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, userID uint) ([]entities.Transaction, error) {
	txns, err := uc.TransactionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, storeError("failed to load transactions", err)
	}
	if txns == nil {
		txns = []entities.Transaction{}
	}
	return txns, nil
}

func (uc *TransactionUseCase) AddTransaction(ctx context.Context, userID uint, input TransactionInput) (*entities.Transaction, error) {
	txn, err := input.toTransaction()
	if err != nil {
		return nil, err
	}
	txn.UserID = userID

	err = uc.TransactionRepo.Create(ctx, txn)
	if errors.Is(err, repositories.ErrUnknownOwner) {
		return nil, notFoundError(fmt.Sprintf("user %d not found", userID), err)
	}
	if err != nil {
		return nil, storeError("failed to add transaction", err)
	}
	return txn, nil
}

// UpdateTransaction replaces every editable field. Fields missing from
// input are cleared. An unknown id is not an error.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, id uint, input TransactionInput) error {
	txn, err := input.toTransaction()
	if err != nil {
		return err
	}
	txn.ID = id

	if err := uc.TransactionRepo.Update(ctx, txn); err != nil {
		return storeError("failed to update transaction", err)
	}
	return nil
}

// DeleteTransaction is idempotent.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id uint) error {
	if err := uc.TransactionRepo.Delete(ctx, id); err != nil {
		return storeError("failed to delete transaction", err)
	}
	return nil
}

func (in TransactionInput) toTransaction() (*entities.Transaction, error) {
	if in.Date.IsZero() {
		return nil, validationError("date is required")
	}
	if in.Amount == nil {
		return nil, validationError("amount is required")
	}
	amount, err := entities.NormalizeMoney(*in.Amount)
	if err != nil {
		return nil, validationError("amount: " + err.Error())
	}
	if in.Description != nil && utf8.RuneCountInString(*in.Description) > entities.MaxDescriptionLength {
		return nil, validationError(fmt.Sprintf("description must be at most %d characters", entities.MaxDescriptionLength))
	}
	if in.Category != nil && utf8.RuneCountInString(*in.Category) > entities.MaxCategoryLabel {
		return nil, validationError(fmt.Sprintf("category must be at most %d characters", entities.MaxCategoryLabel))
	}

	return &entities.Transaction{
		Date:        in.Date,
		Description: in.Description,
		Category:    in.Category,
		Amount:      amount,
	}, nil
}
