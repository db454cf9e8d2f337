package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"budget-server/entities"
	"budget-server/logging"
	"budget-server/repositories"

	"github.com/shopspring/decimal"
)

type UserUseCase struct {
	UserRepo repositories.UserRepository
}

func NewUserUseCase(userRepo repositories.UserRepository) *UserUseCase {
	return &UserUseCase{UserRepo: userRepo}
}

// GetOrCreateUser returns the user with the given name, creating it with
// the default categories on first use.
func (uc *UserUseCase) GetOrCreateUser(ctx context.Context, username string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError("username is required")
	}
	if utf8.RuneCountInString(username) > entities.MaxUsernameLength {
		return nil, validationError(fmt.Sprintf("username must be at most %d characters", entities.MaxUsernameLength))
	}

	existing, err := uc.UserRepo.GetByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storeError("failed to load user", err)
	}

	user := &entities.User{Username: username, Income: decimal.Zero}
	err = uc.UserRepo.CreateWithCategories(ctx, user, entities.DefaultCategories())
	if errors.Is(err, repositories.ErrDuplicate) {
		// another request created it first
		existing, err = uc.UserRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, storeError("failed to load user", err)
		}
		return existing, nil
	}
	if err != nil {
		return nil, storeError("failed to create user", err)
	}

	logging.FromContext(ctx).Info("user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// SetIncome overwrites the user's monthly income. An unknown user id
// matches no row and is not an error.
func (uc *UserUseCase) SetIncome(ctx context.Context, userID uint, income *decimal.Decimal) error {
	if income == nil {
		return validationError("income is required")
	}
	value, err := entities.NormalizeMoney(*income)
	if err != nil {
		return validationError("income: " + err.Error())
	}
	if err := uc.UserRepo.UpdateIncome(ctx, userID, value); err != nil {
		return storeError("failed to update income", err)
	}
	return nil
}

// ResetUser deletes all of the user's transactions and zeroes its income.
func (uc *UserUseCase) ResetUser(ctx context.Context, userID uint) error {
	if err := uc.UserRepo.Reset(ctx, userID); err != nil {
		return storeError("failed to reset user data", err)
	}
	logging.FromContext(ctx).Info("user data reset", "user_id", userID)
	return nil
}
