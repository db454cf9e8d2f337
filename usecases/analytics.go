package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"budget-server/entities"
	"budget-server/repositories"

	"github.com/shopspring/decimal"
)

// WeeklyWindow is the number of ISO weeks reported by WeeklyExpenses.
const WeeklyWindow = 12

type AnalyticsUseCase struct {
	TransactionRepo repositories.TransactionRepository
	// Now supplies "today". Defaults to time.Now.
	Now func() time.Time
}

func NewAnalyticsUseCase(transactionRepo repositories.TransactionRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{TransactionRepo: transactionRepo, Now: time.Now}
}

// WeeklyExpenses sums the user's transactions of the last 12 weeks per ISO
// week. Weeks without transactions are omitted; the result is oldest first.
func (uc *AnalyticsUseCase) WeeklyExpenses(ctx context.Context, userID uint) ([]entities.WeeklyExpense, error) {
	today := entities.NewDate(uc.Now())
	since := today.AddDays(-7 * WeeklyWindow)

	txns, err := uc.TransactionRepo.GetByUserIDSince(ctx, userID, since)
	if err != nil {
		return nil, storeError("failed to load weekly expenses", err)
	}
	return bucketByWeek(txns, WeeklyWindow), nil
}

func bucketByWeek(txns []entities.Transaction, limit int) []entities.WeeklyExpense {
	totals := make(map[int]decimal.Decimal)
	for _, txn := range txns {
		year, week := txn.Date.ISOWeek()
		key := year*100 + week
		totals[key] = totals[key].Add(txn.Amount)
	}

	keys := make([]int, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	if len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}

	weeks := make([]entities.WeeklyExpense, 0, len(keys))
	for _, k := range keys {
		weeks = append(weeks, entities.WeeklyExpense{
			Week:    fmt.Sprintf("%04d-%02d", k/100, k%100),
			WeekNum: k,
			Total:   totals[k],
		})
	}
	return weeks
}
