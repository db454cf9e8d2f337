package repositories

import (
	"context"

	"budget-server/db"
	"budget-server/entities"
)

type transactionGormRepository struct {
	db db.Database
}

func NewTransactionGormRepository(database db.Database) TransactionRepository {
	return &transactionGormRepository{db: database}
}

const transactionOrder = "date DESC, created_at DESC, id DESC"

func (r *transactionGormRepository) Create(ctx context.Context, txn *entities.Transaction) (err error) {
	ctx, span := startSpan(ctx, r.db, "INSERT", "transactions")
	defer func() { endSpan(span, err) }()

	err = r.db.GetDB().WithContext(ctx).Create(txn).Error
	return translate(err)
}

func (r *transactionGormRepository) GetByUserID(ctx context.Context, userID uint) (_ []entities.Transaction, err error) {
	ctx, span := startSpan(ctx, r.db, "SELECT", "transactions")
	defer func() { endSpan(span, err) }()

	txns := []entities.Transaction{}
	err = r.db.GetDB().WithContext(ctx).Where("user_id = ?", userID).Order(transactionOrder).Find(&txns).Error
	return txns, translate(err)
}

func (r *transactionGormRepository) GetByUserIDSince(ctx context.Context, userID uint, since entities.Date) (_ []entities.Transaction, err error) {
	ctx, span := startSpan(ctx, r.db, "SELECT", "transactions")
	defer func() { endSpan(span, err) }()

	txns := []entities.Transaction{}
	err = r.db.GetDB().WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date").
		Find(&txns).Error
	return txns, translate(err)
}

func (r *transactionGormRepository) Update(ctx context.Context, txn *entities.Transaction) (err error) {
	ctx, span := startSpan(ctx, r.db, "UPDATE", "transactions")
	defer func() { endSpan(span, err) }()

	// a map so nil description and category are written as NULL
	err = r.db.GetDB().WithContext(ctx).Model(&entities.Transaction{}).Where("id = ?", txn.ID).Updates(map[string]any{
		"date":        txn.Date,
		"description": txn.Description,
		"category":    txn.Category,
		"amount":      txn.Amount,
	}).Error
	return translate(err)
}

func (r *transactionGormRepository) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, r.db, "DELETE", "transactions")
	defer func() { endSpan(span, err) }()

	err = r.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.Transaction{}).Error
	return translate(err)
}
