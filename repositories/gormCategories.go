package repositories

import (
	"context"

	"budget-server/db"
	"budget-server/entities"

	"github.com/shopspring/decimal"
)

type categoryGormRepository struct {
	db db.Database
}

func NewCategoryGormRepository(database db.Database) CategoryRepository {
	return &categoryGormRepository{db: database}
}

func (r *categoryGormRepository) GetByUserID(ctx context.Context, userID uint) (_ []entities.Category, err error) {
	ctx, span := startSpan(ctx, r.db, "SELECT", "categories")
	defer func() { endSpan(span, err) }()

	categories := []entities.Category{}
	err = r.db.GetDB().WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&categories).Error
	return categories, translate(err)
}

func (r *categoryGormRepository) UpdateBudget(ctx context.Context, id uint, budget decimal.Decimal) (err error) {
	ctx, span := startSpan(ctx, r.db, "UPDATE", "categories")
	defer func() { endSpan(span, err) }()

	err = r.db.GetDB().WithContext(ctx).Model(&entities.Category{}).Where("id = ?", id).Update("budget", budget).Error
	return translate(err)
}
