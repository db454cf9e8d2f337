package repositories

import (
	"context"

	"budget-server/db"
	"budget-server/entities"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type userGormRepository struct {
	db db.Database
}

func NewUserGormRepository(database db.Database) UserRepository {
	return &userGormRepository{db: database}
}

func (r *userGormRepository) CreateWithCategories(ctx context.Context, user *entities.User, categories []entities.Category) (err error) {
	ctx, span := startSpan(ctx, r.db, "INSERT", "users")
	defer func() { endSpan(span, err) }()

	err = r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if len(categories) == 0 {
			return nil
		}
		for i := range categories {
			categories[i].UserID = user.ID
		}
		return tx.Create(&categories).Error
	})
	return translate(err)
}

func (r *userGormRepository) GetByUsername(ctx context.Context, username string) (_ *entities.User, err error) {
	ctx, span := startSpan(ctx, r.db, "SELECT", "users")
	defer func() { endSpan(span, err) }()

	var user entities.User
	err = r.db.GetDB().WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userGormRepository) UpdateIncome(ctx context.Context, id uint, income decimal.Decimal) (err error) {
	ctx, span := startSpan(ctx, r.db, "UPDATE", "users")
	defer func() { endSpan(span, err) }()

	err = r.db.GetDB().WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Update("income", income).Error
	return translate(err)
}

func (r *userGormRepository) Reset(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, r.db, "RESET", "users")
	defer func() { endSpan(span, err) }()

	err = r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&entities.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Model(&entities.User{}).Where("id = ?", id).Update("income", decimal.Zero).Error
	})
	return translate(err)
}
