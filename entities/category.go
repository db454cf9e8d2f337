package entities

import (
	"github.com/shopspring/decimal"
)

const MaxCategoryNameLength = 50

type Category struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	UserID uint            `gorm:"not null;index" json:"user_id"`
	Name   string          `gorm:"size:50;not null" json:"name"`
	Budget decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"budget"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// DefaultCategories returns the categories every new user starts with,
// not yet bound to a user.
func DefaultCategories() []Category {
	defaults := []struct {
		name   string
		budget int64
	}{
		{"Food", 8000},
		{"Transport", 3000},
		{"Rent", 12000},
		{"Shopping", 4000},
		{"Entertainment", 2500},
		{"Utilities", 3500},
		{"Other", 2000},
	}

	categories := make([]Category, 0, len(defaults))
	for _, d := range defaults {
		categories = append(categories, Category{
			Name:   d.name,
			Budget: decimal.NewFromInt(d.budget),
		})
	}
	return categories
}
