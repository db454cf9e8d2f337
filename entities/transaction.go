package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MaxDescriptionLength = 255
	MaxCategoryLabel     = 50
)

// Transaction is a dated money movement. Category is a free-text label,
// not a reference to Category.ID.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Date        Date            `gorm:"type:date;not null;index" json:"date"`
	Description *string         `gorm:"size:255" json:"description"`
	Category    *string         `gorm:"size:50" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// WeeklyExpense is the sum of one ISO week's transactions.
type WeeklyExpense struct {
	Week    string          `json:"week"`     // ISO year and week, "2024-07"
	WeekNum int             `json:"week_num"` // year*100 + week, 202407
	Total   decimal.Decimal `json:"total"`
}
