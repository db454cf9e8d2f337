package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const MaxUsernameLength = 100

// User is the owner of a budget. Deleting a user removes its categories
// and transactions through their foreign keys.
type User struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Username  string          `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Income    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"income"`
	CreatedAt time.Time       `json:"created_at"`
}
