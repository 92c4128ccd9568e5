package model

import (
	"time"

	"github.com/google/uuid"
)

// CartLineModel mirrors the 'cart_lines' table.
// (AccountID, ItemID) form the composite primary key; repeated adds for the
// same pair accumulate Quantity through an ON CONFLICT upsert.
type CartLineModel struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"not null;check:quantity > 0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Item *ItemModel `gorm:"foreignKey:ItemID"`
}

// TableName explicitly sets the table name for GORM.
func (CartLineModel) TableName() string {
	return "cart_lines"
}
