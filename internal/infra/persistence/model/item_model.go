package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemModel mirrors the 'items' table.
type ItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:numeric(12,2);not null"`
	Quantity    int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}
