package model

import (
	"time"
)

// ProductType is the kind of catalog item (Book, Movie, Game)
type ProductType struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductType) TableName() string {
	return "product_types"
}
