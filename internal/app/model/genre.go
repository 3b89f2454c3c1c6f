package model

import (
	"time"
)

type Genre struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Genre) TableName() string {
	return "genres"
}

// ProductGenre is the join row between products and genres
type ProductGenre struct {
	ProductID uint     `gorm:"primaryKey;index" json:"product_id"`
	GenreID   uint     `gorm:"primaryKey;index" json:"genre_id"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Genre     *Genre   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ProductGenre) TableName() string {
	return "product_genres"
}
