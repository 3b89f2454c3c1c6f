package model

import (
	"time"
)

// Product is a reviewable catalog item. Score is derived from its reviews
// and is only written by score recomputation.
type Product struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"size:50;not null;index" json:"title"`
	Description string    `gorm:"size:255;not null" json:"description"`
	TypeID      uint      `gorm:"not null;index" json:"type_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Author      string    `gorm:"size:50" json:"author"`
	Image       *string   `gorm:"size:512" json:"image"`
	Score       float64   `gorm:"not null;default:0" json:"score"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Type   *ProductType `gorm:"foreignKey:TypeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"type,omitempty"`
	User   *User        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Genres []Genre      `gorm:"many2many:product_genres" json:"genres,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) ImageURL() string {
	if p.Image == nil {
		return ""
	}
	return *p.Image
}
