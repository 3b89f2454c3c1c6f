package model

import (
	"time"
)

const (
	MinReviewScore = 1
	MaxReviewScore = 100
)

type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Title     string    `gorm:"size:50;not null" json:"title"`
	Content   string    `gorm:"size:255;not null" json:"content"`
	Score     int       `gorm:"not null;check:score >= 1 AND score <= 100" json:"score"` // 1..100
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
