package model

import "time"

type Product struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;index" bson:"name" json:"name"`
	Description string    `gorm:"type:text" bson:"description" json:"description"`
	Price       float64   `gorm:"not null" bson:"price" json:"price"`
	Image       string    `gorm:"type:text" bson:"image" json:"image"`
	CreatedAt   time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" bson:"updated_at" json:"updatedAt"`
}
