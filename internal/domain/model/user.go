package model

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" bson:"password" json:"-"`
	Name         string    `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	CreatedAt    time.Time `gorm:"not null" bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" bson:"updated_at" json:"updatedAt"`
}
