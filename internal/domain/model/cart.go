package model

import "time"

// 1ユーザーにつきカートは1つ（注文確定で削除）
type Cart struct {
	ID        string     `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id,omitempty"`
	UserID    string     `gorm:"type:varchar(255);not null;uniqueIndex" bson:"user_id" json:"userId"`
	Items     []CartItem `gorm:"foreignKey:CartID" bson:"items" json:"products"`
	CreatedAt time.Time  `gorm:"not null" bson:"created_at" json:"createdAt,omitempty"`
	UpdatedAt time.Time  `gorm:"not null" bson:"updated_at" json:"updatedAt,omitempty"`
}

// カートが無いときに返す空の形
func EmptyCart(userID string) Cart {
	return Cart{UserID: userID, Items: []CartItem{}}
}
