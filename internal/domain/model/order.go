package model

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

// 作成後は変更しない
type Order struct {
	ID             string      `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	UserID         string      `gorm:"type:varchar(255);not null;index;uniqueIndex:idx_order_idempotency" bson:"user_id" json:"userId"`
	Items          []OrderItem `gorm:"foreignKey:OrderID" bson:"items" json:"products"`
	TotalAmount    float64     `gorm:"not null" bson:"total_amount" json:"totalAmount"`
	Status         OrderStatus `gorm:"type:varchar(20);not null" bson:"status" json:"status"`
	IdempotencyKey *string     `gorm:"type:varchar(255);uniqueIndex:idx_order_idempotency" bson:"idempotency_key,omitempty" json:"-"`
	CreatedAt      time.Time   `gorm:"not null;index" bson:"created_at" json:"createdAt"`
}
