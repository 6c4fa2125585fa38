package model

type OrderItem struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)" bson:"-" json:"-"`
	OrderID   string  `gorm:"type:varchar(36);not null;index" bson:"-" json:"-"`
	ProductID string  `gorm:"type:varchar(255);not null" bson:"product_id" json:"productId"`
	Name      string  `gorm:"type:varchar(255)" bson:"name" json:"name"`
	Price     float64 `gorm:"not null" bson:"price" json:"price"`
	Quantity  int64   `gorm:"not null" bson:"quantity" json:"quantity"`
	Image     string  `gorm:"type:text" bson:"image" json:"image"`
	Position  int64   `gorm:"not null;default:0" bson:"-" json:"-"`
}
