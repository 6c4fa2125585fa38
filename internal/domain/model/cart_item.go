package model

// カートの明細
// 追加時点の商品名・価格・画像を保存（後の商品編集は反映しない）。
type CartItem struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)" bson:"-" json:"-"`
	CartID    string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_product" bson:"-" json:"-"`
	ProductID string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_cart_product" bson:"product_id" json:"productId"`
	Name      string  `gorm:"type:varchar(255)" bson:"name" json:"name"`
	Price     float64 `gorm:"not null" bson:"price" json:"price"`
	Quantity  int64   `gorm:"not null" bson:"quantity" json:"quantity"`
	Image     string  `gorm:"type:text" bson:"image" json:"image"`
	Position  int64   `gorm:"not null;default:0" bson:"-" json:"-"`
}
