package models

import "time"

// Order is an immutable record of a checkout. The user block is a denormalized
// snapshot, not a live reference, and orders are never mutated or deleted.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string      `json:"userId" gorm:"type:varchar(36);index"`
	Email     string      `json:"email" gorm:"type:varchar(255)"`
	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt time.Time   `json:"createdAt"`
}

// OrderItem embeds a full copy of the product as it was at checkout time.
// Later edits or deletes of the source product must not alter these columns.
type OrderItem struct {
	ID        uint   `json:"-" gorm:"primaryKey"`
	OrderID   string `json:"-" gorm:"type:varchar(36);index"`
	ProductID string `json:"productId" gorm:"type:varchar(36)"`

	Title       string  `json:"title" gorm:"type:varchar(255)"`
	Price       float64 `json:"price"`
	Description string  `json:"description" gorm:"type:varchar(400)"`
	ImageURL    string  `json:"imageUrl" gorm:"type:varchar(255)"`

	Quantity int `json:"quantity"`
}

// SnapshotOf builds an order line from the current state of a product.
func SnapshotOf(p Product, quantity int) OrderItem {
	return OrderItem{
		ProductID:   p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Quantity:    quantity,
	}
}
