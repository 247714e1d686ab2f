package models

import "time"

// CartItem is one line of a user's cart. The composite unique index enforces
// that a cart never holds two lines for the same product; adding an existing
// product increments Quantity instead. Rows are hard-deleted so a product can
// be re-added after removal without tripping the unique index.
type CartItem struct {
	ID        uint   `json:"-" gorm:"primaryKey"`
	UserID    string `json:"-" gorm:"type:varchar(36);uniqueIndex:idx_cart_user_product"`
	ProductID string `json:"productId" gorm:"type:varchar(36);uniqueIndex:idx_cart_user_product"`
	Quantity  int    `json:"quantity"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CartLine is a cart item resolved against the catalog, as served to clients.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
