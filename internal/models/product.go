package models

import "gorm.io/gorm"

// Product represents a catalog entry. Every product has exactly one owner;
// only the owner may edit or delete it.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string  `json:"title" gorm:"type:varchar(255)"`
	Price       float64 `json:"price"`
	Description string  `json:"description" gorm:"type:varchar(400)"`
	ImageURL    string  `json:"imageUrl" gorm:"type:varchar(255)"`
	OwnerID     string  `json:"ownerId" gorm:"type:varchar(36);index"`

	gorm.Model `json:"-"`
}
