// Package models contains data models for the store manager API.
package models

import "time"

// Category groups related products.
type Category struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for the Category model.
func (Category) TableName() string {
	return "categories"
}

// Product is a catalog item. UnitCost is in minor currency units.
// Deleted products stay in the table so sale history keeps resolving,
// but they are excluded from listings and lookups.
type Product struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"uniqueIndex;not null"`
	UnitCost   int64     `json:"unit_cost" gorm:"not null"`
	Quantity   int64     `json:"quantity" gorm:"not null"`
	CategoryID *int64    `json:"category_id" gorm:"column:category_id"`
	Deleted    bool      `json:"deleted" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the database table name for the Product model.
func (Product) TableName() string {
	return "products"
}
