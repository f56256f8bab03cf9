// Package models contains data models for the store manager API.
package models

import "time"

// Sale records one product sold by one attendant. Total is frozen at
// creation time and does not track later price changes. Reverted is
// terminal: a reverted sale never becomes active again.
type Sale struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	AttendantID int64     `json:"attendant_id" gorm:"not null;index"`
	ProductID   int64     `json:"product_id" gorm:"not null;index"`
	Quantity    int64     `json:"quantity" gorm:"not null"`
	Total       int64     `json:"total" gorm:"not null"`
	Reverted    bool      `json:"reverted" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for the Sale model.
func (Sale) TableName() string {
	return "sales"
}
