// Package models contains data models for the store manager API.
package models

import "time"

// SeedAdminID is the id of the store owner account seeded at startup.
// Its admin rights can never be revoked.
const SeedAdminID int64 = 1

// User represents a store owner (admin) or store attendant.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	IsAdmin   bool      `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}
