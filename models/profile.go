package models

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Profile is the application-side record for an auth identity. ID is shared
// with the identity and Role drives route authorization.
type Profile struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `json:"full_name"`
	Role         Role      `gorm:"type:VARCHAR(16);not null;default:'customer'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
