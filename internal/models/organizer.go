package models

import "time"

// Organizer roles. Admins manage commission reference data; staff accounts
// only read the organizer surfaces.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Organizer is a congress staff account. Organizers authenticate to manage
// commissions and review the registration listing; attendees never have
// accounts.
type Organizer struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FullName  string    `json:"full_name" gorm:"type:varchar(255)" validate:"required,min=3,max=255"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash at rest; no json tag so it never renders
	Role      string    `json:"role" gorm:"type:varchar(20);default:staff" validate:"omitempty,oneof=admin staff"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
