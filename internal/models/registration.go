package models

import (
	"errors"
	"time"
)

// ErrDuplicateEmail is returned by a repository when an insert trips the
// unique constraint on the email column. The service layer's pre-check can
// race with a concurrent insert, so this is the authoritative signal.
var ErrDuplicateEmail = errors.New("email already registered")

// Registration represents one attendee's submission, the central entity of
// the system.
//
// CommissionID deliberately carries no foreign-key constraint: referential
// validity is checked by the service before insert, and listing uses a LEFT
// JOIN so a registration survives its commission being removed.
type Registration struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName     string    `json:"full_name" gorm:"type:varchar(255);not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Institution  string    `json:"institution" gorm:"type:varchar(255);not null"`
	Phone        *string   `json:"phone" gorm:"type:varchar(50)"`
	CommissionID int64     `json:"commission_id" gorm:"not null"`
	WorkTitle    string    `json:"work_title" gorm:"type:varchar(500);not null"`
	WorkSummary  string    `json:"work_summary" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// RegistrationWithCommission is a listing row: a registration joined with its
// commission's display name. CommissionName is nil when the commission no
// longer exists.
type RegistrationWithCommission struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Institution    string    `json:"institution"`
	Phone          *string   `json:"phone"`
	CommissionName *string   `json:"commission_name"`
	WorkTitle      string    `json:"work_title"`
	WorkSummary    string    `json:"work_summary"`
	CreatedAt      time.Time `json:"created_at"`
}
