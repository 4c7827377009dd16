package models

// Commission represents a thematic track a work can be submitted to.
// Commissions are reference data: they are seeded/managed by organizers and
// never created through the public registration flow.
type Commission struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=3,max=255"`
}
