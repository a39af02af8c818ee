package models

import "lingua/src/types"

type User struct {
	ID    uint       `gorm:"primarykey" json:"id"`
	Name  string     `json:"name,omitempty"`
	Email string     `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone string     `json:"phone,omitempty"`
	Role  types.Role `gorm:"default:'student'" json:"role,omitempty"`

	Bookings []Booking `gorm:"foreignKey:student_id" json:"bookings,omitempty"`
	Schools  []School  `gorm:"foreignKey:owner_id" json:"schools,omitempty"`

	types.Timestamps
}
