package models

import "lingua/src/types"

type Tutor struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	UserID        uint    `json:"user_id,omitempty"`
	Headline      string  `json:"headline,omitempty"`
	Languages     string  `json:"languages,omitempty"`
	HourlyRate    float64 `json:"hourly_rate"`
	Currency      string  `gorm:"default:'usd'" json:"currency,omitempty"`
	IsAvailable   bool    `gorm:"default:true" json:"is_available"`
	HoursTaught   float64 `json:"hours_taught"`
	StudentsCount int64   `json:"students_count"`
	Rating        float64 `json:"rating"`
	ReviewCount   int64   `json:"review_count"`

	User     *User     `gorm:"foreignKey:user_id" json:"-"`
	Bookings []Booking `gorm:"foreignKey:tutor_id" json:"bookings,omitempty"`

	types.Timestamps
}
