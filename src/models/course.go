package models

import (
	"lingua/src/types"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Course struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	SchoolID         uint       `json:"school_id,omitempty"`
	Title            string     `json:"title,omitempty"`
	Slug             string     `json:"slug,omitempty"`
	Language         string     `json:"language,omitempty"`
	Level            string     `json:"level,omitempty"`
	Price            float64    `json:"price"`
	Currency         string     `gorm:"default:'usd'" json:"currency,omitempty"`
	MaxStudents      int64      `json:"max_students"`
	EnrolledStudents int64      `json:"enrolled_students"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	Rating           float64    `json:"rating"`
	ReviewCount      int64      `json:"review_count"`

	School   School    `json:"school,omitempty"`
	Bookings []Booking `gorm:"foreignKey:course_id" json:"bookings,omitempty"`

	// SeatsLeft is computed per request, never stored.
	SeatsLeft *int64 `gorm:"-" json:"seats_left,omitempty"`

	types.Timestamps
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Title)
	}
	return nil
}
