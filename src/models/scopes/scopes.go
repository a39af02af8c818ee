package scopes

import (
	"lingua/src/types"

	"gorm.io/gorm"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

// ActiveBookings keeps the rows that still occupy a seat or a slot.
func ActiveBookings(db *gorm.DB) *gorm.DB {
	return db.Where("status IN (?)", []types.BookingStatus{
		types.BOOKING_PENDING,
		types.BOOKING_CONFIRMED,
	})
}

func ForStudent(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("student_id = ?", id)
	}
}

func PublicVerifiedReviews(db *gorm.DB) *gorm.DB {
	return db.Where("public = ? AND verified = ?", true, true)
}
