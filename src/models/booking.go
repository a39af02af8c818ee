package models

import (
	"lingua/src/types"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID        uint              `gorm:"primarykey" json:"id"`
	PublicID  uuid.UUID         `gorm:"type:uuid;uniqueIndex" json:"public_id"`
	StudentID uint              `json:"student_id,omitempty"`
	Type      types.BookingType `json:"booking_type,omitempty"`

	CourseID      *uint `json:"course_id,omitempty"`
	TutorID       *uint `json:"tutor_id,omitempty"`
	VisaServiceID *uint `json:"visa_service_id,omitempty"`

	Status    types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`
	StartDate time.Time           `json:"start_date"`
	EndDate   *time.Time          `json:"end_date,omitempty"`
	TimeSlot  *string             `json:"time_slot,omitempty"`
	Duration  *int                `json:"duration_minutes,omitempty"`

	// SlotKey is "<tutor>|<date>|<slot>" while the booking holds a tutor
	// slot and nil once it leaves pending/confirmed. The unique index is
	// what makes double-booking a constraint violation instead of a race.
	SlotKey *string `gorm:"uniqueIndex" json:"-"`

	TotalPrice    float64            `json:"total_price"`
	Currency      string             `gorm:"default:'usd'" json:"currency,omitempty"`
	PaymentStatus types.PaymentState `gorm:"default:'pending'" json:"payment_status,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	MeetingLink   *string            `json:"meeting_link,omitempty"`

	Student     *User        `gorm:"foreignKey:student_id" json:"student,omitempty"`
	Course      *Course      `gorm:"foreignKey:course_id" json:"course,omitempty"`
	Tutor       *Tutor       `gorm:"foreignKey:tutor_id" json:"tutor,omitempty"`
	VisaService *VisaService `gorm:"foreignKey:visa_service_id" json:"visa_service,omitempty"`
	Payments    []Payment    `gorm:"foreignKey:booking_id" json:"payments,omitempty"`

	types.Timestamps
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.PublicID == uuid.Nil {
		b.PublicID = uuid.New()
	}
	return nil
}

// Active reports whether the booking still occupies its resource.
func (b *Booking) Active() bool {
	return b.Status == types.BOOKING_PENDING || b.Status == types.BOOKING_CONFIRMED
}
