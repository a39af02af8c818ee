package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type Role string

const (
	ROLE_STUDENT Role = "student"
	ROLE_TUTOR   Role = "tutor"
	ROLE_SCHOOL  Role = "school"
	ROLE_ADMIN   Role = "admin"
)

// Actor is the authenticated identity attached to every mutating call.
type Actor struct {
	ID   uint
	Role Role
}

type BookingType string

const (
	BOOKING_TYPE_COURSE BookingType = "course"
	BOOKING_TYPE_TUTOR  BookingType = "tutor"
	BOOKING_TYPE_VISA   BookingType = "visa"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
	BOOKING_COMPLETED BookingStatus = "completed"
)

type PaymentState string

const (
	PAYMENT_UNPAID   PaymentState = "pending"
	PAYMENT_PAID     PaymentState = "paid"
	PAYMENT_REFUNDED PaymentState = "refunded"
)

type PaymentStatus string

const (
	PAYMENT_RECORD_PENDING PaymentStatus = "pending"
	PAYMENT_RECORD_SUCCESS PaymentStatus = "success"
	PAYMENT_RECORD_FAILED  PaymentStatus = "failed"
)

type ReviewTarget string

const (
	REVIEW_TARGET_SCHOOL ReviewTarget = "school"
	REVIEW_TARGET_TUTOR  ReviewTarget = "tutor"
	REVIEW_TARGET_COURSE ReviewTarget = "course"
)

type CreateCourseBookingRequestBody struct {
	CourseID  uint   `json:"course_id" binding:"required"`
	StartDate string `json:"start_date,omitempty" binding:"omitempty,bookabledate" time_format:"2006-01-02"`
	Notes     string `json:"notes,omitempty"`
}

type CreateTutorBookingRequestBody struct {
	TutorID         uint   `json:"tutor_id" binding:"required"`
	StartDate       string `json:"start_date" binding:"required,bookabledate" time_format:"2006-01-02"`
	TimeSlot        string `json:"time_slot" binding:"required,timeslot"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=30,max=480"`
	Subject         string `json:"subject,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type CreateVisaBookingRequestBody struct {
	ServiceID    uint   `json:"service_id" binding:"required"`
	ContactPhone string `json:"contact_phone" binding:"required"`
	Notes        string `json:"notes,omitempty"`
}

type UpdateBookingStatusRequestBody struct {
	Status BookingStatus `json:"status" binding:"required"`
	Notes  string        `json:"notes,omitempty"`
}

type CreatePaymentIntentRequestBody struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Method    string `json:"method" binding:"required"`
}

type ConfirmPaymentRequestBody struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

type CreateReviewRequestBody struct {
	TargetType ReviewTarget `json:"target_type" binding:"required"`
	TargetID   uint         `json:"target_id" binding:"required"`
	Rating     int          `json:"rating" binding:"required,min=1,max=5"`
	Comment    string       `json:"comment,omitempty"`
	BookingID  *uint        `json:"booking_id,omitempty"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}
