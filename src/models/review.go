package models

import "lingua/src/types"

type Review struct {
	ID         uint               `gorm:"primarykey" json:"id"`
	ReviewerID uint               `gorm:"uniqueIndex:idx_reviewer_target" json:"reviewer_id,omitempty"`
	TargetType types.ReviewTarget `gorm:"uniqueIndex:idx_reviewer_target" json:"target_type,omitempty"`
	TargetID   uint               `gorm:"uniqueIndex:idx_reviewer_target" json:"target_id,omitempty"`
	BookingID  *uint              `json:"booking_id,omitempty"`
	Rating     int                `json:"rating"`
	Comment    string             `json:"comment,omitempty"`
	Verified   bool               `json:"verified"`
	Public     bool               `gorm:"default:true" json:"public"`

	Reviewer *User    `gorm:"foreignKey:reviewer_id" json:"reviewer,omitempty"`
	Booking  *Booking `gorm:"foreignKey:booking_id" json:"-"`

	types.Timestamps
}
