package models

import "lingua/src/types"

type VisaService struct {
	ID       uint    `gorm:"primarykey" json:"id"`
	SchoolID *uint   `json:"school_id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Country  string  `json:"country,omitempty"`
	Price    float64 `json:"price"`
	Currency string  `gorm:"default:'usd'" json:"currency,omitempty"`
	// ProcessingTime is a human-readable estimate, e.g. "10-15 business days".
	ProcessingTime string `json:"processing_time,omitempty"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`

	School *School `json:"school,omitempty"`

	types.Timestamps
}
