package models

import (
	"lingua/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID            uuid.UUID           `gorm:"primarykey;type:uuid" json:"id"`
	BookingID     uint                `json:"booking_id,omitempty"`
	UserID        uint                `json:"user_id,omitempty"`
	Amount        float64             `json:"amount"`
	Currency      string              `json:"currency,omitempty"`
	Method        string              `json:"method,omitempty"`
	TransactionID string              `json:"transaction_id,omitempty"`
	Status        types.PaymentStatus `gorm:"default:'pending'" json:"status,omitempty"`

	Booking Booking `gorm:"foreignKey:booking_id" json:"-"`
	User    User    `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
