package utils

import (
	"errors"
	"lingua/src/config"
	"lingua/src/db"
	"lingua/src/models"
	"lingua/src/types"
	"log"
	"time"

	"gorm.io/gorm"
)

// CancelBooking is the self-service path: the owning student inside the
// cancellation window, or an admin at any time. The seat or slot the booking
// held is released in the same transaction.
func CancelBooking(bookingID uint, actor types.Actor) (*models.Booking, error) {
	var booking models.Booking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.Booking{ID: bookingID}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "booking", ID: bookingID}
			}
			return err
		}
		if err := Authorize(tx, OP_CANCEL, actor, &booking); err != nil {
			return err
		}
		if booking.Status == types.BOOKING_CANCELLED {
			return &ConflictError{Reason: "booking is already cancelled"}
		}
		if booking.Status == types.BOOKING_COMPLETED {
			return &ConflictError{Reason: "completed bookings cannot be cancelled"}
		}
		if actor.Role != types.ROLE_ADMIN {
			window := config.CANCEL_WINDOW_HOURS * time.Hour
			remaining := time.Until(booking.StartDate)
			if remaining < window {
				return &PolicyError{
					Reason:    "bookings can no longer be cancelled this close to their start date",
					Remaining: remaining,
				}
			}
		}

		if err := applyTransition(tx, &booking, types.BOOKING_CANCELLED, ""); err != nil {
			return err
		}
		if booking.PaymentStatus == types.PAYMENT_PAID {
			// Settlement of the refund happens at the gateway; the booking
			// records that one is owed.
			if err := tx.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: booking.ID}).
				Update("payment_status", types.PAYMENT_REFUNDED).
				Error; err != nil {
				return err
			}
			booking.PaymentStatus = types.PAYMENT_REFUNDED
		}
		return nil
	})
	if err != nil {
		log.Printf("CancelBooking [%d] failed: %s\n", bookingID, err.Error())
		return nil, err
	}
	return &booking, nil
}
