package utils

import (
	"context"
	"errors"
	"fmt"
	"lingua/src/db"
	"lingua/src/lib"
	"lingua/src/models"
	"lingua/src/types"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePaymentIntent opens the two-phase payment flow: a pending Payment
// with a generated transaction id the gateway echoes back on confirmation.
func CreatePaymentIntent(actor types.Actor, params *types.CreatePaymentIntentRequestBody) (*models.Payment, error) {
	var payment models.Payment
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.
			Where(&models.Booking{ID: params.BookingID}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "booking", ID: params.BookingID}
			}
			return err
		}
		if err := Authorize(tx, OP_PAY, actor, &booking); err != nil {
			return err
		}
		if booking.PaymentStatus == types.PAYMENT_PAID {
			return &ConflictError{Reason: "booking is already paid"}
		}
		if booking.Status == types.BOOKING_CANCELLED {
			return &ConflictError{Reason: "cancelled bookings cannot be paid"}
		}

		payment = models.Payment{
			BookingID:     booking.ID,
			UserID:        actor.ID,
			Amount:        booking.TotalPrice,
			Currency:      booking.Currency,
			Method:        params.Method,
			TransactionID: uuid.NewString(),
			Status:        types.PAYMENT_RECORD_PENDING,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("CreatePaymentIntent failed for booking [%d]: %s\n", params.BookingID, err.Error())
		return nil, err
	}

	if rd := lib.GetRedisClient(); rd != nil {
		key := fmt.Sprintf("payment:%s", payment.ID)
		if _, err := rd.SetEx(context.Background(), key, payment.TransactionID, 24*time.Hour).Result(); err != nil {
			log.Printf("Error caching transaction id for payment [%s]: %s\n", payment.ID, err.Error())
		}
	}
	return &payment, nil
}

// ConfirmPayment settles the intent. Confirming twice leaves the same state
// the first confirmation produced: the success short-circuit returns before
// any write.
func ConfirmPayment(paymentID string, transactionID string, actor types.Actor) (*models.Booking, error) {
	pid, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, &ValidationError{Field: "payment_id", Reason: "must be a valid uuid"}
	}
	var booking models.Booking
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.
			Where(&models.Payment{ID: pid}).
			First(&payment).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "payment", ID: paymentID}
			}
			return err
		}
		if payment.UserID != actor.ID && actor.Role != types.ROLE_ADMIN {
			return &AuthorizationError{Reason: "you do not own this payment"}
		}
		if payment.TransactionID != transactionID {
			return &ValidationError{Field: "transaction_id", Reason: "does not match the payment intent"}
		}
		if err := tx.
			Where(&models.Booking{ID: payment.BookingID}).
			First(&booking).
			Error; err != nil {
			return err
		}
		if payment.Status == types.PAYMENT_RECORD_SUCCESS {
			return nil
		}
		if booking.Status == types.BOOKING_CANCELLED {
			return &ConflictError{Reason: "cancelled bookings cannot be paid"}
		}

		if err := tx.
			Model(&models.Payment{}).
			Where(&models.Payment{ID: payment.ID}).
			Update("status", types.PAYMENT_RECORD_SUCCESS).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: booking.ID}).
			Update("payment_status", types.PAYMENT_PAID).
			Error; err != nil {
			return err
		}
		booking.PaymentStatus = types.PAYMENT_PAID
		// Payment only ever promotes a fresh booking; confirmed, completed
		// and cancelled all keep their status.
		if booking.Status == types.BOOKING_PENDING {
			return applyTransition(tx, &booking, types.BOOKING_CONFIRMED, "")
		}
		return nil
	})
	if err != nil {
		log.Printf("ConfirmPayment [%s] failed: %s\n", paymentID, err.Error())
		return nil, err
	}
	return &booking, nil
}
