package utils

import (
	"errors"
	"fmt"
	"lingua/src/db"
	"lingua/src/models"
	"lingua/src/types"
	"log"
	"os"

	"gorm.io/gorm"
)

// transitions is the whole lifecycle. cancelled and completed are terminal;
// in particular there is no cancelled->confirmed reinstatement, a retried
// payment after cancellation stays rejected.
var transitions = map[types.BookingStatus][]types.BookingStatus{
	types.BOOKING_PENDING:   {types.BOOKING_CONFIRMED, types.BOOKING_CANCELLED},
	types.BOOKING_CONFIRMED: {types.BOOKING_COMPLETED, types.BOOKING_CANCELLED},
	types.BOOKING_CANCELLED: {},
	types.BOOKING_COMPLETED: {},
}

func CanTransition(from, to types.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// applyTransition writes the status change and every side effect it implies
// in the caller's transaction. The booking passed in reflects the new state
// on return.
func applyTransition(tx *gorm.DB, booking *models.Booking, to types.BookingStatus, notes string) error {
	if !CanTransition(booking.Status, to) {
		return &ConflictError{
			Reason: fmt.Sprintf("cannot change booking from %s to %s", booking.Status, to),
		}
	}

	updates := map[string]any{"status": to}
	if notes != "" {
		updates["notes"] = notes
	}
	leavesActive := to == types.BOOKING_CANCELLED || to == types.BOOKING_COMPLETED
	if booking.SlotKey != nil && leavesActive {
		updates["slot_key"] = nil
	}
	var link string
	if booking.Type == types.BOOKING_TYPE_TUTOR && to == types.BOOKING_CONFIRMED && booking.MeetingLink == nil {
		link = fmt.Sprintf("%s/meet/%s", os.Getenv("APP_HOST"), booking.PublicID)
		updates["meeting_link"] = link
	}
	// Compare-and-swap on the status the transaction read. A writer working
	// from a stale snapshot affects zero rows and none of the side effects
	// below run, so the seat counter moves at most once per transition.
	res := tx.
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, booking.Status).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &ConflictError{
			Reason: fmt.Sprintf("booking is no longer %s", booking.Status),
		}
	}

	switch {
	case booking.Type == types.BOOKING_TYPE_COURSE && to == types.BOOKING_CANCELLED:
		if err := releaseCourseSeat(tx, *booking.CourseID); err != nil {
			return err
		}
	case booking.Type == types.BOOKING_TYPE_TUTOR && to == types.BOOKING_COMPLETED:
		if err := creditTutorSession(tx, booking); err != nil {
			return err
		}
	}

	booking.Status = to
	if booking.SlotKey != nil && leavesActive {
		booking.SlotKey = nil
	}
	if link != "" {
		booking.MeetingLink = &link
	}
	if notes != "" {
		booking.Notes = notes
	}
	return nil
}

// creditTutorSession adds the completed session to the tutor's record:
// cumulative hours plus a recount of distinct students over completed
// bookings. Runs after the status write so the recount sees this booking.
func creditTutorSession(tx *gorm.DB, booking *models.Booking) error {
	hours := float64(0)
	if booking.Duration != nil {
		hours = float64(*booking.Duration) / 60
	}
	var students int64
	if err := tx.
		Model(&models.Booking{}).
		Where("tutor_id = ? AND status = ?", *booking.TutorID, types.BOOKING_COMPLETED).
		Distinct("student_id").
		Count(&students).
		Error; err != nil {
		return err
	}
	return tx.
		Model(&models.Tutor{}).
		Where(&models.Tutor{ID: *booking.TutorID}).
		Updates(map[string]any{
			"hours_taught":   gorm.Expr("hours_taught + ?", hours),
			"students_count": students,
		}).
		Error
}

func UpdateBookingStatus(bookingID uint, actor types.Actor, newStatus types.BookingStatus, notes string) (*models.Booking, error) {
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
		if err := Authorize(tx, OP_UPDATE_STATUS, actor, &booking); err != nil {
			return err
		}
		return applyTransition(tx, &booking, newStatus, notes)
	})
	if err != nil {
		log.Printf("UpdateBookingStatus [%d -> %s] failed: %s\n", bookingID, newStatus, err.Error())
		return nil, err
	}
	return &booking, nil
}
