package utils

import (
	"errors"
	"fmt"
	"lingua/src/config"
	"lingua/src/db"
	"lingua/src/models"
	"lingua/src/models/scopes"
	"lingua/src/types"
	"log"
	"time"

	"gorm.io/gorm"
)

const (
	MIN_SESSION_MINUTES = 30
	MAX_SESSION_MINUTES = 480
)

// takeCourseSeat increments the enrolled counter only while a seat is free.
// The guard and the write are one statement, so two racing requests for the
// last seat cannot both pass.
func takeCourseSeat(tx *gorm.DB, courseID uint) error {
	res := tx.
		Model(&models.Course{}).
		Where("id = ? AND is_active = ? AND enrolled_students < max_students", courseID, true).
		UpdateColumn("enrolled_students", gorm.Expr("enrolled_students + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &ConflictError{Reason: "course is fully booked"}
	}
	return nil
}

// releaseCourseSeat is the compensating decrement. The floor guard keeps the
// counter from ever going negative.
func releaseCourseSeat(tx *gorm.DB, courseID uint) error {
	return tx.
		Model(&models.Course{}).
		Where("id = ? AND enrolled_students > 0", courseID).
		UpdateColumn("enrolled_students", gorm.Expr("enrolled_students - 1")).
		Error
}

func CreateCourseBooking(studentID uint, params *types.CreateCourseBookingRequestBody) (*models.Booking, error) {
	var booking models.Booking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.
			Where(&models.Course{ID: params.CourseID}).
			First(&course).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "course", ID: params.CourseID}
			}
			return err
		}
		if !course.IsActive {
			return &NotFoundError{Entity: "course", ID: params.CourseID}
		}

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Scopes(scopes.ForStudent(studentID)).
			Where("course_id = ? AND status <> ?", course.ID, types.BOOKING_CANCELLED).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Reason: "you already have an active booking for this course"}
		}

		if err := takeCourseSeat(tx, course.ID); err != nil {
			return err
		}

		startDate := time.Now().Truncate(24 * time.Hour)
		if course.StartDate != nil {
			startDate = *course.StartDate
		}
		if params.StartDate != "" {
			parsed, err := time.Parse(config.DATE_PARSE_FORMAT, params.StartDate)
			if err != nil {
				return &ValidationError{Field: "start_date", Reason: "must match YYYY-MM-DD"}
			}
			startDate = parsed
		}

		courseID := course.ID
		booking = models.Booking{
			StudentID:  studentID,
			Type:       types.BOOKING_TYPE_COURSE,
			CourseID:   &courseID,
			Status:     types.BOOKING_PENDING,
			StartDate:  startDate,
			EndDate:    course.EndDate,
			TotalPrice: course.Price,
			Currency:   course.Currency,
			Notes:      params.Notes,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("CreateCourseBooking failed for student [%d]: %s\n", studentID, err.Error())
		return nil, err
	}
	return &booking, nil
}

func CreateTutorBooking(studentID uint, params *types.CreateTutorBookingRequestBody) (*models.Booking, error) {
	if _, _, err := ParseTimeSlot(params.TimeSlot); err != nil {
		return nil, err
	}
	if params.DurationMinutes < MIN_SESSION_MINUTES || params.DurationMinutes > MAX_SESSION_MINUTES {
		return nil, &ValidationError{
			Field:  "duration_minutes",
			Reason: fmt.Sprintf("must be between %d and %d", MIN_SESSION_MINUTES, MAX_SESSION_MINUTES),
		}
	}
	startDate, err := time.Parse(config.DATE_PARSE_FORMAT, params.StartDate)
	if err != nil {
		return nil, &ValidationError{Field: "start_date", Reason: "must match YYYY-MM-DD"}
	}

	var booking models.Booking
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		var tutor models.Tutor
		if err := tx.
			Where(&models.Tutor{ID: params.TutorID}).
			First(&tutor).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "tutor", ID: params.TutorID}
			}
			return err
		}
		if !tutor.IsAvailable {
			return &ConflictError{Reason: "tutor is not accepting bookings"}
		}

		slotKey := SlotKey(tutor.ID, startDate, params.TimeSlot)
		var held int64
		if err := tx.
			Model(&models.Booking{}).
			Scopes(scopes.ActiveBookings).
			Where("slot_key = ?", slotKey).
			Count(&held).
			Error; err != nil {
			return err
		}
		if held > 0 {
			return &ConflictError{Reason: "this time slot is already booked"}
		}

		notes := params.Notes
		if params.Subject != "" {
			notes = fmt.Sprintf("[%s] %s", params.Subject, params.Notes)
		}
		duration := params.DurationMinutes
		tutorID := tutor.ID
		booking = models.Booking{
			StudentID:  studentID,
			Type:       types.BOOKING_TYPE_TUTOR,
			TutorID:    &tutorID,
			Status:     types.BOOKING_PENDING,
			StartDate:  startDate,
			TimeSlot:   &params.TimeSlot,
			Duration:   &duration,
			SlotKey:    &slotKey,
			TotalPrice: RoundPrice(tutor.HourlyRate * float64(duration) / 60),
			Currency:   tutor.Currency,
			Notes:      notes,
		}
		if err := tx.Create(&booking).Error; err != nil {
			// A racing insert loses to the unique slot_key index.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &ConflictError{Reason: "this time slot is already booked"}
			}
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("CreateTutorBooking failed for student [%d]: %s\n", studentID, err.Error())
		return nil, err
	}
	return &booking, nil
}

func CreateVisaBooking(studentID uint, params *types.CreateVisaBookingRequestBody) (*models.Booking, error) {
	var booking models.Booking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var service models.VisaService
		if err := tx.
			Where(&models.VisaService{ID: params.ServiceID}).
			First(&service).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "visa service", ID: params.ServiceID}
			}
			return err
		}
		if !service.IsActive {
			return &NotFoundError{Entity: "visa service", ID: params.ServiceID}
		}

		days := ParseLeadingInt(service.ProcessingTime, 5)
		start := time.Now().Truncate(24 * time.Hour)
		end := start.AddDate(0, 0, days)

		serviceID := service.ID
		booking = models.Booking{
			StudentID:     studentID,
			Type:          types.BOOKING_TYPE_VISA,
			VisaServiceID: &serviceID,
			Status:        types.BOOKING_PENDING,
			StartDate:     start,
			EndDate:       &end,
			TotalPrice:    service.Price,
			Currency:      service.Currency,
			Notes:         params.Notes,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.User{}).
			Where(&models.User{ID: studentID}).
			Update("phone", params.ContactPhone).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("CreateVisaBooking failed for student [%d]: %s\n", studentID, err.Error())
		return nil, err
	}
	return &booking, nil
}

// GetOwnBookings lists the student's bookings, most recent first.
func GetOwnBookings(studentID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	db := db.GetDb()
	err := db.
		Model(&models.Booking{}).
		Scopes(scopes.ForStudent(studentID)).
		Preload("Course").
		Preload("Tutor").
		Preload("VisaService").
		Order("created_at DESC").
		Limit(50).
		Find(&bookings).
		Error
	return bookings, err
}
