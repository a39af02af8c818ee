package utils

import (
	"lingua/src/models"
	"lingua/src/types"

	"gorm.io/gorm"
)

type Operation string

const (
	OP_UPDATE_STATUS Operation = "booking.update_status"
	OP_CANCEL        Operation = "booking.cancel"
	OP_PAY           Operation = "booking.pay"
)

// ownership decides whether the actor stands in the required relationship to
// the booking. It runs inside the caller's transaction.
type ownership func(tx *gorm.DB, actor types.Actor, b *models.Booking) (bool, error)

func always(tx *gorm.DB, actor types.Actor, b *models.Booking) (bool, error) {
	return true, nil
}

func owningStudent(tx *gorm.DB, actor types.Actor, b *models.Booking) (bool, error) {
	return b.StudentID == actor.ID, nil
}

func bookedTutor(tx *gorm.DB, actor types.Actor, b *models.Booking) (bool, error) {
	if b.TutorID == nil {
		return false, nil
	}
	var tutor models.Tutor
	if err := tx.
		Model(&models.Tutor{}).
		Where(&models.Tutor{ID: *b.TutorID}).
		First(&tutor).
		Error; err != nil {
		return false, err
	}
	return tutor.UserID == actor.ID, nil
}

func owningSchool(tx *gorm.DB, actor types.Actor, b *models.Booking) (bool, error) {
	if b.CourseID == nil {
		return false, nil
	}
	var course models.Course
	if err := tx.
		Model(&models.Course{}).
		Where(&models.Course{ID: *b.CourseID}).
		Preload("School").
		First(&course).
		Error; err != nil {
		return false, err
	}
	return course.School.OwnerID == actor.ID, nil
}

// capabilities is the single authorization surface of the booking core: one
// row per (operation, role), each bound to the ownership predicate that must
// hold. Roles without a row are rejected outright.
var capabilities = map[Operation]map[types.Role]ownership{
	OP_UPDATE_STATUS: {
		types.ROLE_ADMIN:   always,
		types.ROLE_STUDENT: owningStudent,
		types.ROLE_TUTOR:   bookedTutor,
		types.ROLE_SCHOOL:  owningSchool,
	},
	OP_CANCEL: {
		types.ROLE_ADMIN:   always,
		types.ROLE_STUDENT: owningStudent,
	},
	OP_PAY: {
		types.ROLE_STUDENT: owningStudent,
	},
}

func Authorize(tx *gorm.DB, op Operation, actor types.Actor, b *models.Booking) error {
	rules, ok := capabilities[op]
	if !ok {
		return &AuthorizationError{Reason: "unknown operation"}
	}
	owns, ok := rules[actor.Role]
	if !ok {
		return &AuthorizationError{Reason: "your role may not perform this action"}
	}
	allowed, err := owns(tx, actor, b)
	if err != nil {
		return err
	}
	if !allowed {
		return &AuthorizationError{Reason: "you do not own this booking"}
	}
	return nil
}
