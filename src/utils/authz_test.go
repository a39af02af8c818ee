package utils

import (
	"lingua/src/models"
	"lingua/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	conn := newTestDb(t)
	student := seedUser(t, conn, types.ROLE_STUDENT)
	otherStudent := seedUser(t, conn, types.ROLE_STUDENT)
	tutorUser := seedUser(t, conn, types.ROLE_TUTOR)
	otherTutorUser := seedUser(t, conn, types.ROLE_TUTOR)
	owner := seedUser(t, conn, types.ROLE_SCHOOL)
	otherOwner := seedUser(t, conn, types.ROLE_SCHOOL)
	admin := seedUser(t, conn, types.ROLE_ADMIN)

	school := seedSchool(t, conn, owner)
	course := seedCourse(t, conn, school, 10)
	tutor := seedTutor(t, conn, tutorUser, 40)
	seedTutor(t, conn, otherTutorUser, 40)

	courseID := course.ID
	tutorID := tutor.ID
	courseBooking := &models.Booking{StudentID: student.ID, Type: types.BOOKING_TYPE_COURSE, CourseID: &courseID}
	tutorBooking := &models.Booking{StudentID: student.ID, Type: types.BOOKING_TYPE_TUTOR, TutorID: &tutorID}

	cases := []struct {
		name    string
		op      Operation
		actor   types.Actor
		booking *models.Booking
		allowed bool
	}{
		{"admin updates any booking", OP_UPDATE_STATUS, types.Actor{ID: admin.ID, Role: types.ROLE_ADMIN}, courseBooking, true},
		{"student updates own booking", OP_UPDATE_STATUS, types.Actor{ID: student.ID, Role: types.ROLE_STUDENT}, courseBooking, true},
		{"student cannot touch another student's booking", OP_UPDATE_STATUS, types.Actor{ID: otherStudent.ID, Role: types.ROLE_STUDENT}, courseBooking, false},
		{"booked tutor updates the session", OP_UPDATE_STATUS, types.Actor{ID: tutorUser.ID, Role: types.ROLE_TUTOR}, tutorBooking, true},
		{"unrelated tutor is rejected", OP_UPDATE_STATUS, types.Actor{ID: otherTutorUser.ID, Role: types.ROLE_TUTOR}, tutorBooking, false},
		{"tutor has no claim on a course booking", OP_UPDATE_STATUS, types.Actor{ID: tutorUser.ID, Role: types.ROLE_TUTOR}, courseBooking, false},
		{"owning school updates its course booking", OP_UPDATE_STATUS, types.Actor{ID: owner.ID, Role: types.ROLE_SCHOOL}, courseBooking, true},
		{"other school is rejected", OP_UPDATE_STATUS, types.Actor{ID: otherOwner.ID, Role: types.ROLE_SCHOOL}, courseBooking, false},
		{"school has no claim on a tutor booking", OP_UPDATE_STATUS, types.Actor{ID: owner.ID, Role: types.ROLE_SCHOOL}, tutorBooking, false},
		{"student cancels own booking", OP_CANCEL, types.Actor{ID: student.ID, Role: types.ROLE_STUDENT}, courseBooking, true},
		{"admin cancels any booking", OP_CANCEL, types.Actor{ID: admin.ID, Role: types.ROLE_ADMIN}, courseBooking, true},
		{"tutor may not cancel", OP_CANCEL, types.Actor{ID: tutorUser.ID, Role: types.ROLE_TUTOR}, tutorBooking, false},
		{"school may not cancel", OP_CANCEL, types.Actor{ID: owner.ID, Role: types.ROLE_SCHOOL}, courseBooking, false},
		{"student pays own booking", OP_PAY, types.Actor{ID: student.ID, Role: types.ROLE_STUDENT}, courseBooking, true},
		{"admin role has no pay capability", OP_PAY, types.Actor{ID: admin.ID, Role: types.ROLE_ADMIN}, courseBooking, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Authorize(conn, c.op, c.actor, c.booking)
			if c.allowed {
				assert.Nil(t, err)
				return
			}
			var authErr *AuthorizationError
			require.ErrorAs(t, err, &authErr)
		})
	}
}
