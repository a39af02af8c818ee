package utils

import (
	"lingua/src/models"
	"lingua/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelBooking(t *testing.T) {
	conn := newTestDb(t)
	owner := seedUser(t, conn, types.ROLE_SCHOOL)
	school := seedSchool(t, conn, owner)

	t.Run("inside the window the cancellation is rejected", func(t *testing.T) {
		course := seedCourse(t, conn, school, 5)
		student := seedUser(t, conn, types.ROLE_STUDENT)
		booking, err := CreateCourseBooking(student.ID, &types.CreateCourseBookingRequestBody{CourseID: course.ID})
		require.Nil(t, err)

		// Push the start 10 hours out, inside the 24-hour window.
		start := time.Now().Add(10 * time.Hour)
		require.Nil(t, conn.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("start_date", start).Error)

		_, err = CancelBooking(booking.ID, types.Actor{ID: student.ID, Role: types.ROLE_STUDENT})
		var policy *PolicyError
		require.ErrorAs(t, err, &policy)
		assert.Greater(t, policy.Remaining, time.Duration(0))
		assert.Less(t, policy.Remaining, 24*time.Hour)

		var stored models.Booking
		require.Nil(t, conn.First(&stored, booking.ID).Error)
		assert.Equal(t, types.BOOKING_PENDING, stored.Status)
		var c models.Course
		require.Nil(t, conn.First(&c, course.ID).Error)
		assert.EqualValues(t, 1, c.EnrolledStudents)
	})

	t.Run("outside the window the seat comes back", func(t *testing.T) {
		course := seedCourse(t, conn, school, 5)
		student := seedUser(t, conn, types.ROLE_STUDENT)
		booking, err := CreateCourseBooking(student.ID, &types.CreateCourseBookingRequestBody{
			CourseID:  course.ID,
			StartDate: futureDate(2),
		})
		require.Nil(t, err)

		cancelled, err := CancelBooking(booking.ID, types.Actor{ID: student.ID, Role: types.ROLE_STUDENT})
		require.Nil(t, err)
		assert.Equal(t, types.BOOKING_CANCELLED, cancelled.Status)

		var c models.Course
		require.Nil(t, conn.First(&c, course.ID).Error)
		assert.EqualValues(t, 0, c.EnrolledStudents)
	})

	t.Run("admin overrides the window", func(t *testing.T) {
		course := seedCourse(t, conn, school, 5)
		student := seedUser(t, conn, types.ROLE_STUDENT)
		admin := seedUser(t, conn, types.ROLE_ADMIN)
		booking, err := CreateCourseBooking(student.ID, &types.CreateCourseBookingRequestBody{CourseID: course.ID})
		require.Nil(t, err)

		start := time.Now().Add(2 * time.Hour)
		require.Nil(t, conn.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("start_date", start).Error)

		cancelled, err := CancelBooking(booking.ID, types.Actor{ID: admin.ID, Role: types.ROLE_ADMIN})
		require.Nil(t, err)
		assert.Equal(t, types.BOOKING_CANCELLED, cancelled.Status)
	})

	t.Run("cancelling a paid booking marks the refund", func(t *testing.T) {
		course := seedCourse(t, conn, school, 5)
		student := seedUser(t, conn, types.ROLE_STUDENT)
		actor := types.Actor{ID: student.ID, Role: types.ROLE_STUDENT}
		booking, err := CreateCourseBooking(student.ID, &types.CreateCourseBookingRequestBody{
			CourseID:  course.ID,
			StartDate: futureDate(10),
		})
		require.Nil(t, err)

		payment, err := CreatePaymentIntent(actor, &types.CreatePaymentIntentRequestBody{BookingID: booking.ID, Method: "card"})
		require.Nil(t, err)
		_, err = ConfirmPayment(payment.ID.String(), payment.TransactionID, actor)
		require.Nil(t, err)

		cancelled, err := CancelBooking(booking.ID, actor)
		require.Nil(t, err)
		assert.Equal(t, types.BOOKING_CANCELLED, cancelled.Status)
		assert.Equal(t, types.PAYMENT_REFUNDED, cancelled.PaymentStatus)
	})

	t.Run("cancelling twice is a conflict", func(t *testing.T) {
		course := seedCourse(t, conn, school, 5)
		student := seedUser(t, conn, types.ROLE_STUDENT)
		actor := types.Actor{ID: student.ID, Role: types.ROLE_STUDENT}
		booking, err := CreateCourseBooking(student.ID, &types.CreateCourseBookingRequestBody{
			CourseID:  course.ID,
			StartDate: futureDate(10),
		})
		require.Nil(t, err)

		_, err = CancelBooking(booking.ID, actor)
		require.Nil(t, err)
		_, err = CancelBooking(booking.ID, actor)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)

		// The double cancellation must not release the seat twice.
		var c models.Course
		require.Nil(t, conn.First(&c, course.ID).Error)
		assert.EqualValues(t, 0, c.EnrolledStudents)
	})

	t.Run("another student may not cancel", func(t *testing.T) {
		course := seedCourse(t, conn, school, 5)
		student := seedUser(t, conn, types.ROLE_STUDENT)
		other := seedUser(t, conn, types.ROLE_STUDENT)
		booking, err := CreateCourseBooking(student.ID, &types.CreateCourseBookingRequestBody{
			CourseID:  course.ID,
			StartDate: futureDate(10),
		})
		require.Nil(t, err)

		_, err = CancelBooking(booking.ID, types.Actor{ID: other.ID, Role: types.ROLE_STUDENT})
		var authErr *AuthorizationError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("cancelling a tutor booking frees the slot", func(t *testing.T) {
		tutorUser := seedUser(t, conn, types.ROLE_TUTOR)
		tutor := seedTutor(t, conn, tutorUser, 40)
		student := seedUser(t, conn, types.ROLE_STUDENT)
		params := &types.CreateTutorBookingRequestBody{
			TutorID:         tutor.ID,
			StartDate:       futureDate(14),
			TimeSlot:        "16:00-17:00",
			DurationMinutes: 60,
		}
		booking, err := CreateTutorBooking(student.ID, params)
		require.Nil(t, err)

		_, err = CancelBooking(booking.ID, types.Actor{ID: student.ID, Role: types.ROLE_STUDENT})
		require.Nil(t, err)

		other := seedUser(t, conn, types.ROLE_STUDENT)
		_, err = CreateTutorBooking(other.ID, params)
		require.Nil(t, err)
	})
}
