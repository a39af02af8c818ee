package utils

import (
	"lingua/src/models"
	"lingua/src/types"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentFlow(t *testing.T) {
	conn := newTestDb(t)
	owner := seedUser(t, conn, types.ROLE_SCHOOL)
	school := seedSchool(t, conn, owner)
	course := seedCourse(t, conn, school, 5)
	student := seedUser(t, conn, types.ROLE_STUDENT)
	actor := types.Actor{ID: student.ID, Role: types.ROLE_STUDENT}

	booking, err := CreateCourseBooking(student.ID, &types.CreateCourseBookingRequestBody{CourseID: course.ID})
	require.Nil(t, err)

	payment, err := CreatePaymentIntent(actor, &types.CreatePaymentIntentRequestBody{
		BookingID: booking.ID,
		Method:    "card",
	})
	require.Nil(t, err)
	assert.Equal(t, types.PAYMENT_RECORD_PENDING, payment.Status)
	assert.Equal(t, booking.TotalPrice, payment.Amount)
	assert.NotEqual(t, "", payment.TransactionID)

	t.Run("wrong transaction id is rejected", func(t *testing.T) {
		_, err := ConfirmPayment(payment.ID.String(), "txn-bogus", actor)
		var invalid *ValidationError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("confirmation settles payment and promotes the booking", func(t *testing.T) {
		confirmed, err := ConfirmPayment(payment.ID.String(), payment.TransactionID, actor)
		require.Nil(t, err)
		assert.Equal(t, types.BOOKING_CONFIRMED, confirmed.Status)
		assert.Equal(t, types.PAYMENT_PAID, confirmed.PaymentStatus)

		var stored models.Payment
		require.Nil(t, conn.First(&stored, "id = ?", payment.ID).Error)
		assert.Equal(t, types.PAYMENT_RECORD_SUCCESS, stored.Status)
	})

	t.Run("confirming twice changes nothing", func(t *testing.T) {
		again, err := ConfirmPayment(payment.ID.String(), payment.TransactionID, actor)
		require.Nil(t, err)
		assert.Equal(t, types.BOOKING_CONFIRMED, again.Status)
		assert.Equal(t, types.PAYMENT_PAID, again.PaymentStatus)
	})

	t.Run("a paid booking takes no further intents", func(t *testing.T) {
		_, err := CreatePaymentIntent(actor, &types.CreatePaymentIntentRequestBody{
			BookingID: booking.ID,
			Method:    "card",
		})
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
	})
}

func TestPaymentGuards(t *testing.T) {
	conn := newTestDb(t)
	owner := seedUser(t, conn, types.ROLE_SCHOOL)
	school := seedSchool(t, conn, owner)
	course := seedCourse(t, conn, school, 5)
	student := seedUser(t, conn, types.ROLE_STUDENT)
	actor := types.Actor{ID: student.ID, Role: types.ROLE_STUDENT}

	t.Run("unknown booking returns not found", func(t *testing.T) {
		_, err := CreatePaymentIntent(actor, &types.CreatePaymentIntentRequestBody{BookingID: 99999, Method: "card"})
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("only the owning student may open an intent", func(t *testing.T) {
		booking, err := CreateCourseBooking(student.ID, &types.CreateCourseBookingRequestBody{CourseID: course.ID})
		require.Nil(t, err)

		other := seedUser(t, conn, types.ROLE_STUDENT)
		_, err = CreatePaymentIntent(types.Actor{ID: other.ID, Role: types.ROLE_STUDENT}, &types.CreatePaymentIntentRequestBody{
			BookingID: booking.ID,
			Method:    "card",
		})
		var authErr *AuthorizationError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("cancelled bookings cannot be paid", func(t *testing.T) {
		booking, err := CreateCourseBooking(student.ID, &types.CreateCourseBookingRequestBody{
			CourseID:  seedCourse(t, conn, school, 5).ID,
			StartDate: futureDate(30),
		})
		require.Nil(t, err)
		payment, err := CreatePaymentIntent(actor, &types.CreatePaymentIntentRequestBody{BookingID: booking.ID, Method: "card"})
		require.Nil(t, err)

		_, err = CancelBooking(booking.ID, actor)
		require.Nil(t, err)

		// The stale intent cannot resurrect the booking.
		_, err = ConfirmPayment(payment.ID.String(), payment.TransactionID, actor)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		var stored models.Booking
		require.Nil(t, conn.First(&stored, booking.ID).Error)
		assert.Equal(t, types.BOOKING_CANCELLED, stored.Status)
		assert.Equal(t, types.PAYMENT_UNPAID, stored.PaymentStatus)

		_, err = CreatePaymentIntent(actor, &types.CreatePaymentIntentRequestBody{BookingID: booking.ID, Method: "card"})
		require.ErrorAs(t, err, &conflict)
	})

	t.Run("malformed payment id is a validation error", func(t *testing.T) {
		_, err := ConfirmPayment("not-a-uuid", "txn", actor)
		var invalid *ValidationError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("unknown payment returns not found", func(t *testing.T) {
		_, err := ConfirmPayment(uuid.NewString(), "txn", actor)
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}
