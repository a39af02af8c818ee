package main

import (
	"lingua/src/db"
	"lingua/src/models"
	"lingua/src/types"
	"lingua/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func actorFrom(ctx *gin.Context) types.Actor {
	return types.Actor{
		ID:   ctx.GetUint("id"),
		Role: types.Role(ctx.GetString("role")),
	}
}

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings/course", func(ctx *gin.Context) {
			var body types.CreateCourseBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.CreateCourseBooking(ctx.GetUint("id"), &body)
			if err != nil {
				abortWithDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		POST("/bookings/tutor", func(ctx *gin.Context) {
			var body types.CreateTutorBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.CreateTutorBooking(ctx.GetUint("id"), &body)
			if err != nil {
				abortWithDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		POST("/bookings/visa", func(ctx *gin.Context) {
			var body types.CreateVisaBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.CreateVisaBooking(ctx.GetUint("id"), &body)
			if err != nil {
				abortWithDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			bookings, err := utils.GetOwnBookings(ctx.GetUint("id"))
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actor := actorFrom(ctx)
			var booking models.Booking
			db := db.GetDb()
			if err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				Preload("Course").
				Preload("Tutor").
				Preload("VisaService").
				Preload("Payments").
				First(&booking).
				Error; err != nil {
				log.Printf("Error retrieving Booking [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			if booking.StudentID != actor.ID && actor.Role != types.ROLE_ADMIN {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "you do not own this booking"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PATCH("/bookings/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateBookingStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.UpdateBookingStatus(params.ID, actorFrom(ctx), body.Status, body.Notes)
			if err != nil {
				abortWithDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.CancelBooking(params.ID, actorFrom(ctx))
			if err != nil {
				abortWithDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		})
	return g
}
