package main

import (
	"lingua/src/db"
	"lingua/src/models"
	"lingua/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// The catalog surface is read-only browsing; every mutation of these records
// goes through the booking core or the (external) profile services.
func catalogHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/courses", func(ctx *gin.Context) {
			var courses []models.Course
			db := db.GetDb()
			if err := db.
				Where(&models.Course{IsActive: true}).
				Preload("School").
				Order("created_at desc").
				Limit(100).
				Find(&courses).
				Error; err != nil {
				log.Printf("Error retrieving Courses: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			for i := range courses {
				left := courses[i].MaxStudents - courses[i].EnrolledStudents
				courses[i].SeatsLeft = &left
			}
			ctx.JSON(http.StatusOK, gin.H{"data": courses, "count": len(courses)})
		}).
		GET("/courses/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var course models.Course
			db := db.GetDb()
			if err := db.
				Where(&models.Course{ID: params.ID}).
				Preload("School").
				First(&course).
				Error; err != nil {
				log.Printf("Error retrieving Course [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
				return
			}
			left := course.MaxStudents - course.EnrolledStudents
			course.SeatsLeft = &left
			ctx.JSON(http.StatusOK, gin.H{"data": course})
		}).
		GET("/tutors", func(ctx *gin.Context) {
			var tutors []models.Tutor
			db := db.GetDb()
			if err := db.
				Where(&models.Tutor{IsAvailable: true}).
				Order("rating desc").
				Limit(100).
				Find(&tutors).
				Error; err != nil {
				log.Printf("Error retrieving Tutors: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tutors, "count": len(tutors)})
		}).
		GET("/tutors/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var tutor models.Tutor
			db := db.GetDb()
			if err := db.
				Where(&models.Tutor{ID: params.ID}).
				First(&tutor).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "tutor not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": tutor})
		}).
		GET("/visa-services", func(ctx *gin.Context) {
			var services []models.VisaService
			db := db.GetDb()
			if err := db.
				Where(&models.VisaService{IsActive: true}).
				Order("created_at desc").
				Limit(100).
				Find(&services).
				Error; err != nil {
				log.Printf("Error retrieving VisaServices: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": services, "count": len(services)})
		})
	return g
}
