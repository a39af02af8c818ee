package main

import (
	"lingua/src/types"
	"lingua/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func reviewHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reviews", func(ctx *gin.Context) {
			var body types.CreateReviewRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			review, err := utils.AddReview(ctx.GetUint("id"), &body)
			if err != nil {
				abortWithDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": review})
		}).
		GET("/reviews", func(ctx *gin.Context) {
			var query struct {
				TargetType types.ReviewTarget `form:"target_type" binding:"required"`
				TargetID   uint               `form:"target_id" binding:"required"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			reviews, err := utils.GetReviewsForTarget(query.TargetType, query.TargetID)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reviews, "count": len(reviews)})
		})
	return g
}
