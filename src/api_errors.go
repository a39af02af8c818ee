package main

import (
	"errors"
	"lingua/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// statusForError maps the booking core's error taxonomy onto HTTP statuses.
// Anything unrecognized is a plain 400 so database errors never leak detail.
func statusForError(err error) int {
	var (
		validation *utils.ValidationError
		notFound   *utils.NotFoundError
		conflict   *utils.ConflictError
		authz      *utils.AuthorizationError
		policy     *utils.PolicyError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &authz):
		return http.StatusForbidden
	case errors.As(err, &policy):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func abortWithDomainError(ctx *gin.Context, err error) {
	ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
}
