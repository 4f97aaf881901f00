package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvhien/learnhub/internal/datamanager"
	"github.com/mvhien/learnhub/internal/dto"
)

// StatusForKind maps the data manager's error vocabulary onto HTTP codes.
// Validation failures become 4xx; everything else is a 5xx with a generic
// message so internal detail never leaks.
func StatusForKind(kind datamanager.Kind) int {
	switch kind {
	case datamanager.KindAlreadyEnrolled, datamanager.KindDuplicateRequest, datamanager.KindInvalidState:
		return http.StatusConflict
	case datamanager.KindNotEnrolled, datamanager.KindNotFound:
		return http.StatusNotFound
	case datamanager.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the error in the stable wire shape.
func RespondError(ctx *gin.Context, err error) {
	kind := datamanager.KindOf(err)
	status := StatusForKind(kind)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Operation failed, please try again"
	}
	ctx.JSON(status, dto.ErrorResponse{Message: message, Kind: string(kind)})
}
