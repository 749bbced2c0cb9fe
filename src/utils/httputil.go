package utils

import (
	"github.com/joshuakessell/club-ops-deploy-sub001/logger"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"

	"github.com/gin-gonic/gin"
)

func SendError(ctx *gin.Context, status int, title string, detail string, errType string, instance string) {
	SendCodedError(ctx, status, title, detail, errType, instance, "")
}

// SendCodedError writes an RFC 7807 error with a machine-readable code the
// renderer can branch on.
func SendCodedError(ctx *gin.Context, status int, title string, detail string, errType string, instance string, code string) {
	errorResp := models.APIError{
		Type:     errType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
		Code:     code,
	}
	ctx.JSON(status, errorResp)
	logger.Logger.Error("Error: ", detail)
}
