package controller

import (
	"errors"
	"net/http"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/backend"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/schemas"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/utils"

	"github.com/gin-gonic/gin"
)

const errorType = "https://checkin-kiosk.local/action-error"

// actionRefusal maps one local integrity error to the machine code the
// renderer branches on.
type actionRefusal struct {
	code   string
	detail string
}

var refusals = map[error]actionRefusal{
	models.ErrSubmissionInFlight:        {"SUBMISSION_IN_FLIGHT", "Another action is still being submitted"},
	models.ErrNoActiveSession:           {"NO_ACTIVE_SESSION", "No session is active on this lane"},
	models.ErrMembershipChoiceRequired:  {"MEMBERSHIP_CHOICE_REQUIRED", "A membership choice is required before selecting"},
	models.ErrRentalNotAllowed:          {"RENTAL_NOT_ALLOWED", "The rental type is not available for this visit"},
	models.ErrNoPendingProposal:         {"NO_PENDING_PROPOSAL", "There is no proposal to confirm"},
	models.ErrSelectionLocked:           {"SELECTION_LOCKED", "The selection is already confirmed"},
	models.ErrNotWaitlisted:             {"NOT_WAITLISTED", "The lane is not in the waitlist flow"},
	models.ErrDisclaimerNotAcknowledged: {"DISCLAIMER_REQUIRED", "The upgrade disclaimer must be acknowledged"},
	models.ErrBackupUnavailable:         {"BACKUP_UNAVAILABLE", "The backup rental type has no availability"},
}

// sendActionError translates dispatcher errors for the renderer. Local
// refusals and the language redirect come back as 409 conflicts with a code;
// everything else collapses to a generic upstream failure so backend detail
// never reaches the customer surface.
func sendActionError(ctx *gin.Context, err error) {
	for sentinel, refusal := range refusals {
		if errors.Is(err, sentinel) {
			utils.SendCodedError(ctx, http.StatusConflict, "Conflict", refusal.detail, errorType, ctx.FullPath(), refusal.code)
			return
		}
	}
	if errors.Is(err, backend.ErrLanguageRequired) {
		utils.SendCodedError(ctx, http.StatusConflict, "Conflict", "A language choice is required first", errorType, ctx.FullPath(), schemas.CodeLanguageRequired)
		return
	}
	var cmdErr *backend.CommandError
	if errors.As(err, &cmdErr) {
		utils.SendCodedError(ctx, http.StatusConflict, "Conflict", "The request was rejected", errorType, ctx.FullPath(), cmdErr.Code)
		return
	}
	utils.SendCodedError(ctx, http.StatusBadGateway, "Bad Gateway", "The check-in service is unavailable", errorType, ctx.FullPath(), "UPSTREAM_UNAVAILABLE")
}

func sendBadRequest(ctx *gin.Context, err error) {
	utils.SendError(ctx, http.StatusBadRequest, "Bad Request", "Invalid JSON format: "+err.Error(), "https://checkin-kiosk.local/validation-error", ctx.FullPath())
}
