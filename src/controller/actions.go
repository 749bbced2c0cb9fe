package controller

import (
	"net/http"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/schemas"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ActionsController struct {
	Dispatcher *service.Dispatcher
	Logger     *logrus.Logger
}

func NewActionsController(dispatcher *service.Dispatcher, log *logrus.Logger) *ActionsController {
	return &ActionsController{
		Dispatcher: dispatcher,
		Logger:     log,
	}
}

func ok(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, schemas.ActionResponse{Status: "accepted"})
}

// @Summary Set the visit language
// @Tags actions
// @Accept json
// @Produce json
// @Param LanguageActionRequest body schemas.LanguageActionRequest true "Language choice"
// @Success 200 {object} schemas.ActionResponse
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /actions/language [post]
func (ac *ActionsController) SetLanguage(ctx *gin.Context) {
	var req schemas.LanguageActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendBadRequest(ctx, err)
		return
	}
	if err := ac.Dispatcher.SetLanguage(ctx.Request.Context(), models.Language(req.Language)); err != nil {
		sendActionError(ctx, err)
		return
	}
	ok(ctx)
}

// @Summary Propose a rental selection
// @Description Proposes a rental type, or enters the waitlist flow when it has no availability
// @Tags actions
// @Accept json
// @Produce json
// @Param ProposeActionRequest body schemas.ProposeActionRequest true "Rental type"
// @Success 200 {object} schemas.ProposeActionResponse
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /actions/propose [post]
func (ac *ActionsController) ProposeSelection(ctx *gin.Context) {
	var req schemas.ProposeActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendBadRequest(ctx, err)
		return
	}
	waitlisted, err := ac.Dispatcher.ProposeSelection(ctx.Request.Context(), models.RentalType(req.RentalType))
	if err != nil {
		sendActionError(ctx, err)
		return
	}
	if waitlisted {
		ac.Logger.WithField("rental_type", req.RentalType).Info("Entered waitlist flow")
	}
	ctx.JSON(http.StatusOK, schemas.ProposeActionResponse{Waitlisted: waitlisted})
}

// @Summary Submit a waitlist backup selection
// @Tags actions
// @Accept json
// @Produce json
// @Param WaitlistBackupActionRequest body schemas.WaitlistBackupActionRequest true "Backup choice"
// @Success 200 {object} schemas.ActionResponse
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /actions/waitlist-backup [post]
func (ac *ActionsController) SubmitWaitlistBackup(ctx *gin.Context) {
	var req schemas.WaitlistBackupActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendBadRequest(ctx, err)
		return
	}
	if err := ac.Dispatcher.SubmitWaitlistBackup(ctx.Request.Context(), models.RentalType(req.RentalType), req.DisclaimerAcknowledged); err != nil {
		sendActionError(ctx, err)
		return
	}
	ok(ctx)
}

// @Summary Confirm the pending selection
// @Tags actions
// @Produce json
// @Success 200 {object} schemas.ActionResponse
// @Failure 409 {object} models.APIError
// @Router /actions/confirm-selection [post]
func (ac *ActionsController) ConfirmSelection(ctx *gin.Context) {
	if err := ac.Dispatcher.ConfirmSelection(ctx.Request.Context()); err != nil {
		sendActionError(ctx, err)
		return
	}
	ok(ctx)
}

// @Summary Record the explicit membership choice
// @Tags actions
// @Accept json
// @Produce json
// @Param MembershipChoiceActionRequest body schemas.MembershipChoiceActionRequest true "Membership choice"
// @Success 200 {object} schemas.ActionResponse
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /actions/membership-choice [post]
func (ac *ActionsController) SetMembershipChoice(ctx *gin.Context) {
	var req schemas.MembershipChoiceActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendBadRequest(ctx, err)
		return
	}
	if err := ac.Dispatcher.SetMembershipChoice(ctx.Request.Context(), models.MembershipChoice(req.Choice)); err != nil {
		sendActionError(ctx, err)
		return
	}
	ok(ctx)
}

// @Summary Answer a customer confirmation prompt
// @Tags actions
// @Produce json
// @Success 200 {object} schemas.ActionResponse
// @Failure 409 {object} models.APIError
// @Router /actions/customer-confirm [post]
func (ac *ActionsController) CustomerConfirm(ctx *gin.Context) {
	if err := ac.Dispatcher.CustomerConfirm(ctx.Request.Context()); err != nil {
		sendActionError(ctx, err)
		return
	}
	ok(ctx)
}

// @Summary Report a completed agreement signature
// @Tags actions
// @Produce json
// @Success 200 {object} schemas.ActionResponse
// @Failure 409 {object} models.APIError
// @Router /actions/sign-agreement [post]
func (ac *ActionsController) SignAgreement(ctx *gin.Context) {
	if err := ac.Dispatcher.SignAgreement(ctx.Request.Context()); err != nil {
		sendActionError(ctx, err)
		return
	}
	ok(ctx)
}

// @Summary Dismiss the completion screen
// @Tags actions
// @Produce json
// @Success 200 {object} schemas.ActionResponse
// @Failure 409 {object} models.APIError
// @Router /actions/acknowledge-complete [post]
func (ac *ActionsController) AcknowledgeComplete(ctx *gin.Context) {
	if err := ac.Dispatcher.AcknowledgeComplete(ctx.Request.Context()); err != nil {
		sendActionError(ctx, err)
		return
	}
	ok(ctx)
}

// @Summary Reset the lane
// @Tags actions
// @Produce json
// @Success 200 {object} schemas.ActionResponse
// @Failure 409 {object} models.APIError
// @Router /actions/reset [post]
func (ac *ActionsController) ResetLane(ctx *gin.Context) {
	if err := ac.Dispatcher.ResetLane(ctx.Request.Context()); err != nil {
		sendActionError(ctx, err)
		return
	}
	ok(ctx)
}
