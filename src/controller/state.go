package controller

import (
	"net/http"

	"github.com/joshuakessell/club-ops-deploy-sub001/src/schemas"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/service"

	"github.com/gin-gonic/gin"
)

type StateController struct {
	State      *service.State
	Dispatcher *service.Dispatcher
}

func NewStateController(state *service.State, dispatcher *service.Dispatcher) *StateController {
	return &StateController{
		State:      state,
		Dispatcher: dispatcher,
	}
}

// @Summary Get kiosk state
// @Description Returns the derived view and the redacted session mirror for rendering
// @Tags state
// @Produce json
// @Success 200 {object} schemas.StateResponse
// @Failure 401 {object} models.APIError
// @Router /state [get]
func (sc *StateController) GetState(ctx *gin.Context) {
	current := sc.State.Current()
	now := sc.State.Now()

	resp := schemas.StateResponse{
		View:                 current.View,
		Session:              current.Session,
		Negotiation:          current.Negotiation,
		Inventory:            current.Inventory,
		MembershipStatus:     service.ResolveSessionMembership(&current.Session, now),
		SelectionEnabled:     service.SelectionEnabled(&current.Session, now),
		ConfirmationRequired: current.ConfirmationRequired,
		HighlightedRental:    current.Highlighted,
		Submitting:           sc.Dispatcher.Submitting(),
	}
	if current.Session.PaymentFailureReason != "" {
		resp.PaymentNotice = schemas.AttendantNotice
	}

	ctx.JSON(http.StatusOK, resp)
}

// @Summary Health check
// @Tags state
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (sc *StateController) GetHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
