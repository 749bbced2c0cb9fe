package service

import (
	"github.com/joshuakessell/club-ops-deploy-sub001/src/models"
)

// DeriveView maps the session mirror to the screen the renderer must show.
// First match wins; the ordering is a contract, not incidental. Any product
// request to reorder it must change this function explicitly.
//
// reset is true when the COMPLETED rule matched: the caller must clear the
// mirror back to a blank session. An acknowledged or ID-blocked session
// stays idle without destroying the mirror, and a created assignment shows
// the completion screen even if the status already flipped to COMPLETED.
func DeriveView(s *models.Session, n *models.Negotiation) (view models.View, reset bool) {
	switch {
	case s.KioskAcknowledgedAt != nil:
		// Customer dismissed the completion screen; stay locked-idle until
		// the server truly completes the session.
		return models.ViewIdle, false
	case s.IDScanIssue != "":
		// Blocking modal is surfaced by the renderer; the view stays idle.
		return models.ViewIdle, false
	case s.AssignedResourceType != "" && s.AssignedResourceNumber != nil:
		return models.ViewComplete, false
	case s.Status == models.StatusCompleted:
		return models.ViewIdle, true
	case s.Active() && s.CustomerPrimaryLanguage == "":
		return models.ViewLanguage, false
	case s.PastDueBlocked:
		// Selection screen in informational mode. Language already resolved
		// above, so blocking copy is never shown untranslated.
		return models.ViewSelection, false
	case s.PaymentStatus == models.PaymentPaid && !s.AgreementSigned && s.AgreementBypassPending:
		return models.ViewAgreementBypass, false
	case s.PaymentStatus == models.PaymentPaid && !s.AgreementSigned && (s.Mode == models.ModeCheckin || s.Mode == models.ModeRenewal):
		return models.ViewAgreement, false
	case n.SelectionConfirmed && s.PaymentStatus == models.PaymentDue:
		return models.ViewPayment, false
	case s.Active():
		return models.ViewSelection, false
	default:
		return models.ViewIdle, false
	}
}
