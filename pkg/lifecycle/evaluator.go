package lifecycle

import (
	"time"

	"salongate/pkg/model"
)

// ModifyWindow is the minimum lead time a customer needs to reschedule or
// cancel.
const ModifyWindow = 24 * time.Hour

// Disabled-action reasons surfaced to the caller.
const (
	ReasonPaymentRequired   = "payment required"
	ReasonPaymentUnverified = "payment not verified; verify payment first"
	ReasonPaymentSettled    = "payment already verified"
	ReasonNotPending        = "appointment is not pending"
	ReasonNotConfirmed      = "appointment is not confirmed"
	ReasonInsideWindow      = "cannot reschedule or cancel within 24 hours of appointment"
	ReasonTerminal          = "appointment is already completed or cancelled"
	ReasonCancelled         = "appointment is cancelled"
	ReasonAllCompleted      = "all services are already completed"
	ReasonNotCompleted      = "appointment is not completed yet"
	ReasonAlreadyReviewed   = "a review already exists for this service"
	ReasonNothingToReview   = "no completed service is awaiting a review"
	ReasonNoReview          = "no review to respond to"
	ReasonAlreadyResponded  = "this review already has a response"
)

// Evaluate decides, for every transition the role may ever request, whether
// it is currently permitted against the given snapshot. It is pure and
// deterministic: same snapshot, instant and role always yield the same
// decisions. The result is advisory; the backend re-validates every rule
// before mutating state.
//
// Ownership is assumed: the snapshot must come from the role-appropriate
// listing, which scopes customers to their own appointments.
func Evaluate(a *model.Appointment, now time.Time, role Role) map[Action]Decision {
	decisions := make(map[Action]Decision)
	for _, action := range Transitions(role) {
		decisions[action] = decide(a, now, role, action)
	}
	return decisions
}

func decide(a *model.Appointment, now time.Time, role Role, action Action) Decision {
	switch action {
	case ActionConfirm:
		return decideConfirm(a)
	case ActionVerifyPayment:
		return decideVerifyPayment(a)
	case ActionVerifyAndConfirm:
		return decideVerifyAndConfirm(a)
	case ActionReschedule:
		return decideReschedule(a, now)
	case ActionCancel:
		return decideCancel(a, now, role)
	case ActionCompleteService:
		return decideCompleteAnyService(a)
	case ActionCompleteAppointment:
		return decideCompleteAppointment(a)
	case ActionSubmitReview:
		return decideSubmitAnyReview(a)
	case ActionRespondToReview:
		return decideRespondAnyReview(a)
	}
	return denied("unknown action")
}

func decideConfirm(a *model.Appointment) Decision {
	if a.Status != model.StatusPending {
		return denied(ReasonNotPending)
	}
	if a.Payment == nil {
		return denied(ReasonPaymentRequired)
	}
	if !a.Payment.Paid() {
		return denied(ReasonPaymentUnverified)
	}
	return allowed()
}

func decideVerifyPayment(a *model.Appointment) Decision {
	if a.Payment == nil {
		return denied(ReasonPaymentRequired)
	}
	if a.Payment.Paid() {
		return denied(ReasonPaymentSettled)
	}
	return allowed()
}

func decideVerifyAndConfirm(a *model.Appointment) Decision {
	if a.Status != model.StatusPending {
		return denied(ReasonNotPending)
	}
	if a.Payment == nil {
		return denied(ReasonPaymentRequired)
	}
	if a.Payment.Paid() {
		return denied(ReasonPaymentSettled)
	}
	return allowed()
}

func decideReschedule(a *model.Appointment, now time.Time) Decision {
	if a.Status != model.StatusConfirmed {
		return denied(ReasonNotConfirmed)
	}
	if a.StartTime.Sub(now) < ModifyWindow {
		return denied(ReasonInsideWindow)
	}
	return allowed()
}

func decideCancel(a *model.Appointment, now time.Time, role Role) Decision {
	if a.Status != model.StatusPending && a.Status != model.StatusConfirmed {
		return denied(ReasonTerminal)
	}
	if role == RoleCustomer && a.StartTime.Sub(now) < ModifyWindow {
		return denied(ReasonInsideWindow)
	}
	return allowed()
}

func decideCompleteAnyService(a *model.Appointment) Decision {
	if a.Status == model.StatusCancelled {
		return denied(ReasonCancelled)
	}
	for _, svc := range a.Services() {
		if svc.Status != model.StatusCompleted {
			return allowed()
		}
	}
	return denied(ReasonAllCompleted)
}

func decideCompleteAppointment(a *model.Appointment) Decision {
	if a.Status.Terminal() {
		return denied(ReasonTerminal)
	}
	return allowed()
}

func decideSubmitAnyReview(a *model.Appointment) Decision {
	for _, svc := range a.Services() {
		if d := CanSubmitReview(a, svc.ServiceID); d.Allowed {
			return d
		}
	}
	return denied(ReasonNothingToReview)
}

func decideRespondAnyReview(a *model.Appointment) Decision {
	found := false
	for _, svc := range a.Services() {
		review := a.ReviewFor(svc.ServiceID)
		if review == nil {
			continue
		}
		found = true
		if !review.Responded() {
			return allowed()
		}
	}
	if !found {
		return denied(ReasonNoReview)
	}
	return denied(ReasonAlreadyResponded)
}

// CanCompleteService decides completion of one service line. The appointment
// completes as a derived effect once the last line does; see
// DerivesCompletion.
func CanCompleteService(a *model.Appointment, serviceID int64) Decision {
	if a.Status == model.StatusCancelled {
		return denied(ReasonCancelled)
	}
	svc, ok := a.ServiceByID(serviceID)
	if !ok {
		return denied("service is not part of this appointment")
	}
	if svc.Status == model.StatusCompleted {
		return denied("service is already completed")
	}
	return allowed()
}

// CanSubmitReview decides whether the customer may review one service.
// Exactly one review per completed (sub-)service.
func CanSubmitReview(a *model.Appointment, serviceID int64) Decision {
	svc, ok := a.ServiceByID(serviceID)
	if !ok {
		return denied("service is not part of this appointment")
	}
	if a.Status != model.StatusCompleted && svc.Status != model.StatusCompleted {
		return denied(ReasonNotCompleted)
	}
	if a.ReviewFor(serviceID) != nil {
		return denied(ReasonAlreadyReviewed)
	}
	return allowed()
}

// CanRespondToReview decides whether the one permitted staff response may
// still be attached.
func CanRespondToReview(review *model.Review) Decision {
	if review == nil {
		return denied(ReasonNoReview)
	}
	if review.Responded() {
		return denied(ReasonAlreadyResponded)
	}
	return allowed()
}

// DerivesCompletion reports that every service line has completed while the
// appointment itself still reads as unfinished: callers should treat the
// appointment as completed without issuing a separate completion call.
func DerivesCompletion(a *model.Appointment) bool {
	if a.Status == model.StatusCancelled || a.Status == model.StatusCompleted {
		return false
	}
	return a.AllServicesCompleted()
}

// EffectiveStatus is the appointment status with the derived completion rule
// applied.
func EffectiveStatus(a *model.Appointment) model.Status {
	if DerivesCompletion(a) {
		return model.StatusCompleted
	}
	return a.Status
}
