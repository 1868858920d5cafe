package lifecycle

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type Action string

// Lifecycle transitions. Preconditions are evaluated by Evaluate and the
// targeted Can* helpers; the backend independently re-checks every rule.
const (
	ActionConfirm             Action = "confirm"
	ActionVerifyPayment       Action = "verify_payment"
	ActionVerifyAndConfirm    Action = "verify_and_confirm"
	ActionReschedule          Action = "reschedule"
	ActionCancel              Action = "cancel"
	ActionCompleteService     Action = "complete_service"
	ActionCompleteAppointment Action = "complete_appointment"
	ActionSubmitReview        Action = "submit_review"
	ActionRespondToReview     Action = "respond_to_review"
)

// Snapshot and supporting operations. These have no lifecycle precondition;
// they are gated by role alone.
const (
	ActionCreateAppointment  Action = "create_appointment"
	ActionListMyAppointments Action = "list_my_appointments"
	ActionListStaffSchedule  Action = "list_staff_appointments"
	ActionListAll            Action = "list_all_appointments"
	ActionAvailableSlots     Action = "available_slots"
	ActionCreatePaymentInt   Action = "create_payment_intent"
	ActionVerifyOwnPayment   Action = "verify_own_payment"
	ActionProfile            Action = "profile"
)

// Catalog operations. Listings feed booking (a serviceId/staffId pair has to
// come from somewhere); mutations are the admin console's management surface.
// Deactivation is soft: the backend hides the entry from future listings but
// existing appointments keep referencing it.
const (
	ActionListServices      Action = "list_services"
	ActionListStaff         Action = "list_staff"
	ActionCreateService     Action = "create_service"
	ActionUpdateService     Action = "update_service"
	ActionDeactivateService Action = "deactivate_service"
	ActionCreateStaff       Action = "create_staff"
	ActionUpdateStaff       Action = "update_staff"
	ActionDeactivateStaff   Action = "deactivate_staff"
)

// Decision is the evaluator's verdict for one action against one snapshot.
// Reason is a user-facing explanation when the action is disabled.
type Decision struct {
	Allowed bool
	Reason  string
}

func allowed() Decision {
	return Decision{Allowed: true}
}

func denied(reason string) Decision {
	return Decision{Reason: reason}
}
