package lifecycle

import "strings"

// Operation is the upstream endpoint an action maps to. Path templates use
// {id} for the appointment id, {serviceId} for a service line or catalog
// service, {staffId} for a staff member and {reviewId} for a review.
type Operation struct {
	Method string
	Path   string
}

// URL expands the path template with the given variables.
func (o Operation) URL(vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(o.Path)
}

// surface is the single table every role-conditional lookup goes through.
// An action absent from a role's row is not exposed to that role at all.
var surface = map[Role]map[Action]Operation{
	RoleCustomer: {
		ActionCreateAppointment:  {Method: "POST", Path: "/appointments"},
		ActionListMyAppointments: {Method: "GET", Path: "/appointments/my"},
		ActionReschedule:         {Method: "PUT", Path: "/appointments/{id}/reschedule"},
		ActionCancel:             {Method: "DELETE", Path: "/appointments/{id}"},
		ActionSubmitReview:       {Method: "POST", Path: "/reviews"},
		ActionAvailableSlots:     {Method: "GET", Path: "/availability/available-slots"},
		ActionCreatePaymentInt:   {Method: "POST", Path: "/payments/create-intent"},
		ActionVerifyOwnPayment:   {Method: "POST", Path: "/payments/verify"},
		ActionProfile:            {Method: "GET", Path: "/users/profile"},
		ActionListServices:       {Method: "GET", Path: "/services"},
		ActionListStaff:          {Method: "GET", Path: "/staff"},
	},
	RoleStaff: {
		ActionListStaffSchedule:   {Method: "GET", Path: "/appointments/staff/my"},
		ActionConfirm:             {Method: "PUT", Path: "/admin/appointments/{id}/confirm"},
		ActionCompleteService:     {Method: "PUT", Path: "/appointments/{id}/complete-service/{serviceId}"},
		ActionCompleteAppointment: {Method: "PUT", Path: "/appointments/{id}/complete"},
		ActionRespondToReview:     {Method: "PUT", Path: "/reviews/{reviewId}/response"},
		ActionAvailableSlots:      {Method: "GET", Path: "/availability/available-slots"},
		ActionProfile:             {Method: "GET", Path: "/users/profile"},
		ActionListServices:        {Method: "GET", Path: "/services"},
		ActionListStaff:           {Method: "GET", Path: "/staff"},
	},
	RoleAdmin: {
		ActionListAll:             {Method: "GET", Path: "/admin/appointments"},
		ActionConfirm:             {Method: "PUT", Path: "/admin/appointments/{id}/confirm"},
		ActionVerifyPayment:       {Method: "POST", Path: "/admin/appointments/{id}/verify-payment"},
		ActionVerifyAndConfirm:    {Method: "POST", Path: "/admin/appointments/{id}/verify-and-confirm"},
		ActionCancel:              {Method: "DELETE", Path: "/appointments/{id}"},
		ActionCompleteService:     {Method: "PUT", Path: "/appointments/{id}/complete-service/{serviceId}"},
		ActionCompleteAppointment: {Method: "PUT", Path: "/appointments/{id}/complete"},
		ActionRespondToReview:     {Method: "PUT", Path: "/reviews/{reviewId}/response"},
		ActionAvailableSlots:      {Method: "GET", Path: "/availability/available-slots"},
		ActionProfile:             {Method: "GET", Path: "/users/profile"},
		ActionListServices:        {Method: "GET", Path: "/services"},
		ActionListStaff:           {Method: "GET", Path: "/staff"},
		ActionCreateService:       {Method: "POST", Path: "/services"},
		ActionUpdateService:       {Method: "PUT", Path: "/services/{serviceId}"},
		ActionDeactivateService:   {Method: "DELETE", Path: "/services/{serviceId}"},
		ActionCreateStaff:         {Method: "POST", Path: "/staff"},
		ActionUpdateStaff:         {Method: "PUT", Path: "/staff/{staffId}"},
		ActionDeactivateStaff:     {Method: "DELETE", Path: "/staff/{staffId}"},
	},
}

// Lookup resolves the operation an action maps to for a role. The second
// return is false when the role must not see the action at all; attempting it
// anyway is a permission error, never a precondition one.
func Lookup(role Role, action Action) (Operation, bool) {
	ops, ok := surface[role]
	if !ok {
		return Operation{}, false
	}
	op, ok := ops[action]
	return op, ok
}

// Exposed reports whether the role's allow-list contains the action.
func Exposed(role Role, action Action) bool {
	_, ok := Lookup(role, action)
	return ok
}

// transitionOrder fixes the iteration order of Evaluate results.
var transitionOrder = []Action{
	ActionConfirm,
	ActionVerifyPayment,
	ActionVerifyAndConfirm,
	ActionReschedule,
	ActionCancel,
	ActionCompleteService,
	ActionCompleteAppointment,
	ActionSubmitReview,
	ActionRespondToReview,
}

// Transitions returns the lifecycle transitions a role may ever request, in
// stable order.
func Transitions(role Role) []Action {
	var actions []Action
	for _, action := range transitionOrder {
		if Exposed(role, action) {
			actions = append(actions, action)
		}
	}
	return actions
}
