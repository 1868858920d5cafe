package lifecycle

import (
	"testing"
	"time"

	"salongate/pkg/model"
)

var evalNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func pendingAppointment(payment *model.Payment) *model.Appointment {
	return &model.Appointment{
		ID:        1,
		Status:    model.StatusPending,
		StartTime: evalNow.Add(72 * time.Hour),
		ServiceID: 10,
		StaffID:   20,
		Service:   &model.CatalogService{ID: 10, Name: "Haircut"},
		Staff:     &model.Staff{ID: 20, Name: "Dana"},
		Payment:   payment,
	}
}

func TestEvaluate_ConfirmRequiresSettledPayment(t *testing.T) {
	tests := []struct {
		name        string
		payment     *model.Payment
		wantConfirm bool
		wantReason  string
	}{
		{
			name:        "no payment record",
			payment:     nil,
			wantConfirm: false,
			wantReason:  ReasonPaymentRequired,
		},
		{
			name:        "unpaid payment",
			payment:     &model.Payment{ID: 5, Status: model.PaymentPending},
			wantConfirm: false,
			wantReason:  ReasonPaymentUnverified,
		},
		{
			name:        "failed payment",
			payment:     &model.Payment{ID: 5, Status: model.PaymentFailed},
			wantConfirm: false,
			wantReason:  ReasonPaymentUnverified,
		},
		{
			name:        "paid",
			payment:     &model.Payment{ID: 5, Status: model.PaymentPaid},
			wantConfirm: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decisions := Evaluate(pendingAppointment(tt.payment), evalNow, RoleAdmin)

			got := decisions[ActionConfirm]
			if got.Allowed != tt.wantConfirm {
				t.Errorf("Confirm allowed = %v, want %v", got.Allowed, tt.wantConfirm)
			}
			if !tt.wantConfirm && got.Reason != tt.wantReason {
				t.Errorf("Confirm reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestEvaluate_AbsentPaymentDisablesBothPaymentActions(t *testing.T) {
	decisions := Evaluate(pendingAppointment(nil), evalNow, RoleAdmin)

	for _, action := range []Action{ActionConfirm, ActionVerifyPayment, ActionVerifyAndConfirm} {
		d := decisions[action]
		if d.Allowed {
			t.Errorf("%s allowed with no payment record", action)
		}
		if d.Reason != ReasonPaymentRequired {
			t.Errorf("%s reason = %q, want %q", action, d.Reason, ReasonPaymentRequired)
		}
	}
}

func TestEvaluate_UnpaidPaymentOffersVerifyPaths(t *testing.T) {
	appt := pendingAppointment(&model.Payment{ID: 5, Status: model.PaymentPending})
	decisions := Evaluate(appt, evalNow, RoleAdmin)

	if decisions[ActionConfirm].Allowed {
		t.Error("Confirm allowed on unpaid appointment")
	}
	if !decisions[ActionVerifyPayment].Allowed {
		t.Errorf("VerifyPayment denied: %s", decisions[ActionVerifyPayment].Reason)
	}
	if !decisions[ActionVerifyAndConfirm].Allowed {
		t.Errorf("VerifyAndConfirm denied: %s", decisions[ActionVerifyAndConfirm].Reason)
	}
}

func TestEvaluate_SettledPaymentOnlyOffersConfirm(t *testing.T) {
	appt := pendingAppointment(&model.Payment{ID: 5, Status: model.PaymentPaid})
	decisions := Evaluate(appt, evalNow, RoleAdmin)

	if !decisions[ActionConfirm].Allowed {
		t.Errorf("Confirm denied: %s", decisions[ActionConfirm].Reason)
	}
	if decisions[ActionVerifyPayment].Allowed {
		t.Error("VerifyPayment allowed on settled payment")
	}
	if d := decisions[ActionVerifyPayment]; d.Reason != ReasonPaymentSettled {
		t.Errorf("VerifyPayment reason = %q, want %q", d.Reason, ReasonPaymentSettled)
	}
	if decisions[ActionVerifyAndConfirm].Allowed {
		t.Error("VerifyAndConfirm allowed on settled payment")
	}
}

func TestEvaluate_CustomerModifyWindow(t *testing.T) {
	tests := []struct {
		name      string
		status    model.Status
		startIn   time.Duration
		role      Role
		action    Action
		want      bool
		reason    string
	}{
		{
			name:    "reschedule well outside window",
			status:  model.StatusConfirmed,
			startIn: 48 * time.Hour,
			role:    RoleCustomer,
			action:  ActionReschedule,
			want:    true,
		},
		{
			name:    "reschedule inside window",
			status:  model.StatusConfirmed,
			startIn: 23 * time.Hour,
			role:    RoleCustomer,
			action:  ActionReschedule,
			want:    false,
			reason:  ReasonInsideWindow,
		},
		{
			name:    "reschedule exactly at boundary",
			status:  model.StatusConfirmed,
			startIn: 24 * time.Hour,
			role:    RoleCustomer,
			action:  ActionReschedule,
			want:    true,
		},
		{
			name:    "reschedule on pending appointment",
			status:  model.StatusPending,
			startIn: 48 * time.Hour,
			role:    RoleCustomer,
			action:  ActionReschedule,
			want:    false,
			reason:  ReasonNotConfirmed,
		},
		{
			name:    "customer cancel inside window",
			status:  model.StatusConfirmed,
			startIn: 2 * time.Hour,
			role:    RoleCustomer,
			action:  ActionCancel,
			want:    false,
			reason:  ReasonInsideWindow,
		},
		{
			name:    "customer cancel outside window",
			status:  model.StatusPending,
			startIn: 48 * time.Hour,
			role:    RoleCustomer,
			action:  ActionCancel,
			want:    true,
		},
		{
			name:    "admin cancel inside window",
			status:  model.StatusConfirmed,
			startIn: 2 * time.Hour,
			role:    RoleAdmin,
			action:  ActionCancel,
			want:    true,
		},
		{
			name:    "admin cancel on completed appointment",
			status:  model.StatusCompleted,
			startIn: -2 * time.Hour,
			role:    RoleAdmin,
			action:  ActionCancel,
			want:    false,
			reason:  ReasonTerminal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := &model.Appointment{
				ID:        1,
				Status:    tt.status,
				StartTime: evalNow.Add(tt.startIn),
				ServiceID: 10,
			}

			got := Evaluate(appt, evalNow, tt.role)[tt.action]
			if got.Allowed != tt.want {
				t.Errorf("%s allowed = %v, want %v (reason %q)", tt.action, got.Allowed, tt.want, got.Reason)
			}
			if !tt.want && got.Reason != tt.reason {
				t.Errorf("%s reason = %q, want %q", tt.action, got.Reason, tt.reason)
			}
		})
	}
}

func TestEvaluate_TerminalStatesFreezeTransitions(t *testing.T) {
	for _, status := range []model.Status{model.StatusCompleted, model.StatusCancelled} {
		appt := &model.Appointment{
			ID:        1,
			Status:    status,
			StartTime: evalNow.Add(48 * time.Hour),
			ServiceID: 10,
			Payment:   &model.Payment{ID: 5, Status: model.PaymentPaid},
		}

		decisions := Evaluate(appt, evalNow, RoleAdmin)
		for _, action := range []Action{ActionConfirm, ActionVerifyAndConfirm, ActionCancel, ActionCompleteAppointment} {
			if decisions[action].Allowed {
				t.Errorf("%s allowed on %s appointment", action, status)
			}
		}
	}
}

func TestCanCompleteService(t *testing.T) {
	appt := &model.Appointment{
		ID:     1,
		Status: model.StatusConfirmed,
		AppointmentServices: []model.AppointmentService{
			{ID: 100, ServiceID: 10, Status: model.StatusCompleted},
			{ID: 101, ServiceID: 11, Status: model.StatusConfirmed},
		},
	}

	if d := CanCompleteService(appt, 10); d.Allowed {
		t.Error("completing an already completed service line allowed")
	}
	if d := CanCompleteService(appt, 11); !d.Allowed {
		t.Errorf("completing a pending service line denied: %s", d.Reason)
	}
	if d := CanCompleteService(appt, 99); d.Allowed {
		t.Error("completing an unknown service allowed")
	}

	appt.Status = model.StatusCancelled
	if d := CanCompleteService(appt, 11); d.Allowed {
		t.Error("completing a service on a cancelled appointment allowed")
	}
}

func TestDerivedCompletion(t *testing.T) {
	appt := &model.Appointment{
		ID:     1,
		Status: model.StatusConfirmed,
		AppointmentServices: []model.AppointmentService{
			{ID: 100, ServiceID: 10, Status: model.StatusCompleted},
			{ID: 101, ServiceID: 11, Status: model.StatusConfirmed},
		},
	}

	if DerivesCompletion(appt) {
		t.Error("completion derived while a service line is open")
	}
	if got := EffectiveStatus(appt); got != model.StatusConfirmed {
		t.Errorf("EffectiveStatus = %s, want %s", got, model.StatusConfirmed)
	}

	appt.AppointmentServices[1].Status = model.StatusCompleted
	if !DerivesCompletion(appt) {
		t.Error("completion not derived after last service line completed")
	}
	if got := EffectiveStatus(appt); got != model.StatusCompleted {
		t.Errorf("EffectiveStatus = %s, want %s", got, model.StatusCompleted)
	}

	// Already terminal records never re-derive.
	appt.Status = model.StatusCompleted
	if DerivesCompletion(appt) {
		t.Error("completion derived on an already completed appointment")
	}
}

func TestCanSubmitReview(t *testing.T) {
	appt := &model.Appointment{
		ID:     1,
		Status: model.StatusConfirmed,
		AppointmentServices: []model.AppointmentService{
			{ID: 100, ServiceID: 10, Status: model.StatusCompleted},
			{ID: 101, ServiceID: 11, Status: model.StatusConfirmed},
		},
	}

	if d := CanSubmitReview(appt, 10); !d.Allowed {
		t.Errorf("review of completed service line denied: %s", d.Reason)
	}
	if d := CanSubmitReview(appt, 11); d.Allowed {
		t.Error("review of unfinished service line allowed")
	}

	appt.AppointmentServices[0].Review = &model.Review{ID: 7, Rating: 5}
	if d := CanSubmitReview(appt, 10); d.Allowed {
		t.Error("second review of the same service allowed")
	} else if d.Reason != ReasonAlreadyReviewed {
		t.Errorf("reason = %q, want %q", d.Reason, ReasonAlreadyReviewed)
	}
}

func TestCanSubmitReview_LegacyRecord(t *testing.T) {
	appt := &model.Appointment{
		ID:        1,
		Status:    model.StatusCompleted,
		ServiceID: 10,
		Service:   &model.CatalogService{ID: 10, Name: "Haircut"},
	}

	if d := CanSubmitReview(appt, 10); !d.Allowed {
		t.Errorf("review of completed legacy appointment denied: %s", d.Reason)
	}

	appt.Review = &model.Review{ID: 7, Rating: 4}
	if d := CanSubmitReview(appt, 10); d.Allowed {
		t.Error("second review of legacy appointment allowed")
	}
}

func TestCanRespondToReview(t *testing.T) {
	if d := CanRespondToReview(nil); d.Allowed {
		t.Error("response to missing review allowed")
	}

	review := &model.Review{ID: 7, Rating: 4}
	if d := CanRespondToReview(review); !d.Allowed {
		t.Errorf("first response denied: %s", d.Reason)
	}

	review.StaffResponse = "thank you"
	if d := CanRespondToReview(review); d.Allowed {
		t.Error("second response allowed")
	} else if d.Reason != ReasonAlreadyResponded {
		t.Errorf("reason = %q, want %q", d.Reason, ReasonAlreadyResponded)
	}
}

func TestEvaluate_IsDeterministic(t *testing.T) {
	appt := pendingAppointment(&model.Payment{ID: 5, Status: model.PaymentPending})

	first := Evaluate(appt, evalNow, RoleAdmin)
	for i := 0; i < 10; i++ {
		again := Evaluate(appt, evalNow, RoleAdmin)
		if len(again) != len(first) {
			t.Fatalf("decision count changed between runs: %d vs %d", len(again), len(first))
		}
		for action, d := range first {
			if again[action] != d {
				t.Fatalf("decision for %s changed between runs", action)
			}
		}
	}
}
