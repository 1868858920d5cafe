package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"salongate/internal/appointments/validator"
	"salongate/pkg/audit"
	"salongate/pkg/client"
	apperrors "salongate/pkg/errors"
	"salongate/pkg/lifecycle"
	"salongate/pkg/logger"
	"salongate/pkg/model"
	"salongate/pkg/session"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

// captureRecorder collects audit events for assertions.
type captureRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *captureRecorder) Record(_ context.Context, ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *captureRecorder) actions() []lifecycle.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	var actions []lifecycle.Action
	for _, ev := range r.events {
		actions = append(actions, ev.Action)
	}
	return actions
}

// stubBackend serves the admin listing from mutable state and records which
// transition endpoints were hit.
type stubBackend struct {
	mu           sync.Mutex
	appointments map[int64]*model.Appointment
	hits         map[string]int
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		appointments: make(map[int64]*model.Appointment),
		hits:         make(map[string]int),
	}
}

func (b *stubBackend) add(a model.Appointment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.appointments[a.ID] = &a
}

func (b *stubBackend) hitCount(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[key]
}

func (b *stubBackend) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	list := func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		out := make([]model.Appointment, 0, len(b.appointments))
		for _, a := range b.appointments {
			out = append(out, *a)
		}
		json.NewEncoder(w).Encode(out)
	}
	mux.HandleFunc("GET /admin/appointments", list)
	mux.HandleFunc("GET /appointments/my", list)

	mux.HandleFunc("PUT /admin/appointments/{id}/confirm", b.transition("confirm", model.StatusConfirmed))
	mux.HandleFunc("PUT /appointments/{id}/complete", b.transition("complete", model.StatusCompleted))
	mux.HandleFunc("DELETE /appointments/{id}", b.transition("cancel", model.StatusCancelled))
	mux.HandleFunc("POST /admin/appointments/{id}/verify-and-confirm", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.hits["verify-and-confirm"]++
		for _, a := range b.appointments {
			if a.Payment != nil {
				a.Payment.Status = model.PaymentPaid
			}
			a.Status = model.StatusConfirmed
		}
		w.Write([]byte(`{}`))
	})

	return httptest.NewServer(mux)
}

func (b *stubBackend) transition(name string, to model.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.hits[name]++
		for _, a := range b.appointments {
			a.Status = to
		}
		w.Write([]byte(`{}`))
	}
}

func newTestService(t *testing.T, backendURL string, recorder audit.Recorder) *appointmentService {
	t.Helper()
	log := testLogger()
	return &appointmentService{
		appointments: client.NewAppointmentClient(client.NewHttpClient(backendURL, time.Second)),
		validator:    validator.NewAppointmentValidator(log),
		recorder:     recorder,
		log:          log,
		now:          time.Now,
	}
}

func adminCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{
		Token: "tok", Role: lifecycle.RoleAdmin, UserID: 1,
	})
}

func customerCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{
		Token: "tok", Role: lifecycle.RoleCustomer, UserID: 9,
	})
}

func TestConfirm_DeniedLocallyWhenUnpaid(t *testing.T) {
	backend := newStubBackend()
	backend.add(model.Appointment{
		ID:        1,
		Status:    model.StatusPending,
		StartTime: time.Now().Add(72 * time.Hour),
		ServiceID: 10,
	})
	server := backend.server(t)
	defer server.Close()

	recorder := &captureRecorder{}
	svc := newTestService(t, server.URL, recorder)

	_, err := svc.Confirm(adminCtx(), 1)
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodePrecondition {
		t.Fatalf("error = %v, want PRECONDITION_FAILED", err)
	}
	if appErr.Message != lifecycle.ReasonPaymentRequired {
		t.Errorf("message = %q, want %q", appErr.Message, lifecycle.ReasonPaymentRequired)
	}
	if backend.hitCount("confirm") != 0 {
		t.Error("confirm endpoint was called despite local denial")
	}
	if len(recorder.actions()) != 0 {
		t.Error("audit event recorded for a denied action")
	}
}

func TestConfirm_ForwardsAndReturnsRefreshedSnapshot(t *testing.T) {
	backend := newStubBackend()
	backend.add(model.Appointment{
		ID:        1,
		Status:    model.StatusPending,
		StartTime: time.Now().Add(72 * time.Hour),
		ServiceID: 10,
		Payment:   &model.Payment{ID: 5, Status: model.PaymentPaid},
	})
	server := backend.server(t)
	defer server.Close()

	recorder := &captureRecorder{}
	svc := newTestService(t, server.URL, recorder)

	refreshed, err := svc.Confirm(adminCtx(), 1)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if refreshed == nil || refreshed.Status != model.StatusConfirmed {
		t.Errorf("refreshed snapshot = %+v, want confirmed", refreshed)
	}
	if backend.hitCount("confirm") != 1 {
		t.Errorf("confirm endpoint hit %d times, want 1", backend.hitCount("confirm"))
	}

	actions := recorder.actions()
	if len(actions) != 1 || actions[0] != lifecycle.ActionConfirm {
		t.Errorf("audit actions = %v, want [confirm]", actions)
	}
}

func TestConfirm_NotExposedToCustomers(t *testing.T) {
	backend := newStubBackend()
	backend.add(model.Appointment{
		ID:        1,
		Status:    model.StatusPending,
		StartTime: time.Now().Add(72 * time.Hour),
		Payment:   &model.Payment{ID: 5, Status: model.PaymentPaid},
	})
	server := backend.server(t)
	defer server.Close()

	svc := newTestService(t, server.URL, &captureRecorder{})

	_, err := svc.Confirm(customerCtx(), 1)
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodePermission {
		t.Fatalf("error = %v, want PERMISSION_DENIED", err)
	}
	if backend.hitCount("confirm") != 0 {
		t.Error("confirm endpoint was called for an unexposed role")
	}
}

func TestVerifyAndConfirm_SingleUpstreamCall(t *testing.T) {
	backend := newStubBackend()
	backend.add(model.Appointment{
		ID:        1,
		Status:    model.StatusPending,
		StartTime: time.Now().Add(72 * time.Hour),
		Payment:   &model.Payment{ID: 5, Status: model.PaymentPending},
	})
	server := backend.server(t)
	defer server.Close()

	recorder := &captureRecorder{}
	svc := newTestService(t, server.URL, recorder)

	refreshed, err := svc.VerifyAndConfirm(adminCtx(), 1)
	if err != nil {
		t.Fatalf("VerifyAndConfirm failed: %v", err)
	}
	if backend.hitCount("verify-and-confirm") != 1 {
		t.Errorf("verify-and-confirm hit %d times, want 1", backend.hitCount("verify-and-confirm"))
	}
	if refreshed.Status != model.StatusConfirmed {
		t.Errorf("refreshed status = %s, want confirmed", refreshed.Status)
	}
	if !refreshed.Payment.Paid() {
		t.Error("refreshed payment not settled")
	}
}

func TestCustomerCancel_InsideWindowDeniedLocally(t *testing.T) {
	backend := newStubBackend()
	backend.add(model.Appointment{
		ID:        1,
		Status:    model.StatusConfirmed,
		StartTime: time.Now().Add(2 * time.Hour),
		ServiceID: 10,
	})
	server := backend.server(t)
	defer server.Close()

	svc := newTestService(t, server.URL, &captureRecorder{})

	_, err := svc.Cancel(customerCtx(), 1)
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodePrecondition {
		t.Fatalf("error = %v, want PRECONDITION_FAILED", err)
	}
	if appErr.Message != lifecycle.ReasonInsideWindow {
		t.Errorf("message = %q, want %q", appErr.Message, lifecycle.ReasonInsideWindow)
	}
	if backend.hitCount("cancel") != 0 {
		t.Error("cancel endpoint was called despite window denial")
	}
}

func TestAdminCancel_InsideWindowForwarded(t *testing.T) {
	backend := newStubBackend()
	backend.add(model.Appointment{
		ID:        1,
		Status:    model.StatusConfirmed,
		StartTime: time.Now().Add(2 * time.Hour),
		ServiceID: 10,
	})
	server := backend.server(t)
	defer server.Close()

	svc := newTestService(t, server.URL, &captureRecorder{})

	refreshed, err := svc.Cancel(adminCtx(), 1)
	if err != nil {
		t.Fatalf("admin Cancel failed: %v", err)
	}
	if backend.hitCount("cancel") != 1 {
		t.Errorf("cancel endpoint hit %d times, want 1", backend.hitCount("cancel"))
	}
	if refreshed.Status != model.StatusCancelled {
		t.Errorf("refreshed status = %s, want cancelled", refreshed.Status)
	}
}

func TestBook_ValidatesBeforeForwarding(t *testing.T) {
	var createCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		createCalls++
	}))
	defer server.Close()

	svc := newTestService(t, server.URL, &captureRecorder{})

	_, err := svc.Book(customerCtx(), &model.BookingRequest{
		ServiceID: 0,
		StaffID:   20,
		StartTime: time.Now().Add(-time.Hour),
	})
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("error = %v, want VALIDATION_ERROR", err)
	}
	if createCalls != 0 {
		t.Error("backend called with an invalid booking")
	}
}

func TestActions_ListsEveryRoleTransitionWithReasons(t *testing.T) {
	backend := newStubBackend()
	backend.add(model.Appointment{
		ID:        1,
		Status:    model.StatusPending,
		StartTime: time.Now().Add(72 * time.Hour),
		ServiceID: 10,
	})
	server := backend.server(t)
	defer server.Close()

	svc := newTestService(t, server.URL, &captureRecorder{})

	set, err := svc.Actions(adminCtx(), 1)
	if err != nil {
		t.Fatalf("Actions failed: %v", err)
	}
	if len(set.Actions) != len(lifecycle.Transitions(lifecycle.RoleAdmin)) {
		t.Errorf("got %d decisions, want %d", len(set.Actions), len(lifecycle.Transitions(lifecycle.RoleAdmin)))
	}

	byAction := make(map[lifecycle.Action]ActionDecision)
	for _, d := range set.Actions {
		byAction[d.Action] = d
	}
	confirm := byAction[lifecycle.ActionConfirm]
	if confirm.Allowed || confirm.Reason != lifecycle.ReasonPaymentRequired {
		t.Errorf("confirm decision = %+v, want disabled with %q", confirm, lifecycle.ReasonPaymentRequired)
	}
	if !byAction[lifecycle.ActionCancel].Allowed {
		t.Error("admin cancel should be enabled on a pending appointment")
	}
}

func TestTransition_UnknownAppointmentNotFound(t *testing.T) {
	backend := newStubBackend()
	server := backend.server(t)
	defer server.Close()

	svc := newTestService(t, server.URL, &captureRecorder{})

	_, err := svc.Confirm(adminCtx(), 404)
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}
