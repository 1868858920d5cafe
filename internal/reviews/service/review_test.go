package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salongate/internal/reviews/validator"
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

func newTestService(backendURL string) *reviewService {
	log := testLogger()
	http := client.NewHttpClient(backendURL, time.Second)
	return &reviewService{
		reviews:      client.NewReviewClient(http),
		appointments: client.NewAppointmentClient(http),
		validator:    validator.NewReviewValidator(log),
		recorder:     audit.NopRecorder{},
		log:          log,
	}
}

func customerCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{
		Token: "tok", Role: lifecycle.RoleCustomer, UserID: 9,
	})
}

func staffCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{
		Token: "tok", Role: lifecycle.RoleStaff, UserID: 3,
	})
}

// reviewBackend serves a single-appointment listing and accepts submissions.
func reviewBackend(appts []model.Appointment, hits map[string]int) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /appointments/my", func(w http.ResponseWriter, r *http.Request) {
		hits["list"]++
		json.NewEncoder(w).Encode(appts)
	})
	mux.HandleFunc("GET /appointments/staff/my", func(w http.ResponseWriter, r *http.Request) {
		hits["list"]++
		json.NewEncoder(w).Encode(model.StaffAppointments{
			Staff:        &model.Staff{ID: 3, Name: "Dana"},
			Appointments: appts,
		})
	})
	mux.HandleFunc("POST /reviews", func(w http.ResponseWriter, r *http.Request) {
		hits["submit"]++
		var req model.ReviewRequest
		json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Review{
			ID:            77,
			AppointmentID: req.AppointmentID,
			ServiceID:     req.ServiceID,
			StaffID:       req.StaffID,
			Rating:        req.Rating,
			Comment:       req.Comment,
		})
	})
	mux.HandleFunc("PUT /reviews/{reviewId}/response", func(w http.ResponseWriter, r *http.Request) {
		hits["respond"]++
		w.Write([]byte(`{}`))
	})
	return httptest.NewServer(mux)
}

func completedAppointment() model.Appointment {
	return model.Appointment{
		ID:     1,
		Status: model.StatusCompleted,
		AppointmentServices: []model.AppointmentService{
			{ID: 100, ServiceID: 10, StaffID: 3, Status: model.StatusCompleted},
		},
	}
}

func TestSubmit_RatingBoundsRejectedLocally(t *testing.T) {
	hits := map[string]int{}
	server := reviewBackend([]model.Appointment{completedAppointment()}, hits)
	defer server.Close()

	svc := newTestService(server.URL)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(customerCtx(), &model.ReviewRequest{
			AppointmentID: 1,
			ServiceID:     10,
			Rating:        rating,
		})
		appErr, ok := err.(*apperrors.AppError)
		if !ok || appErr.Code != apperrors.CodeValidation {
			t.Errorf("rating %d: error = %v, want VALIDATION_ERROR", rating, err)
			continue
		}
		if appErr.Message != "rating must be between 1 and 5" {
			t.Errorf("rating %d: message = %q", rating, appErr.Message)
		}
	}

	if hits["submit"] != 0 {
		t.Errorf("backend received %d submissions for invalid ratings, want 0", hits["submit"])
	}
}

func TestSubmit_HappyPathDefaultsStaffFromServiceLine(t *testing.T) {
	hits := map[string]int{}
	server := reviewBackend([]model.Appointment{completedAppointment()}, hits)
	defer server.Close()

	svc := newTestService(server.URL)

	review, err := svc.Submit(customerCtx(), &model.ReviewRequest{
		AppointmentID: 1,
		ServiceID:     10,
		Rating:        5,
		Comment:       "  great   cut  ",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if review.ID != 77 || review.Rating != 5 {
		t.Errorf("unexpected review: %+v", review)
	}
	if review.StaffID != 3 {
		t.Errorf("staff id = %d, want defaulted 3", review.StaffID)
	}
	if review.Comment != "great cut" {
		t.Errorf("comment = %q, want normalized", review.Comment)
	}
	if hits["submit"] != 1 {
		t.Errorf("backend received %d submissions, want 1", hits["submit"])
	}
}

func TestSubmit_DuplicateReviewRejectedLocally(t *testing.T) {
	appt := completedAppointment()
	appt.AppointmentServices[0].Review = &model.Review{ID: 50, Rating: 4}

	hits := map[string]int{}
	server := reviewBackend([]model.Appointment{appt}, hits)
	defer server.Close()

	svc := newTestService(server.URL)

	_, err := svc.Submit(customerCtx(), &model.ReviewRequest{
		AppointmentID: 1,
		ServiceID:     10,
		Rating:        5,
	})
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodePrecondition {
		t.Fatalf("error = %v, want PRECONDITION_FAILED", err)
	}
	if appErr.Message != lifecycle.ReasonAlreadyReviewed {
		t.Errorf("message = %q, want %q", appErr.Message, lifecycle.ReasonAlreadyReviewed)
	}
	if hits["submit"] != 0 {
		t.Error("duplicate review reached the backend")
	}
}

func TestSubmit_IncompleteServiceRejectedLocally(t *testing.T) {
	appt := completedAppointment()
	appt.Status = model.StatusConfirmed
	appt.AppointmentServices[0].Status = model.StatusConfirmed

	hits := map[string]int{}
	server := reviewBackend([]model.Appointment{appt}, hits)
	defer server.Close()

	svc := newTestService(server.URL)

	_, err := svc.Submit(customerCtx(), &model.ReviewRequest{
		AppointmentID: 1,
		ServiceID:     10,
		Rating:        5,
	})
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodePrecondition {
		t.Fatalf("error = %v, want PRECONDITION_FAILED", err)
	}
	if hits["submit"] != 0 {
		t.Error("premature review reached the backend")
	}
}

func TestRespond_OncePerReview(t *testing.T) {
	appt := completedAppointment()
	appt.AppointmentServices[0].Review = &model.Review{ID: 50, Rating: 4}

	hits := map[string]int{}
	server := reviewBackend([]model.Appointment{appt}, hits)
	defer server.Close()

	svc := newTestService(server.URL)

	if _, err := svc.Respond(staffCtx(), 50, &model.ReviewResponseRequest{StaffResponse: "thank you"}); err != nil {
		t.Fatalf("first response failed: %v", err)
	}
	if hits["respond"] != 1 {
		t.Errorf("backend received %d responses, want 1", hits["respond"])
	}

	// Backend now reports the review as responded.
	appt.AppointmentServices[0].Review.StaffResponse = "thank you"

	_, err := svc.Respond(staffCtx(), 50, &model.ReviewResponseRequest{StaffResponse: "again"})
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodePrecondition {
		t.Fatalf("second response error = %v, want PRECONDITION_FAILED", err)
	}
	if appErr.Message != lifecycle.ReasonAlreadyResponded {
		t.Errorf("message = %q, want %q", appErr.Message, lifecycle.ReasonAlreadyResponded)
	}
	if hits["respond"] != 1 {
		t.Error("second response reached the backend")
	}
}

func TestRespond_EmptyResponseRejected(t *testing.T) {
	hits := map[string]int{}
	server := reviewBackend(nil, hits)
	defer server.Close()

	svc := newTestService(server.URL)

	_, err := svc.Respond(staffCtx(), 50, &model.ReviewResponseRequest{StaffResponse: "   "})
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("error = %v, want VALIDATION_ERROR", err)
	}
	if hits["respond"] != 0 {
		t.Error("empty response reached the backend")
	}
}

func TestRespond_NotExposedToCustomers(t *testing.T) {
	hits := map[string]int{}
	server := reviewBackend(nil, hits)
	defer server.Close()

	svc := newTestService(server.URL)

	_, err := svc.Respond(customerCtx(), 50, &model.ReviewResponseRequest{StaffResponse: "hi"})
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodePermission {
		t.Fatalf("error = %v, want PERMISSION_DENIED", err)
	}
}

func TestSubmit_NotExposedToStaff(t *testing.T) {
	hits := map[string]int{}
	server := reviewBackend([]model.Appointment{completedAppointment()}, hits)
	defer server.Close()

	svc := newTestService(server.URL)

	_, err := svc.Submit(staffCtx(), &model.ReviewRequest{
		AppointmentID: 1,
		ServiceID:     10,
		Rating:        4,
	})
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.CodePermission {
		t.Fatalf("error = %v, want PERMISSION_DENIED", err)
	}
	if hits["list"] != 0 || hits["submit"] != 0 {
		t.Errorf("backend hits = list:%d submit:%d, want none before the role check", hits["list"], hits["submit"])
	}
}
