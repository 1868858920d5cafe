package service

import (
	"context"
	"strconv"
	"time"

	"salongate/internal/reviews/validator"
	"salongate/pkg/audit"
	"salongate/pkg/client"
	apperrors "salongate/pkg/errors"
	"salongate/pkg/lifecycle"
	"salongate/pkg/logger"
	"salongate/pkg/model"
	"salongate/pkg/sanitizer"
	"salongate/pkg/session"
)

// ReviewService applies the one-review / one-response rules locally before
// forwarding, so obviously doomed requests never leave the gateway. The
// backend re-validates everything.
type ReviewService interface {
	Submit(ctx context.Context, req *model.ReviewRequest) (*model.Review, error)
	Respond(ctx context.Context, reviewID int64, req *model.ReviewResponseRequest) (*model.Review, error)
}

type reviewService struct {
	reviews      *client.ReviewClient
	appointments *client.AppointmentClient
	validator    *validator.ReviewValidator
	recorder     audit.Recorder
	log          *logger.Logger
}

func NewReviewService(
	reviews *client.ReviewClient,
	appointments *client.AppointmentClient,
	validator *validator.ReviewValidator,
	recorder audit.Recorder,
	log *logger.Logger,
) ReviewService {
	return &reviewService{
		reviews:      reviews,
		appointments: appointments,
		validator:    validator,
		recorder:     recorder,
		log:          log,
	}
}

func (s *reviewService) Submit(ctx context.Context, req *model.ReviewRequest) (*model.Review, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	if _, exposed := lifecycle.Lookup(sess.Role, lifecycle.ActionSubmitReview); !exposed {
		return nil, apperrors.PermissionDenied("action not available for this role")
	}

	req.Comment = sanitizer.NormalizeComment(req.Comment)
	if err := s.validator.ValidateSubmission(req); err != nil {
		return nil, err
	}

	appt, err := s.findAppointment(ctx, sess, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	if d := lifecycle.CanSubmitReview(appt, req.ServiceID); !d.Allowed {
		return nil, apperrors.PreconditionFailed(d.Reason)
	}

	// The backend keys reviews by staff as well; default it from the
	// service line when the caller leaves it out.
	if req.StaffID == 0 {
		if svc, ok := appt.ServiceByID(req.ServiceID); ok {
			req.StaffID = svc.StaffID
		}
	}

	review, err := s.reviews.Submit(ctx, sess, req)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:        lifecycle.ActionSubmitReview,
		AppointmentID: req.AppointmentID,
		ReviewID:      review.ID,
		ActorID:       sess.UserID,
		ActorRole:     sess.Role,
		OccurredAt:    time.Now().UTC(),
	})
	return review, nil
}

func (s *reviewService) Respond(ctx context.Context, reviewID int64, req *model.ReviewResponseRequest) (*model.Review, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	if _, exposed := lifecycle.Lookup(sess.Role, lifecycle.ActionRespondToReview); !exposed {
		return nil, apperrors.PermissionDenied("action not available for this role")
	}

	req.StaffResponse = sanitizer.TrimAndNormalize(req.StaffResponse)
	if err := s.validator.ValidateResponse(req); err != nil {
		return nil, err
	}

	review, appointmentID, err := s.findReview(ctx, sess, reviewID)
	if err != nil {
		return nil, err
	}

	if d := lifecycle.CanRespondToReview(review); !d.Allowed {
		return nil, apperrors.PreconditionFailed(d.Reason)
	}

	if err := s.reviews.Respond(ctx, sess, reviewID, req); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:        lifecycle.ActionRespondToReview,
		AppointmentID: appointmentID,
		ReviewID:      reviewID,
		ActorID:       sess.UserID,
		ActorRole:     sess.Role,
		OccurredAt:    time.Now().UTC(),
	})

	// Re-read so the caller sees the stored response, not an echo.
	refreshed, _, err := s.findReview(ctx, sess, reviewID)
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

func (s *reviewService) findAppointment(ctx context.Context, sess session.Session, id int64) (*model.Appointment, error) {
	appts, err := s.appointments.ListMy(ctx, sess)
	if err != nil {
		return nil, err
	}
	for i := range appts {
		if appts[i].ID == id {
			return &appts[i], nil
		}
	}
	return nil, apperrors.NotFoundWithID("appointment", strconv.FormatInt(id, 10))
}

// findReview scans the caller's listing for a review, checking per-service
// reviews first and the legacy appointment-level review as fallback.
func (s *reviewService) findReview(ctx context.Context, sess session.Session, reviewID int64) (*model.Review, int64, error) {
	appts, err := s.listFor(ctx, sess)
	if err != nil {
		return nil, 0, err
	}

	for i := range appts {
		for _, svc := range appts[i].AppointmentServices {
			if svc.Review != nil && svc.Review.ID == reviewID {
				return svc.Review, appts[i].ID, nil
			}
		}
		if appts[i].Review != nil && appts[i].Review.ID == reviewID {
			return appts[i].Review, appts[i].ID, nil
		}
	}
	return nil, 0, apperrors.NotFoundWithID("review", strconv.FormatInt(reviewID, 10))
}

func (s *reviewService) listFor(ctx context.Context, sess session.Session) ([]model.Appointment, error) {
	switch sess.Role {
	case lifecycle.RoleStaff:
		schedule, err := s.appointments.ListStaff(ctx, sess)
		if err != nil {
			return nil, err
		}
		return schedule.Appointments, nil
	case lifecycle.RoleAdmin:
		return s.appointments.ListAll(ctx, sess)
	default:
		return s.appointments.ListMy(ctx, sess)
	}
}

func currentSession(ctx context.Context) (session.Session, error) {
	sess, ok := session.FromContext(ctx)
	if !ok || !sess.Authenticated() {
		return session.Session{}, apperrors.AuthenticationRequired("no active session")
	}
	return sess, nil
}
