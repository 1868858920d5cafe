package service

import (
	"context"
	"strconv"
	"time"

	"salongate/internal/appointments/validator"
	"salongate/pkg/audit"
	"salongate/pkg/client"
	apperrors "salongate/pkg/errors"
	"salongate/pkg/lifecycle"
	"salongate/pkg/logger"
	"salongate/pkg/model"
	"salongate/pkg/sanitizer"
	"salongate/pkg/session"
)

// AppointmentService holds every action while the backend stays the sole
// authority: each mutation is checked against the freshest snapshot the
// gateway has, forwarded upstream, and answered with a re-fetched snapshot.
// The gateway never mutates a snapshot locally.
type AppointmentService interface {
	ListMine(ctx context.Context) ([]model.Appointment, error)
	ListStaffSchedule(ctx context.Context) (*model.StaffAppointments, error)
	ListAll(ctx context.Context) ([]model.Appointment, error)
	Actions(ctx context.Context, id int64) (*ActionSet, error)

	Book(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error)
	Reschedule(ctx context.Context, id int64, req *model.RescheduleRequest) (*model.Appointment, error)
	Cancel(ctx context.Context, id int64) (*model.Appointment, error)
	Confirm(ctx context.Context, id int64) (*model.Appointment, error)
	VerifyPayment(ctx context.Context, id int64) (*model.Appointment, error)
	VerifyAndConfirm(ctx context.Context, id int64) (*model.Appointment, error)
	CompleteService(ctx context.Context, id, serviceID int64) (*model.Appointment, error)
	Complete(ctx context.Context, id int64) (*model.Appointment, error)
}

// ActionDecision is one evaluator verdict, serialized for clients that
// want to render their own buttons.
type ActionDecision struct {
	Action  lifecycle.Action `json:"action"`
	Allowed bool             `json:"allowed"`
	Reason  string           `json:"reason,omitempty"`
}

// ActionSet pairs a snapshot with the decisions computed from it.
type ActionSet struct {
	Appointment *model.Appointment `json:"appointment"`
	Actions     []ActionDecision   `json:"actions"`
}

type appointmentService struct {
	appointments *client.AppointmentClient
	validator    *validator.AppointmentValidator
	recorder     audit.Recorder
	log          *logger.Logger
	now          func() time.Time
}

func NewAppointmentService(
	appointments *client.AppointmentClient,
	validator *validator.AppointmentValidator,
	recorder audit.Recorder,
	log *logger.Logger,
) AppointmentService {
	return &appointmentService{
		appointments: appointments,
		validator:    validator,
		recorder:     recorder,
		log:          log,
		now:          time.Now,
	}
}

func (s *appointmentService) ListMine(ctx context.Context) ([]model.Appointment, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.appointments.ListMy(ctx, sess)
}

func (s *appointmentService) ListStaffSchedule(ctx context.Context) (*model.StaffAppointments, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess.Role != lifecycle.RoleStaff {
		return nil, apperrors.PermissionDenied("staff schedule is only available to staff")
	}
	return s.appointments.ListStaff(ctx, sess)
}

func (s *appointmentService) ListAll(ctx context.Context) ([]model.Appointment, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess.Role != lifecycle.RoleAdmin {
		return nil, apperrors.PermissionDenied("listing all appointments requires admin")
	}
	return s.appointments.ListAll(ctx, sess)
}

// Actions evaluates every transition the caller's role exposes against the
// current snapshot. Disabled actions carry the reason so clients can show
// it instead of guessing.
func (s *appointmentService) Actions(ctx context.Context, id int64) (*ActionSet, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	appt, err := s.fetch(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	decisions := lifecycle.Evaluate(appt, s.now(), sess.Role)
	set := &ActionSet{Appointment: appt}
	for _, action := range lifecycle.Transitions(sess.Role) {
		d := decisions[action]
		set.Actions = append(set.Actions, ActionDecision{
			Action:  action,
			Allowed: d.Allowed,
			Reason:  d.Reason,
		})
	}
	return set, nil
}

func (s *appointmentService) Book(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	req.Notes = sanitizer.NormalizeNotes(req.Notes)
	if err := s.validator.ValidateBooking(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	appt, err := s.appointments.Create(ctx, sess, req)
	if err != nil {
		return nil, err
	}

	s.record(ctx, sess, lifecycle.ActionCreateAppointment, appt.ID)
	return appt, nil
}

func (s *appointmentService) Reschedule(ctx context.Context, id int64, req *model.RescheduleRequest) (*model.Appointment, error) {
	if err := s.validator.ValidateReschedule(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	return s.transition(ctx, lifecycle.ActionReschedule, id, func(ctx context.Context, sess session.Session) error {
		return s.appointments.Reschedule(ctx, sess, id, req)
	})
}

func (s *appointmentService) Cancel(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.transition(ctx, lifecycle.ActionCancel, id, func(ctx context.Context, sess session.Session) error {
		return s.appointments.Cancel(ctx, sess, id)
	})
}

func (s *appointmentService) Confirm(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.transition(ctx, lifecycle.ActionConfirm, id, func(ctx context.Context, sess session.Session) error {
		return s.appointments.Confirm(ctx, sess, id)
	})
}

func (s *appointmentService) VerifyPayment(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.transition(ctx, lifecycle.ActionVerifyPayment, id, func(ctx context.Context, sess session.Session) error {
		return s.appointments.VerifyPayment(ctx, sess, id)
	})
}

// VerifyAndConfirm forwards a single combined call; the backend owns the
// atomicity of verify-then-confirm. The gateway never splits it into two
// requests.
func (s *appointmentService) VerifyAndConfirm(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.transition(ctx, lifecycle.ActionVerifyAndConfirm, id, func(ctx context.Context, sess session.Session) error {
		return s.appointments.VerifyAndConfirm(ctx, sess, id)
	})
}

func (s *appointmentService) CompleteService(ctx context.Context, id, serviceID int64) (*model.Appointment, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}
	if _, exposed := lifecycle.Lookup(sess.Role, lifecycle.ActionCompleteService); !exposed {
		return nil, apperrors.PermissionDenied("action not available for this role")
	}

	appt, err := s.fetch(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	if d := lifecycle.CanCompleteService(appt, serviceID); !d.Allowed {
		return nil, apperrors.PreconditionFailed(d.Reason)
	}

	if err := s.appointments.CompleteService(ctx, sess, id, serviceID); err != nil {
		return nil, err
	}

	s.record(ctx, sess, lifecycle.ActionCompleteService, id)
	return s.refresh(ctx, sess, id)
}

func (s *appointmentService) Complete(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.transition(ctx, lifecycle.ActionCompleteAppointment, id, func(ctx context.Context, sess session.Session) error {
		return s.appointments.Complete(ctx, sess, id)
	})
}

// transition is the shared mutation path: resolve the session, take a fresh
// snapshot, run the evaluator, forward upstream, then re-fetch. A denied
// decision never reaches the network.
func (s *appointmentService) transition(
	ctx context.Context,
	action lifecycle.Action,
	id int64,
	forward func(ctx context.Context, sess session.Session) error,
) (*model.Appointment, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	if _, exposed := lifecycle.Lookup(sess.Role, action); !exposed {
		return nil, apperrors.PermissionDenied("action not available for this role")
	}

	appt, err := s.fetch(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	decisions := lifecycle.Evaluate(appt, s.now(), sess.Role)
	if d := decisions[action]; !d.Allowed {
		return nil, apperrors.PreconditionFailed(d.Reason)
	}

	if err := forward(ctx, sess); err != nil {
		return nil, err
	}

	s.record(ctx, sess, action, id)
	return s.refresh(ctx, sess, id)
}

// fetch loads the role-appropriate listing and picks the appointment out of
// it. Customers and staff only ever see their own listings, so ownership is
// enforced by construction.
func (s *appointmentService) fetch(ctx context.Context, sess session.Session, id int64) (*model.Appointment, error) {
	appts, err := s.listFor(ctx, sess)
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

// refresh re-reads the listing after a successful mutation. If the
// appointment fell out of the caller's listing the mutation still
// succeeded, so a missing row is not an error.
func (s *appointmentService) refresh(ctx context.Context, sess session.Session, id int64) (*model.Appointment, error) {
	appt, err := s.fetch(ctx, sess, id)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Code == apperrors.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) listFor(ctx context.Context, sess session.Session) ([]model.Appointment, error) {
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

func (s *appointmentService) record(ctx context.Context, sess session.Session, action lifecycle.Action, id int64) {
	s.recorder.Record(ctx, audit.Event{
		Action:        action,
		AppointmentID: id,
		ActorID:       sess.UserID,
		ActorRole:     sess.Role,
		OccurredAt:    s.now().UTC(),
	})
}

func currentSession(ctx context.Context) (session.Session, error) {
	sess, ok := session.FromContext(ctx)
	if !ok || !sess.Authenticated() {
		return session.Session{}, apperrors.AuthenticationRequired("no active session")
	}
	return sess, nil
}
