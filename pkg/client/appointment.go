package client

import (
	"context"
	"strconv"

	apperrors "salongate/pkg/errors"
	"salongate/pkg/lifecycle"
	"salongate/pkg/model"
	"salongate/pkg/session"
)

// AppointmentClient issues appointment operations against the backend. Every
// call resolves its endpoint through the role-gated surface table: an action
// outside the session role's allow-list fails with PermissionDenied before
// any request is built. Mutating calls additionally pass through the action
// guard, so at most one is outstanding per appointment.
type AppointmentClient struct {
	http  *HttpClient
	guard *ActionGuard
}

func NewAppointmentClient(http *HttpClient) *AppointmentClient {
	return &AppointmentClient{
		http:  http,
		guard: NewActionGuard(),
	}
}

func (c *AppointmentClient) ListMy(ctx context.Context, sess session.Session) ([]model.Appointment, error) {
	resp, err := c.call(ctx, sess, lifecycle.ActionListMyAppointments, nil, nil)
	if err != nil {
		return nil, err
	}

	var appointments []model.Appointment
	if err := resp.DecodeJSON(&appointments); err != nil {
		return nil, apperrors.Internal("could not decode appointment list", err)
	}
	return appointments, nil
}

func (c *AppointmentClient) ListStaff(ctx context.Context, sess session.Session) (*model.StaffAppointments, error) {
	resp, err := c.call(ctx, sess, lifecycle.ActionListStaffSchedule, nil, nil)
	if err != nil {
		return nil, err
	}

	var schedule model.StaffAppointments
	if err := resp.DecodeJSON(&schedule); err != nil {
		return nil, apperrors.Internal("could not decode staff schedule", err)
	}
	return &schedule, nil
}

func (c *AppointmentClient) ListAll(ctx context.Context, sess session.Session) ([]model.Appointment, error) {
	resp, err := c.call(ctx, sess, lifecycle.ActionListAll, nil, nil)
	if err != nil {
		return nil, err
	}

	var appointments []model.Appointment
	if err := resp.DecodeJSON(&appointments); err != nil {
		return nil, apperrors.Internal("could not decode appointment list", err)
	}
	return appointments, nil
}

func (c *AppointmentClient) Create(ctx context.Context, sess session.Session, req *model.BookingRequest) (*model.Appointment, error) {
	resp, err := c.call(ctx, sess, lifecycle.ActionCreateAppointment, nil, req)
	if err != nil {
		return nil, err
	}

	var appointment model.Appointment
	if err := resp.DecodeJSON(&appointment); err != nil {
		return nil, apperrors.Internal("could not decode created appointment", err)
	}
	return &appointment, nil
}

func (c *AppointmentClient) Reschedule(ctx context.Context, sess session.Session, id int64, req *model.RescheduleRequest) error {
	return c.mutate(ctx, sess, lifecycle.ActionReschedule, id, appointmentVars(id), req)
}

func (c *AppointmentClient) Cancel(ctx context.Context, sess session.Session, id int64) error {
	return c.mutate(ctx, sess, lifecycle.ActionCancel, id, appointmentVars(id), nil)
}

func (c *AppointmentClient) Confirm(ctx context.Context, sess session.Session, id int64) error {
	return c.mutate(ctx, sess, lifecycle.ActionConfirm, id, appointmentVars(id), nil)
}

func (c *AppointmentClient) VerifyPayment(ctx context.Context, sess session.Session, id int64) error {
	return c.mutate(ctx, sess, lifecycle.ActionVerifyPayment, id, appointmentVars(id), nil)
}

// VerifyAndConfirm forwards the combined verify-then-confirm as the single
// atomic backend call; the backend guarantees no confirm happens when the
// verify step fails.
func (c *AppointmentClient) VerifyAndConfirm(ctx context.Context, sess session.Session, id int64) error {
	return c.mutate(ctx, sess, lifecycle.ActionVerifyAndConfirm, id, appointmentVars(id), nil)
}

func (c *AppointmentClient) CompleteService(ctx context.Context, sess session.Session, id, serviceID int64) error {
	vars := appointmentVars(id)
	vars["serviceId"] = strconv.FormatInt(serviceID, 10)
	return c.mutate(ctx, sess, lifecycle.ActionCompleteService, id, vars, nil)
}

func (c *AppointmentClient) Complete(ctx context.Context, sess session.Session, id int64) error {
	return c.mutate(ctx, sess, lifecycle.ActionCompleteAppointment, id, appointmentVars(id), nil)
}

func (c *AppointmentClient) call(ctx context.Context, sess session.Session, action lifecycle.Action, vars map[string]string, body any) (*Response, error) {
	op, ok := lifecycle.Lookup(sess.Role, action)
	if !ok {
		return nil, apperrors.PermissionDenied("action not available for this role")
	}
	return c.http.Do(ctx, sess, op.Method, op.URL(vars), body)
}

func (c *AppointmentClient) mutate(ctx context.Context, sess session.Session, action lifecycle.Action, id int64, vars map[string]string, body any) error {
	return c.guard.Do(strconv.FormatInt(id, 10), func() error {
		_, err := c.call(ctx, sess, action, vars, body)
		return err
	})
}

func appointmentVars(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}
