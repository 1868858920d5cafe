package client

import (
	"context"
	"strconv"

	apperrors "salongate/pkg/errors"
	"salongate/pkg/lifecycle"
	"salongate/pkg/model"
	"salongate/pkg/session"
)

// CatalogClient serves the discovery listings booking depends on and the
// admin management surface behind them. No in-flight guard: catalog entries
// have no lifecycle state to race on.
type CatalogClient struct {
	http *HttpClient
}

func NewCatalogClient(http *HttpClient) *CatalogClient {
	return &CatalogClient{http: http}
}

// Services lists the bookable services with their assigned staff.
func (c *CatalogClient) Services(ctx context.Context, sess session.Session) ([]model.CatalogService, error) {
	op, ok := lifecycle.Lookup(sess.Role, lifecycle.ActionListServices)
	if !ok {
		return nil, apperrors.PermissionDenied("action not available for this role")
	}

	resp, err := c.http.Do(ctx, sess, op.Method, op.URL(nil), nil)
	if err != nil {
		return nil, err
	}

	var services []model.CatalogService
	if err := resp.DecodeJSON(&services); err != nil {
		return nil, apperrors.Internal("could not decode services", err)
	}
	return services, nil
}

// Staff lists the staff members with the services each offers.
func (c *CatalogClient) Staff(ctx context.Context, sess session.Session) ([]model.Staff, error) {
	op, ok := lifecycle.Lookup(sess.Role, lifecycle.ActionListStaff)
	if !ok {
		return nil, apperrors.PermissionDenied("action not available for this role")
	}

	resp, err := c.http.Do(ctx, sess, op.Method, op.URL(nil), nil)
	if err != nil {
		return nil, err
	}

	var staff []model.Staff
	if err := resp.DecodeJSON(&staff); err != nil {
		return nil, apperrors.Internal("could not decode staff", err)
	}
	return staff, nil
}

func (c *CatalogClient) CreateService(ctx context.Context, sess session.Session, req *model.ServiceRequest) (*model.CatalogService, error) {
	var service model.CatalogService
	if err := c.call(ctx, sess, lifecycle.ActionCreateService, nil, req, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (c *CatalogClient) UpdateService(ctx context.Context, sess session.Session, id int64, req *model.ServiceRequest) (*model.CatalogService, error) {
	var service model.CatalogService
	vars := map[string]string{"serviceId": strconv.FormatInt(id, 10)}
	if err := c.call(ctx, sess, lifecycle.ActionUpdateService, vars, req, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// DeactivateService removes a service from future listings. Appointments
// already referencing it are untouched.
func (c *CatalogClient) DeactivateService(ctx context.Context, sess session.Session, id int64) error {
	vars := map[string]string{"serviceId": strconv.FormatInt(id, 10)}
	return c.call(ctx, sess, lifecycle.ActionDeactivateService, vars, nil, nil)
}

func (c *CatalogClient) CreateStaff(ctx context.Context, sess session.Session, req *model.StaffRequest) (*model.Staff, error) {
	var staff model.Staff
	if err := c.call(ctx, sess, lifecycle.ActionCreateStaff, nil, req, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (c *CatalogClient) UpdateStaff(ctx context.Context, sess session.Session, id int64, req *model.StaffRequest) (*model.Staff, error) {
	var staff model.Staff
	vars := map[string]string{"staffId": strconv.FormatInt(id, 10)}
	if err := c.call(ctx, sess, lifecycle.ActionUpdateStaff, vars, req, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (c *CatalogClient) DeactivateStaff(ctx context.Context, sess session.Session, id int64) error {
	vars := map[string]string{"staffId": strconv.FormatInt(id, 10)}
	return c.call(ctx, sess, lifecycle.ActionDeactivateStaff, vars, nil, nil)
}

func (c *CatalogClient) call(ctx context.Context, sess session.Session, action lifecycle.Action, vars map[string]string, body, target any) error {
	op, ok := lifecycle.Lookup(sess.Role, action)
	if !ok {
		return apperrors.PermissionDenied("action not available for this role")
	}

	resp, err := c.http.Do(ctx, sess, op.Method, op.URL(vars), body)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}
	if err := resp.DecodeJSON(target); err != nil {
		return apperrors.Internal("could not decode catalog entry", err)
	}
	return nil
}
