package service

import (
	"context"

	"salongate/internal/catalog/validator"
	"salongate/pkg/client"
	apperrors "salongate/pkg/errors"
	"salongate/pkg/lifecycle"
	"salongate/pkg/logger"
	"salongate/pkg/model"
	"salongate/pkg/sanitizer"
	"salongate/pkg/session"
)

// CatalogService relays catalog listings and the admin management surface.
// Listings feed booking: a caller picks a serviceId/staffId pair here before
// the booking flow ever starts. The backend stays the authority on what the
// catalog contains; mutations are validated locally and forwarded verbatim.
type CatalogService interface {
	Services(ctx context.Context) ([]model.CatalogService, error)
	Staff(ctx context.Context) ([]model.Staff, error)

	CreateService(ctx context.Context, req *model.ServiceRequest) (*model.CatalogService, error)
	UpdateService(ctx context.Context, id int64, req *model.ServiceRequest) (*model.CatalogService, error)
	DeactivateService(ctx context.Context, id int64) error
	CreateStaff(ctx context.Context, req *model.StaffRequest) (*model.Staff, error)
	UpdateStaff(ctx context.Context, id int64, req *model.StaffRequest) (*model.Staff, error)
	DeactivateStaff(ctx context.Context, id int64) error
}

type catalogService struct {
	catalog   *client.CatalogClient
	validator *validator.CatalogValidator
	log       *logger.Logger
}

func NewCatalogService(catalog *client.CatalogClient, validator *validator.CatalogValidator, log *logger.Logger) CatalogService {
	return &catalogService{
		catalog:   catalog,
		validator: validator,
		log:       log,
	}
}

func (s *catalogService) Services(ctx context.Context) ([]model.CatalogService, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.catalog.Services(ctx, sess)
}

func (s *catalogService) Staff(ctx context.Context) ([]model.Staff, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.catalog.Staff(ctx, sess)
}

func (s *catalogService) CreateService(ctx context.Context, req *model.ServiceRequest) (*model.CatalogService, error) {
	sess, err := s.adminSession(ctx, lifecycle.ActionCreateService)
	if err != nil {
		return nil, err
	}

	s.sanitizeService(req)
	if err := s.validator.ValidateService(req); err != nil {
		return nil, err
	}
	return s.catalog.CreateService(ctx, sess, req)
}

func (s *catalogService) UpdateService(ctx context.Context, id int64, req *model.ServiceRequest) (*model.CatalogService, error) {
	sess, err := s.adminSession(ctx, lifecycle.ActionUpdateService)
	if err != nil {
		return nil, err
	}

	s.sanitizeService(req)
	if err := s.validator.ValidateService(req); err != nil {
		return nil, err
	}
	return s.catalog.UpdateService(ctx, sess, id, req)
}

func (s *catalogService) DeactivateService(ctx context.Context, id int64) error {
	sess, err := s.adminSession(ctx, lifecycle.ActionDeactivateService)
	if err != nil {
		return err
	}
	return s.catalog.DeactivateService(ctx, sess, id)
}

func (s *catalogService) CreateStaff(ctx context.Context, req *model.StaffRequest) (*model.Staff, error) {
	sess, err := s.adminSession(ctx, lifecycle.ActionCreateStaff)
	if err != nil {
		return nil, err
	}

	s.sanitizeStaff(req)
	if err := s.validator.ValidateStaff(req); err != nil {
		return nil, err
	}
	return s.catalog.CreateStaff(ctx, sess, req)
}

func (s *catalogService) UpdateStaff(ctx context.Context, id int64, req *model.StaffRequest) (*model.Staff, error) {
	sess, err := s.adminSession(ctx, lifecycle.ActionUpdateStaff)
	if err != nil {
		return nil, err
	}

	s.sanitizeStaff(req)
	if err := s.validator.ValidateStaff(req); err != nil {
		return nil, err
	}
	return s.catalog.UpdateStaff(ctx, sess, id, req)
}

func (s *catalogService) DeactivateStaff(ctx context.Context, id int64) error {
	sess, err := s.adminSession(ctx, lifecycle.ActionDeactivateStaff)
	if err != nil {
		return err
	}
	return s.catalog.DeactivateStaff(ctx, sess, id)
}

func (s *catalogService) sanitizeService(req *model.ServiceRequest) {
	req.Name = sanitizer.TrimAndNormalize(req.Name)
	req.Description = sanitizer.TrimAndNormalize(req.Description)
}

func (s *catalogService) sanitizeStaff(req *model.StaffRequest) {
	req.Name = sanitizer.TrimAndNormalize(req.Name)
	req.Bio = sanitizer.TrimAndNormalize(req.Bio)
	req.Specialization = sanitizer.TrimAndNormalize(req.Specialization)
}

// adminSession resolves the session and rejects roles the action is not
// exposed to before any request body is inspected.
func (s *catalogService) adminSession(ctx context.Context, action lifecycle.Action) (session.Session, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return session.Session{}, err
	}
	if !lifecycle.Exposed(sess.Role, action) {
		return session.Session{}, apperrors.PermissionDenied("action not available for this role")
	}
	return sess, nil
}

func currentSession(ctx context.Context) (session.Session, error) {
	sess, ok := session.FromContext(ctx)
	if !ok || !sess.Authenticated() {
		return session.Session{}, apperrors.AuthenticationRequired("no active session")
	}
	return sess, nil
}
