package service

import (
	"context"

	"salongate/internal/payments/validator"
	"salongate/pkg/client"
	apperrors "salongate/pkg/errors"
	"salongate/pkg/logger"
	"salongate/pkg/model"
	"salongate/pkg/session"
)

// PaymentService relays intent creation and customer-side verification.
// Provider integration lives entirely in the backend; the gateway only
// validates shape and forwards.
type PaymentService interface {
	CreateIntent(ctx context.Context, req *model.PaymentIntentRequest) (*client.PaymentIntent, error)
	Verify(ctx context.Context, req *model.PaymentVerifyRequest) error
}

type paymentService struct {
	payments  *client.PaymentClient
	validator *validator.PaymentValidator
	log       *logger.Logger
}

func NewPaymentService(payments *client.PaymentClient, validator *validator.PaymentValidator, log *logger.Logger) PaymentService {
	return &paymentService{
		payments:  payments,
		validator: validator,
		log:       log,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, req *model.PaymentIntentRequest) (*client.PaymentIntent, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateIntent(req); err != nil {
		return nil, err
	}

	return s.payments.CreateIntent(ctx, sess, req)
}

func (s *paymentService) Verify(ctx context.Context, req *model.PaymentVerifyRequest) error {
	sess, err := currentSession(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.ValidateVerify(req); err != nil {
		return err
	}

	return s.payments.Verify(ctx, sess, req)
}

func currentSession(ctx context.Context) (session.Session, error) {
	sess, ok := session.FromContext(ctx)
	if !ok || !sess.Authenticated() {
		return session.Session{}, apperrors.AuthenticationRequired("no active session")
	}
	return sess, nil
}
