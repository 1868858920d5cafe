package service

import (
	"context"
	"time"

	"salongate/pkg/client"
	apperrors "salongate/pkg/errors"
	"salongate/pkg/logger"
	"salongate/pkg/model"
	"salongate/pkg/session"
)

// AvailabilityService relays slot queries. Slots are advisory only: a slot
// shown as free can still be rejected at booking time, and the booking error
// is the authoritative answer.
type AvailabilityService interface {
	Slots(ctx context.Context, staffID, serviceID int64, date string) (*model.SlotsResponse, error)
}

type availabilityService struct {
	availability *client.AvailabilityClient
	log          *logger.Logger
}

func NewAvailabilityService(availability *client.AvailabilityClient, log *logger.Logger) AvailabilityService {
	return &availabilityService{
		availability: availability,
		log:          log,
	}
}

func (s *availabilityService) Slots(ctx context.Context, staffID, serviceID int64, date string) (*model.SlotsResponse, error) {
	sess, ok := session.FromContext(ctx)
	if !ok || !sess.Authenticated() {
		return nil, apperrors.AuthenticationRequired("no active session")
	}

	if staffID <= 0 {
		return nil, apperrors.InvalidInput("staffId must be a positive integer")
	}
	if serviceID <= 0 {
		return nil, apperrors.InvalidInput("serviceId must be a positive integer")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.InvalidInput("date must be formatted YYYY-MM-DD")
	}

	return s.availability.Slots(ctx, sess, staffID, serviceID, date)
}
