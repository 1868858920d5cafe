package client

import (
	"context"
	"net/url"
	"strconv"

	apperrors "salongate/pkg/errors"
	"salongate/pkg/lifecycle"
	"salongate/pkg/model"
	"salongate/pkg/session"
)

type AvailabilityClient struct {
	http *HttpClient
}

func NewAvailabilityClient(http *HttpClient) *AvailabilityClient {
	return &AvailabilityClient{http: http}
}

// Slots fetches candidate start times for a staff member and service on a
// date (YYYY-MM-DD). The backend computes availability; the result is passed
// through untouched.
func (c *AvailabilityClient) Slots(ctx context.Context, sess session.Session, staffID, serviceID int64, date string) (*model.SlotsResponse, error) {
	op, ok := lifecycle.Lookup(sess.Role, lifecycle.ActionAvailableSlots)
	if !ok {
		return nil, apperrors.PermissionDenied("action not available for this role")
	}

	q := url.Values{}
	q.Set("staffId", strconv.FormatInt(staffID, 10))
	q.Set("serviceId", strconv.FormatInt(serviceID, 10))
	q.Set("date", date)

	resp, err := c.http.Do(ctx, sess, op.Method, op.URL(nil)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var slots model.SlotsResponse
	if err := resp.DecodeJSON(&slots); err != nil {
		return nil, apperrors.Internal("could not decode available slots", err)
	}
	return &slots, nil
}
