package client

import (
	"context"
	"strconv"

	apperrors "salongate/pkg/errors"
	"salongate/pkg/lifecycle"
	"salongate/pkg/model"
	"salongate/pkg/session"
)

type ReviewClient struct {
	http  *HttpClient
	guard *ActionGuard
}

func NewReviewClient(http *HttpClient) *ReviewClient {
	return &ReviewClient{
		http:  http,
		guard: NewActionGuard(),
	}
}

// Submit creates the one permitted review for a completed (sub-)service.
func (c *ReviewClient) Submit(ctx context.Context, sess session.Session, req *model.ReviewRequest) (*model.Review, error) {
	op, ok := lifecycle.Lookup(sess.Role, lifecycle.ActionSubmitReview)
	if !ok {
		return nil, apperrors.PermissionDenied("action not available for this role")
	}

	var review model.Review
	err := c.guard.Do("appointment:"+strconv.FormatInt(req.AppointmentID, 10), func() error {
		resp, err := c.http.Do(ctx, sess, op.Method, op.URL(nil), req)
		if err != nil {
			return err
		}
		if err := resp.DecodeJSON(&review); err != nil {
			return apperrors.Internal("could not decode review", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Respond attaches the one permitted staff response to a review.
func (c *ReviewClient) Respond(ctx context.Context, sess session.Session, reviewID int64, req *model.ReviewResponseRequest) error {
	op, ok := lifecycle.Lookup(sess.Role, lifecycle.ActionRespondToReview)
	if !ok {
		return apperrors.PermissionDenied("action not available for this role")
	}

	return c.guard.Do("review:"+strconv.FormatInt(reviewID, 10), func() error {
		vars := map[string]string{"reviewId": strconv.FormatInt(reviewID, 10)}
		_, err := c.http.Do(ctx, sess, op.Method, op.URL(vars), req)
		return err
	})
}
