package client

import (
	"context"
	"strconv"

	apperrors "salongate/pkg/errors"
	"salongate/pkg/lifecycle"
	"salongate/pkg/model"
	"salongate/pkg/session"
)

// PaymentIntent carries whichever provider handle the backend created:
// Stripe sets ClientSecret, Razorpay sets OrderID/KeyID, Cashfree sets
// PaymentSessionID. PaymentID is always present.
type PaymentIntent struct {
	PaymentID        int64   `json:"paymentId"`
	ClientSecret     string  `json:"clientSecret,omitempty"`
	OrderID          string  `json:"orderId,omitempty"`
	KeyID            string  `json:"keyId,omitempty"`
	PaymentSessionID string  `json:"paymentSessionId,omitempty"`
	Amount           float64 `json:"amount,omitempty"`
	Currency         string  `json:"currency,omitempty"`
}

type PaymentClient struct {
	http  *HttpClient
	guard *ActionGuard
}

func NewPaymentClient(http *HttpClient) *PaymentClient {
	return &PaymentClient{
		http:  http,
		guard: NewActionGuard(),
	}
}

func (c *PaymentClient) CreateIntent(ctx context.Context, sess session.Session, req *model.PaymentIntentRequest) (*PaymentIntent, error) {
	op, ok := lifecycle.Lookup(sess.Role, lifecycle.ActionCreatePaymentInt)
	if !ok {
		return nil, apperrors.PermissionDenied("action not available for this role")
	}

	var intent PaymentIntent
	err := c.guard.Do("intent:"+strconv.FormatInt(req.AppointmentID, 10), func() error {
		resp, err := c.http.Do(ctx, sess, op.Method, op.URL(nil), req)
		if err != nil {
			return err
		}
		if err := resp.DecodeJSON(&intent); err != nil {
			return apperrors.Internal("could not decode payment intent", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// Verify submits provider proof for the customer's own payment. Distinct
// from the admin-side verify actions, which re-check with the gateway of
// record instead.
func (c *PaymentClient) Verify(ctx context.Context, sess session.Session, req *model.PaymentVerifyRequest) error {
	op, ok := lifecycle.Lookup(sess.Role, lifecycle.ActionVerifyOwnPayment)
	if !ok {
		return apperrors.PermissionDenied("action not available for this role")
	}

	return c.guard.Do("verify:"+strconv.FormatInt(req.PaymentID, 10), func() error {
		_, err := c.http.Do(ctx, sess, op.Method, op.URL(nil), req)
		return err
	})
}
