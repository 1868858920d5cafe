package client

import (
	"context"

	apperrors "salongate/pkg/errors"
	"salongate/pkg/model"
	"salongate/pkg/session"
)

type UserClient struct {
	http *HttpClient
}

func NewUserClient(http *HttpClient) *UserClient {
	return &UserClient{http: http}
}

// Profile resolves the bearer token to the authenticated user. Called with a
// bare token session before the role is known, so it bypasses the surface
// table: every authenticated role may read its own profile.
func (c *UserClient) Profile(ctx context.Context, sess session.Session) (*model.User, error) {
	resp, err := c.http.Do(ctx, sess, "GET", "/users/profile", nil)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := resp.DecodeJSON(&user); err != nil {
		return nil, apperrors.Internal("could not decode user profile", err)
	}
	return &user, nil
}
