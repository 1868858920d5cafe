package client

import (
	"fmt"
	"net/http"

	apperrors "salongate/pkg/errors"
)

// ErrorMessage extracts the human-readable message carried by a backend error
// response. The backend always sets `message`; older deployments used `error`.
func ErrorMessage(resp *Response) string {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Code    string `json:"code"`
	}
	if err := resp.DecodeJSON(&errResp); err != nil {
		return ""
	}

	if errResp.Message != "" {
		return errResp.Message
	}
	if errResp.Error != "" {
		return errResp.Error
	}
	return errResp.Code
}

// mapStatusError translates a backend rejection into the local taxonomy,
// carrying the backend message verbatim. Any 4xx other than auth and
// not-found is a precondition failure: the backend re-validated a rule the
// evaluator should have caught, which is expected defense in depth.
func mapStatusError(resp *Response) *apperrors.AppError {
	message := ErrorMessage(resp)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if message == "" {
			message = "authentication required"
		}
		return apperrors.AuthenticationRequired(message)
	case http.StatusForbidden:
		if message == "" {
			message = "permission denied"
		}
		return apperrors.PermissionDenied(message)
	case http.StatusNotFound:
		if message == "" {
			message = "resource not found"
		}
		return apperrors.New(apperrors.CodeNotFound, message, http.StatusNotFound)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		if message == "" {
			message = "salon backend error"
		}
		return apperrors.Transient(message, fmt.Errorf("backend returned status %d", resp.StatusCode))
	}

	if message == "" {
		message = fmt.Sprintf("request rejected with status %d", resp.StatusCode)
	}
	return apperrors.PreconditionFailed(message)
}
