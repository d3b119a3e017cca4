package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

// remoteError matches {"error":{"code":..,"message":..}} bodies, the shape
// both this service and Stripe answer with.
type remoteError struct {
	Error *struct {
		Code    string `json:"code"`
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError consumes and closes a non-2xx response and maps it to
// an AppError where the status has a clear meaning.
func ParseResponseError(resp *http.Response, remote string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (read body: %w)", remote, resp.StatusCode, err)
	}

	var parsed remoteError
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
		code := parsed.Error.Code
		if code == "" {
			code = parsed.Error.Type
		}
		return mapRemoteError(resp.StatusCode, code, parsed.Error.Message, remote)
	}
	return &RemoteError{Remote: remote, Status: resp.StatusCode, Body: string(body)}
}

// RemoteError is an unstructured failure from a remote API.
type RemoteError struct {
	Remote string
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Remote, e.Status, e.Body)
}

func mapRemoteError(status int, code, message, remote string) error {
	qualified := fmt.Sprintf("%s: %s", remote, message)

	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{Code: "NOT_FOUND", Message: message, Status: status, Err: apperrors.ErrNotFound}
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case status == http.StatusServiceUnavailable:
		return apperrors.Unavailable(qualified, nil)
	case status >= 500:
		return fmt.Errorf("%s server error (%d/%s): %s", remote, status, code, message)
	default:
		if code == "" {
			code = "REMOTE_ERROR"
		}
		return &apperrors.AppError{Code: code, Message: qualified, Status: status}
	}
}

// IsClientError reports whether status is 4xx.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
