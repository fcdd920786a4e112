package errorx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// OAuth2Error is the error shape shared by every layer of the server:
// an RFC 6749 error code, an optional human-readable description and the
// HTTP status the transport should respond with.
type OAuth2Error struct {
	ErrorType        string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	HTTPStatus       int    `json:"-"`
}

func (e *OAuth2Error) Error() string {
	out, _ := json.Marshal(e)
	return string(out)
}

// Is matches by error code and status so that decorated copies created
// with WithDescription still compare against the sentinel values below.
func (e *OAuth2Error) Is(target error) bool {
	var t *OAuth2Error
	if !errors.As(target, &t) {
		return false
	}
	return e.ErrorType == t.ErrorType && e.HTTPStatus == t.HTTPStatus
}

// WithDescription returns a copy of the error carrying a description.
// The sentinel itself is never mutated.
func (e *OAuth2Error) WithDescription(format string, args ...any) *OAuth2Error {
	return &OAuth2Error{
		ErrorType:        e.ErrorType,
		ErrorDescription: fmt.Sprintf(format, args...),
		HTTPStatus:       e.HTTPStatus,
	}
}

var (
	// ErrInvalidRequest covers malformed, ambiguous or policy-violating input.
	ErrInvalidRequest = &OAuth2Error{
		ErrorType:  "invalid_request",
		HTTPStatus: http.StatusBadRequest,
	}

	// ErrInvalidClient is the single authentication failure for unknown,
	// inactive, wrong-method and wrong-secret clients. The description must
	// never distinguish between those cases.
	ErrInvalidClient = &OAuth2Error{
		ErrorType:  "invalid_client",
		HTTPStatus: http.StatusUnauthorized,
	}

	// ErrClientNotFound is the management-read variant of invalid_client:
	// a lookup miss (or inactive client) on the registration API.
	ErrClientNotFound = &OAuth2Error{
		ErrorType:  "invalid_client",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrClientAlreadyExists is raised by stores when a client_id insert
	// hits the uniqueness guarantee.
	ErrClientAlreadyExists = &OAuth2Error{
		ErrorType:        "invalid_request",
		ErrorDescription: "client already exists",
		HTTPStatus:       http.StatusConflict,
	}

	// ErrDuplicateUser is raised by stores when a username or email insert
	// hits the uniqueness guarantee.
	ErrDuplicateUser = &OAuth2Error{
		ErrorType:        "invalid_request",
		ErrorDescription: "username or email already registered",
		HTTPStatus:       http.StatusConflict,
	}

	// ErrAccessDenied covers end-user authentication failures.
	ErrAccessDenied = &OAuth2Error{
		ErrorType:  "access_denied",
		HTTPStatus: http.StatusUnauthorized,
	}

	// ErrUserNotFound is raised by stores on a username lookup miss. It
	// deliberately carries the same code and status as ErrAccessDenied so
	// callers cannot leak whether the username or the password was wrong.
	ErrUserNotFound = &OAuth2Error{
		ErrorType:  "access_denied",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrServerError = &OAuth2Error{
		ErrorType:  "server_error",
		HTTPStatus: http.StatusInternalServerError,
	}

	// Reserved for the token and authorization endpoints.
	ErrInvalidGrant = &OAuth2Error{
		ErrorType:  "invalid_grant",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrUnauthorizedClient = &OAuth2Error{
		ErrorType:  "unauthorized_client",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrUnsupportedGrantType = &OAuth2Error{
		ErrorType:  "unsupported_grant_type",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidScope = &OAuth2Error{
		ErrorType:  "invalid_scope",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrUnsupportedResponseType = &OAuth2Error{
		ErrorType:  "unsupported_response_type",
		HTTPStatus: http.StatusBadRequest,
	}

	// Reserved for the OIDC phase.
	ErrLoginRequired = &OAuth2Error{
		ErrorType:  "login_required",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrConsentRequired = &OAuth2Error{
		ErrorType:  "consent_required",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInteractionRequired = &OAuth2Error{
		ErrorType:  "interaction_required",
		HTTPStatus: http.StatusBadRequest,
	}
)

// Convert returns err as an *OAuth2Error.
// Unexpected internal failures become server_error; nothing is retried.
func Convert(err error) *OAuth2Error {
	var oauthErr *OAuth2Error
	if errors.As(err, &oauthErr) {
		return oauthErr
	}

	// The original error is logged at the call site; clients only see
	// the opaque code.
	return &OAuth2Error{
		ErrorType:  "server_error",
		HTTPStatus: http.StatusInternalServerError,
	}
}
