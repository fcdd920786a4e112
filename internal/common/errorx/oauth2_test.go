package errorx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOAuth2Error_WithDescription(t *testing.T) {
	err := ErrInvalidClient.WithDescription("client not found or inactive: %s", "abc")

	assert.Equal(t, "invalid_client", err.ErrorType)
	assert.Equal(t, "client not found or inactive: abc", err.ErrorDescription)
	assert.Equal(t, http.StatusUnauthorized, err.HTTPStatus)
	// sentinel untouched
	assert.Empty(t, ErrInvalidClient.ErrorDescription)
}

func TestOAuth2Error_Is(t *testing.T) {
	decorated := ErrInvalidRequest.WithDescription("unsupported grant type: foo")
	assert.ErrorIs(t, decorated, ErrInvalidRequest)

	// same code, different status: not the same error
	assert.NotErrorIs(t, ErrClientNotFound, ErrInvalidClient)
	assert.NotErrorIs(t, ErrInvalidClient, ErrClientNotFound)

	wrapped := fmt.Errorf("store: %w", ErrClientAlreadyExists)
	assert.ErrorIs(t, wrapped, ErrClientAlreadyExists)
}

func TestOAuth2Error_JSONShape(t *testing.T) {
	err := ErrInvalidRequest.WithDescription("redirect URI must not contain a fragment")

	var body map[string]string
	assert.NoError(t, json.Unmarshal([]byte(err.Error()), &body))
	assert.Equal(t, "invalid_request", body["error"])
	assert.Equal(t, "redirect URI must not contain a fragment", body["error_description"])
	_, hasStatus := body["HTTPStatus"]
	assert.False(t, hasStatus)
}

func TestConvert(t *testing.T) {
	oauthErr := Convert(ErrAccessDenied.WithDescription("invalid username or password"))
	assert.Equal(t, "access_denied", oauthErr.ErrorType)
	assert.Equal(t, http.StatusUnauthorized, oauthErr.HTTPStatus)

	internal := Convert(errors.New("bcrypt: hash algorithm unavailable"))
	assert.Equal(t, "server_error", internal.ErrorType)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
}
