package handler

import (
	"github.com/rackleet/authserver/internal/common/errorx"

	"github.com/gin-gonic/gin"
)

// RespondWithError writes an OAuth2 error body. Anything that is not
// already an OAuth2 error becomes an opaque server_error so internal
// details never reach clients.
func RespondWithError(c *gin.Context, err error) {
	oe := errorx.Convert(err)
	body := gin.H{"error": oe.ErrorType}
	if oe.ErrorDescription != "" {
		body["error_description"] = oe.ErrorDescription
	}
	c.JSON(oe.HTTPStatus, body)
}

// RespondWithValidationError maps a request-binding failure to
// invalid_request.
func RespondWithValidationError(c *gin.Context, err error) {
	RespondWithError(c, errorx.ErrInvalidRequest.WithDescription("%s", err.Error()))
}
