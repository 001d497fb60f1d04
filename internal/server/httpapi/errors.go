package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/labstack/echo/v4"
)

// messageResponse is the uniform body for acknowledgements and errors.
type messageResponse struct {
	Message string `json:"message"`
}

// clientErrors are surfaced to the caller verbatim with a 400 status. The
// sentinels carry deliberately generic texts: a failed login never reveals
// which factor was wrong, and a dead refresh token never reveals whether it
// expired or was revoked.
var clientErrors = []error{
	common.ErrMissingField,
	common.ErrValidation,
	common.ErrorEmailExists,
	common.ErrorInvalidCredentials,
	common.ErrRefreshTokenInvalid,
	common.ErrorNotFound,
}

// writeError maps a service error onto the HTTP contract: client-input
// errors become 400 with the sentinel's message, everything else is a 500
// with no internal detail; storage errors are logged server-side only.
func (s *HTTPServer) writeError(c echo.Context, err error) error {
	for _, sentinel := range clientErrors {
		if errors.Is(err, sentinel) {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: sentinel.Error()})
		}
	}

	s.logger.Error(c.Request().Context(), "request failed", "error", err.Error())
	return c.JSON(http.StatusInternalServerError, messageResponse{Message: "something went wrong"})
}
