// Package-level error variables for the action dispatcher. These classify
// request validation failures; exchange failures keep their own identity
// from the exchange package.
package dispatch

import (
	"net/http"

	"github.com/edgegate-io/edgegate/internal/common/apperrors"
)

var (
	// ErrDispatchError is the base error for dispatcher errors.
	ErrDispatchError apperrors.Error = apperrors.New("dispatch error").SetStatusCode(http.StatusBadRequest)

	// ErrInvalidRequest is returned when the request arguments cannot be
	// decoded into the resource action schema.
	ErrInvalidRequest apperrors.Error = ErrDispatchError.New("invalid resource action request")

	// ErrUnknownAction is returned when the action is outside the supported
	// set (list, details, create, delete, status).
	ErrUnknownAction apperrors.Error = ErrDispatchError.New("unknown action")

	// ErrInvalidTarget is returned when the target or policy type is outside
	// the supported set.
	ErrInvalidTarget apperrors.Error = ErrDispatchError.New("invalid target")

	// ErrMissingParameter is returned when a parameter required by the
	// action (name or data) is absent. Raised before any exchange call.
	ErrMissingParameter apperrors.Error = ErrDispatchError.New("missing required parameter")
)
