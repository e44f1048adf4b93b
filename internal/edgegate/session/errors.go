// Package-level error variables for session management.
package session

import (
	"net/http"

	"github.com/edgegate-io/edgegate/internal/common/apperrors"
)

var (
	// ErrSessionError is the base error for session errors.
	ErrSessionError apperrors.Error = apperrors.New("session error").SetStatusCode(http.StatusInternalServerError)

	// ErrUnknownSession is returned when a request references a session id
	// that is not in the registry.
	ErrUnknownSession apperrors.Error = ErrSessionError.New("unknown session").SetStatusCode(http.StatusBadRequest)

	// ErrNilHandler is returned when a session is created without a
	// protocol handler.
	ErrNilHandler apperrors.Error = ErrSessionError.New("protocol handler is nil")
)
