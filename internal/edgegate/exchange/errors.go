// Package-level error variables for the exchange client. Every failure the
// client can produce derives from ErrExchangeError so callers can classify
// with errors.Is.
package exchange

import (
	"net/http"

	"github.com/edgegate-io/edgegate/internal/common/apperrors"
)

var (
	// ErrExchangeError is the base error for exchange client errors.
	ErrExchangeError apperrors.Error = apperrors.New("exchange error").SetStatusCode(http.StatusBadGateway)

	// ErrExchangeHTTP is returned when the exchange responds with a non-2xx
	// status. The message carries the status code and status text.
	ErrExchangeHTTP apperrors.Error = ErrExchangeError.New("exchange returned an error status")

	// ErrExchangeTransport is returned when the exchange cannot be reached
	// or the response cannot be read.
	ErrExchangeTransport apperrors.Error = ErrExchangeError.New("unable to reach exchange")
)
