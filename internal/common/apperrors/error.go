// Package apperrors provides the error type used across edgegate. It extends
// the standard error interface with error chaining and HTTP status codes so
// failures can travel as values from the exchange client up to the protocol
// boundary without losing their classification.
package apperrors

// Error is the application error interface. All methods return Error to
// support chaining. Derived errors keep errors.Is compatibility with the
// error they were built from.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // creates a new error using current as template
	Msg(msg string) Error                  // creates a new error with message and wraps original
	MsgErr(msg string, err ...error) Error // creates error with message and wraps extra errors
	Err(err ...error) Error                // attaches additional errors to current error
	SetStatusCode(int) Error               // sets HTTP status code for the error
	StatusCode() int                       // returns the current status code
	ErrorAll() string                      // returns full message including wrapped errors
	UnwrapAll() []error                    // returns all wrapped errors
}
