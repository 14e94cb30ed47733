package services

import (
	"errors"
	"fmt"
)

// errConfiguration marks errors that no retry can fix without the caller
// changing how the service was built.
var errConfiguration = errors.New("configuration error")

var (
	ErrMissingOrderID     = fmt.Errorf("%w: order id is required", errConfiguration)
	ErrIncompleteQuery    = errors.New("availability query is incomplete")
	ErrInvalidQuantity    = errors.New("quantity must not be negative")
	ErrTableNotAvailable  = errors.New("table is not among the available tables")
	ErrInvalidReservation = errors.New("invalid reservation")
)

// IsConfigurationError reports whether err is fatal to the operation until
// the service is reconfigured.
func IsConfigurationError(err error) bool {
	return errors.Is(err, errConfiguration)
}
