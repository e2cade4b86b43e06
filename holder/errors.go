package holder

import "errors"

// ErrNegativeSize is returned when a holder is requested with fewer than zero elements.
var ErrNegativeSize = errors.New("holder: negative size")
