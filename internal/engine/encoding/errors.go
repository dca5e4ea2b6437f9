package encoding

import "errors"

// ErrMalformed indicates raw input that cannot describe a valid document.
var ErrMalformed = errors.New("malformed raw document")
