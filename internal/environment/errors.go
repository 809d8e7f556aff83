package environment

import "errors"

// ErrMalformedValue is returned by typed accessors when a variable is set
// but cannot be converted to the requested type.
var ErrMalformedValue = errors.New("malformed environment value")
