package snapshot

import "errors"

var errNilConfig = errors.New("loader returned nil config")
