package analysis

import "errors"

// ErrInvalidRequest is returned for malformed analysis or refinement input.
var ErrInvalidRequest = errors.New("invalid request")
