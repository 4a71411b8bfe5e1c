package prediction

import "errors"

// ErrInvalidInput reports a prediction collection that is not a sequence of
// records. Malformed individual fields never produce it.
var ErrInvalidInput = errors.New("invalid input: expected a sequence of records")
