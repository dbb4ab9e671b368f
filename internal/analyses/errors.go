package analyses

import "errors"

// ErrEmptyText is returned when there is no assignment text to analyze.
// The model must not be invoked in that case.
var ErrEmptyText = errors.New("text is required")
