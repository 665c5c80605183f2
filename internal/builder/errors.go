package builder

import "errors"

// ErrInvalidLabel is returned when a menu item has no label and none can be
// derived from its rhs.
var ErrInvalidLabel = errors.New("no menu label given and none derivable from rhs")
