// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. For appointments the handlers
// deliberately collapse this into the same 404 as a missing row,
// so ownership cannot be probed from the outside.
var ErrForbidden = errors.New("forbidden")
