package errors

import "errors"

// ErrOptimisticLock means the row was changed by someone else since it was read.
var ErrOptimisticLock = errors.New("record was modified by another request, reload and retry")
