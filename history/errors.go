package history

import "errors"

// Sentinel errors for store operations.
var (
	ErrInsertFailed = errors.New("history insert failed")
	ErrQueryFailed  = errors.New("history query failed")
)
