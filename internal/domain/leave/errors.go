package leave

import "errors"

var (
	ErrNotFound            = errors.New("leave request not found")
	ErrWrongOwner          = errors.New("leave request belongs to another employee")
	ErrNotPending          = errors.New("leave request is not pending")
	ErrInvalidRange        = errors.New("end date before start date")
	ErrInsufficientBalance = errors.New("leave balance too low")
	ErrUnknownEmployee     = errors.New("unknown employee")
)
