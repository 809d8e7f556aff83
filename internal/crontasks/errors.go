package crontasks

import "errors"

var (
	// ErrInvalidRule indicates a rule that is neither a cron expression nor
	// a known descriptor.
	ErrInvalidRule = errors.New("invalid cron rule")
	// ErrInvalidTimezone indicates a TZ that is not a loadable IANA zone.
	ErrInvalidTimezone = errors.New("invalid task timezone")
	// ErrNoHandler indicates a task without a handler.
	ErrNoHandler = errors.New("task has no handler")
	// ErrUnknownHandler indicates a schedule entry referring to a handler
	// that is not registered.
	ErrUnknownHandler = errors.New("unknown task handler")
)
