package replay

import "errors"

var (
	ErrEmptyCanvas    = errors.New("record canvas is empty")
	ErrEmptyViewport  = errors.New("viewport has no room")
	ErrInvalidTiming  = errors.New("invalid replay timing")
	ErrCancelled      = errors.New("replay cancelled")
	ErrAlreadyStarted = errors.New("replay already started")
)
