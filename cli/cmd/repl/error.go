package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds    = errors.New("index out of range")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoPrevious     = errors.New("previous result is not a finite number")
	ErrSessionLog     = errors.New("cannot write session log")
)
