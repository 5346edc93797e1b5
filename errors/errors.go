package errors

import "fmt"

var (
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrEmptyName        = fmt.Errorf("empty username")
	ErrNameTaken        = fmt.Errorf("username already taken")
	ErrMalformedCommand = fmt.Errorf("malformed command")
	ErrEmptyWords       = fmt.Errorf("no words have been found")
)
