package errors

import "fmt"

var (
	ErrWorkerPanic   = fmt.Errorf("worker panic")
	ErrEmptyName     = fmt.Errorf("document name must not be empty")
	ErrInvalidName   = fmt.Errorf("invalid document name")
	ErrNotFound      = fmt.Errorf("document not found")
	ErrNameTaken     = fmt.Errorf("display name already in use")
	ErrBlankUsername = fmt.Errorf("display name must not be blank")
)
