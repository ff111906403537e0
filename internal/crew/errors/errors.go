package errors

import (
	"fmt"
)

var (
	ErrNotFound      = fmt.Errorf("not found")
	ErrDuplicateName = fmt.Errorf("duplicate name")
	ErrAmbiguousName = fmt.Errorf("ambiguous name")
	ErrInvalidInput  = fmt.Errorf("invalid input")
)
