package attendance

import "github.com/kalashala/kalashala/core"

var (
	// errors
	ErrStudentOrClassNotFound = core.NewNotFoundError("student or class")
)
