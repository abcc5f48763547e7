package remindkit

import "errors"

var (
	// ErrNotFound is wrapped by store and client errors when a reminder or
	// calendar identifier does not resolve. Check with errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrNoDefaultCalendar is returned when the store cannot determine a
	// default reminder list.
	ErrNoDefaultCalendar = errors.New("no default calendar")
)
