package domain

import "errors"

var (
	// ErrNotFound is returned when a stored entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRange is returned when an item ends before it starts.
	ErrInvalidRange = errors.New("end date is before start date")

	// ErrUnknownStatus is returned when an item references a status that
	// does not exist.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrStatusInUse is returned when deleting a status that items still use.
	ErrStatusInUse = errors.New("status is still in use")
)
