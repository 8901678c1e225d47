package domain

import "errors"

var (
	ErrInvalidTaskName   = errors.New("task name must be 3-100 characters")
	ErrInvalidRecurrence = errors.New("invalid recurrence value")
	ErrEmptyCategory     = errors.New("category cannot be empty")
	ErrTaskNotFound      = errors.New("task not found")
	ErrProfileNotFound   = errors.New("profile not found")
)
