package reminder

import "errors"

var (
	ErrReminderDoesNotExist = errors.New("reminder does not exist")
	ErrReminderTitleNotSet  = errors.New("reminder title is not set")
	ErrReminderDueAtNotSet  = errors.New("reminder due date is not set")
	ErrNegativeAmount       = errors.New("reminder amount must not be negative")
	ErrInvalidCustomDays    = errors.New("custom frequency requires a positive number of days")
)
