package errors

import "fmt"

type InvalidConfigurationError struct {
	msg string
}

func NewInvalidConfigurationError(msg string) *InvalidConfigurationError {
	return &InvalidConfigurationError{msg: msg}
}

func (e *InvalidConfigurationError) Error() string {
	return e.msg
}

type NilArgumentError struct {
	argument string
}

func NewNilArgumentError(argument string) *NilArgumentError {
	return &NilArgumentError{argument: argument}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("argument '%s' must not be nil", e.argument)
}
