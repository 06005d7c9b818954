package errors

import (
	"errors"
	"fmt"
)

// UnknownResourceTypeError indicates a listing request named a resource
// type with no registered column tables. This is a caller contract
// violation, not a user filter error.
type UnknownResourceTypeError struct {
	Name string
}

func NewUnknownResourceTypeError(name string) *UnknownResourceTypeError {
	return &UnknownResourceTypeError{Name: name}
}

func (e *UnknownResourceTypeError) Error() string {
	return fmt.Sprintf("unknown resource type: %s", e.Name)
}

// IsUnknownResourceTypeError checks if the error is an UnknownResourceTypeError.
func IsUnknownResourceTypeError(err error) bool {
	var e *UnknownResourceTypeError
	return errors.As(err, &e)
}

// ResourceNotFoundError indicates a resource was not found.
type ResourceNotFoundError struct {
	Kind string
}

func NewResourceNotFoundError(kind string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Kind: kind}
}

func NewFilterNotFoundError() *ResourceNotFoundError {
	return NewResourceNotFoundError("filter")
}

func NewTagNotFoundError() *ResourceNotFoundError {
	return NewResourceNotFoundError("tag")
}

func NewSettingNotFoundError() *ResourceNotFoundError {
	return NewResourceNotFoundError("setting")
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Kind)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// InvalidArgumentError indicates a request carried a value the management
// layer cannot accept, e.g. a stored filter without a name.
type InvalidArgumentError struct {
	Reason string
}

func NewInvalidArgumentError(reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Reason: reason}
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

func IsInvalidArgumentError(err error) bool {
	var e *InvalidArgumentError
	return errors.As(err, &e)
}
