package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNotFound represents an unknown person or friend
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeInvalidRequest represents a malformed or incomplete request
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
	// ErrorTypeConflict represents a friendship that already exists or a self-friendship
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeInternal represents a broken graph invariant
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// Client-facing messages.
const (
	MsgPersonNotFound = "The person you have requested does not exist, refer to README.md for examples"
	MsgMissingFriend  = "Please provide friend field, refer to README.md for examples"
	MsgFriendExists   = "Friend already in network, refer to README.md for examples"
	MsgFriendNotFound = "Friend does not exist to remove, refer to README.md for examples"
	MsgInternal       = "The network is in an inconsistent state, the request was not applied"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// Kind returns the error category
func (e *BaseError) Kind() ErrorType {
	return e.Type
}

// Detail returns the message without the wrapped cause
func (e *BaseError) Detail() string {
	return e.Message
}

// typed is satisfied by BaseError and every error embedding it
type typed interface {
	error
	Kind() ErrorType
	Detail() string
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Network Errors

// ErrPersonNotFound is returned when no person has the requested id
type ErrPersonNotFound struct {
	*BaseError
	PersonID int
}

func NewPersonNotFound(personID int) *ErrPersonNotFound {
	return &ErrPersonNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, MsgPersonNotFound, nil),
		PersonID:  personID,
	}
}

// ErrFriendNotFound is returned when removing a friend the person does not have
type ErrFriendNotFound struct {
	*BaseError
	PersonID int
	Friend   string
}

func NewFriendNotFound(personID int, friend string) *ErrFriendNotFound {
	return &ErrFriendNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, MsgFriendNotFound, nil),
		PersonID:  personID,
		Friend:    friend,
	}
}

// ErrMissingFriend is returned when the friend field is absent or empty
var ErrMissingFriend = NewBaseError(ErrorTypeInvalidRequest, MsgMissingFriend, nil)

// ErrFriendConflict is returned when the friendship already exists or targets the person itself
type ErrFriendConflict struct {
	*BaseError
	PersonID int
	Friend   string
}

func NewFriendConflict(personID int, friend string) *ErrFriendConflict {
	return &ErrFriendConflict{
		BaseError: NewBaseError(ErrorTypeConflict, MsgFriendExists, nil),
		PersonID:  personID,
		Friend:    friend,
	}
}

// ErrInvalidRelationship is returned when a seed entry is not of the form "A knows B"
type ErrInvalidRelationship struct {
	*BaseError
	Entry string
}

func NewInvalidRelationship(entry, reason string) *ErrInvalidRelationship {
	return &ErrInvalidRelationship{
		BaseError: NewBaseError(ErrorTypeInvalidRequest, fmt.Sprintf("invalid relationship %q: %s", entry, reason), nil),
		Entry:     entry,
	}
}

// ErrIntegrityViolation is returned when a friend list names a person the index cannot resolve
type ErrIntegrityViolation struct {
	*BaseError
	Name string
}

func NewIntegrityViolation(name string) *ErrIntegrityViolation {
	return &ErrIntegrityViolation{
		BaseError: NewBaseError(ErrorTypeInternal, fmt.Sprintf("friend %q is not indexed", name), nil),
		Name:      name,
	}
}

// Graph Errors

// ErrGraphConnectionFailed is returned when Neo4j connection fails
type ErrGraphConnectionFailed struct {
	*BaseError
	URI string
}

func NewGraphConnectionFailed(uri string, err error) *ErrGraphConnectionFailed {
	return &ErrGraphConnectionFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrGraphQueryFailed is returned when a graph query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Operation string
}

func NewGraphQueryFailed(operation string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// TypeOf returns the ErrorType of the first categorized error in the chain, or
// ErrorTypeInternal for errors this package did not produce.
func TypeOf(err error) ErrorType {
	var t typed
	if stderrors.As(err, &t) {
		return t.Kind()
	}
	return ErrorTypeInternal
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}
	var t typed
	return stderrors.As(err, &t) && t.Kind() == errType
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var t typed
	if stderrors.As(err, &t) && t.Kind() != ErrorTypeInternal && t.Kind() != ErrorTypeGraph {
		return t.Detail()
	}
	return MsgInternal
}

// IsCategorized reports whether err carries an ErrorType from this package
func IsCategorized(err error) bool {
	var t typed
	return stderrors.As(err, &t)
}
