package domain

import (
	"errors"
	"fmt"
)

// Error kinds, usable with errors.Is.
var (
	ErrSpecNotFound     = errors.New("address level spec not found")
	ErrBuildFailed      = errors.New("address build failed")
	ErrUnsupportedLevel = errors.New("unsupported address level")
	ErrMalformedInput   = errors.New("malformed hierarchy payload")
)

// SpecNotFoundError is returned by type resolvers for unknown codes.
type SpecNotFoundError struct {
	Level      Level
	Identifier string
	Resolver   string
}

func (e *SpecNotFoundError) Error() string {
	return fmt.Sprintf("failed to resolve spec for level %q and identifier %q (%s)", e.Level, e.Identifier, e.Resolver)
}

func (e *SpecNotFoundError) Is(target error) bool {
	return target == ErrSpecNotFound
}

// BuildFailedError reports a violated level-group contract.
type BuildFailedError struct {
	ObjectID int64
	Level    FiasLevel
	Count    int
	Reason   string
}

func (e *BuildFailedError) Error() string {
	msg := fmt.Sprintf("address build failed for object_id %d", e.ObjectID)
	if e.Level != 0 {
		msg += fmt.Sprintf(" at fias level %d", e.Level)
	}
	return msg + ": " + e.Reason
}

func (e *BuildFailedError) Is(target error) bool {
	return target == ErrBuildFailed
}

// UnsupportedLevelError means a level that must be filtered upstream reached the builder.
type UnsupportedLevelError struct {
	Level Level
}

func (e *UnsupportedLevelError) Error() string {
	return fmt.Sprintf("unsupported address level %q", e.Level)
}

func (e *UnsupportedLevelError) Is(target error) bool {
	return target == ErrUnsupportedLevel
}

// MalformedInputError wraps the first structural failure found in a payload.
type MalformedInputError struct {
	Field string
	Err   error
}

func (e *MalformedInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed payload: %v", e.Err)
	}
	return fmt.Sprintf("malformed payload field %q: %v", e.Field, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
