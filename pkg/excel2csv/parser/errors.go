package parser

import (
	"errors"
	"fmt"
)

// ErrPartNotFound indicates a named part is absent from the container.
var ErrPartNotFound = errors.New("part not found")

// ContainerError represents a problem locating or reading a container part.
type ContainerError struct {
	Part string
	Err  error
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("container part %q: %v", e.Part, e.Err)
}

func (e *ContainerError) Unwrap() error {
	return e.Err
}

// NewContainerError creates a new ContainerError.
func NewContainerError(part string, err error) *ContainerError {
	return &ContainerError{
		Part: part,
		Err:  err,
	}
}

// MalformedDocumentError represents structurally invalid XML in a part.
type MalformedDocumentError struct {
	Part string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document %q: %v", e.Part, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// NewMalformedDocumentError creates a new MalformedDocumentError.
func NewMalformedDocumentError(part string, err error) *MalformedDocumentError {
	return &MalformedDocumentError{
		Part: part,
		Err:  err,
	}
}

// ValueConversionError reports a serial value that cannot be rendered as a date or time.
// It never aborts a conversion; the raw value is emitted instead.
type ValueConversionError struct {
	Value  string
	Reason string
}

func (e *ValueConversionError) Error() string {
	return fmt.Sprintf("cannot convert %q: %s", e.Value, e.Reason)
}

// withPart labels a malformed-document error that was raised without a part name.
func withPart(err error, part string) error {
	var mde *MalformedDocumentError
	if errors.As(err, &mde) && mde.Part == "" {
		return NewMalformedDocumentError(part, mde.Err)
	}
	return err
}
