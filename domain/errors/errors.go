// Package errors provides the error taxonomy for the link planner and the host bridge.
// All error types support error unwrapping via errors.As() and errors.Is().
//
// Build-time errors (ConfigurationError, MissingLibraryPathError) are fatal and
// abort the build. LengthOverflowError is returned to the caller, who must split
// the output. ContractViolation is only ever raised on a lane and handled by the
// abort path. Allocation failure is not an error type: it is a null address.
package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/amdgpu-go/devlibs/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is implemented by every error in this package so callers can
// turn any of them into a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// IsFatal reports whether err must abort the build, as recorded in its
// ErrorDetail.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return ToErrorDetail(err).Fatal
}

// ConfigurationError reports a broken build environment: a missing or
// malformed target directive, or an invalid configuration value.
type ConfigurationError struct {
	Err       error
	Directive string // e.g. "target-cpu" or the environment variable name
	Value     string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Directive != "" {
		b.WriteString(" in ")
		b.WriteString(e.Directive)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (%q)", e.Value)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigurationError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("configuration", e.Error()).WithCode(e.Directive).AsFatal()
}

// MissingLibraryPathError reports that none of the configured library search
// path sources resolves to an existing directory.
type MissingLibraryPathError struct {
	Err     error
	Sources []string // environment variables consulted, in precedence order
	Tried   []string // directories checked, in the same order
}

func (e *MissingLibraryPathError) Error() string {
	msg := fmt.Sprintf("no device library directory found (set %s)", strings.Join(e.Sources, " or "))
	if len(e.Tried) > 0 {
		msg += "; tried " + strings.Join(e.Tried, ", ")
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *MissingLibraryPathError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *MissingLibraryPathError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("missing_library_path", e.Error()).
		WithDetails(map[string]any{"sources": e.Sources, "tried": e.Tried}).
		AsFatal()
}

// LengthOverflowError reports a console write whose length does not fit the
// transport's signed 32-bit length field. Nothing was written.
type LengthOverflowError struct {
	Length int
	Limit  int
}

func (e *LengthOverflowError) Error() string {
	return fmt.Sprintf("console write of %d bytes exceeds transport limit of %d bytes", e.Length, e.Limit)
}

// ToErrorDetail implements DetailedError.
func (e *LengthOverflowError) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("length_overflow", e.Error()).
		WithDetails(map[string]any{"length": e.Length, "limit": e.Limit})
}

// ContractViolation is a locally detected misuse of the device runtime.
// It is the panic value the abort path recognises.
type ContractViolation struct {
	Err       error
	Operation string
	Reason    string
}

func (e *ContractViolation) Error() string {
	msg := "contract violation"
	if e.Operation != "" {
		msg += " in " + e.Operation
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *ContractViolation) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ContractViolation) ToErrorDetail() *entities.ErrorDetail {
	return entities.NewErrorDetail("contract_violation", e.Error()).WithCode(e.Operation)
}
