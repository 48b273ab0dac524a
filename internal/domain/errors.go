package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Sentinel errors for configuration loading and build operations
var (
	// ErrNotFound is returned when the configuration document doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrMalformedDocument is returned when the document can't be parsed in its declared format
	ErrMalformedDocument = errors.New("malformed document")

	// ErrUnknownNetwork is returned when the selected network is not declared in the document
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrInvalidField is returned when a field fails type or range validation
	ErrInvalidField = errors.New("invalid field")

	// ErrNetworkMismatch is returned when a node reports a different network ID than configured
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrCompilerMismatch is returned when the installed solc doesn't match the configured version
	ErrCompilerMismatch = errors.New("compiler version mismatch")

	// ErrNoSources is returned when the contracts directory holds no Solidity sources
	ErrNoSources = errors.New("no contract sources")

	// ErrDBDisabled is returned when the build ledger is requested with db.enabled = false
	ErrDBDisabled = errors.New("build database disabled")
)

// FieldError reports a single field that failed validation.
// Path is the dotted key path inside the document, e.g. "networks.development.port".
type FieldError struct {
	Path   string
	Value  any
	Reason string
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid field %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid field %s (%v): %s", e.Path, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidField
}

// UnknownNetworkError is returned when the selected network profile doesn't exist
type UnknownNetworkError struct {
	Name       string
	Available  []string
	Suggestion string
}

// NewUnknownNetworkError builds an UnknownNetworkError, suggesting the closest
// available name when one fuzzy-matches
func NewUnknownNetworkError(name string, available []string) *UnknownNetworkError {
	e := &UnknownNetworkError{
		Name:      name,
		Available: available,
	}
	if name != "" {
		if matches := fuzzy.Find(name, available); len(matches) > 0 {
			e.Suggestion = matches[0].Str
		}
	}
	return e
}

func (e *UnknownNetworkError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unknown network %q", e.Name)
	if len(e.Available) == 0 {
		b.WriteString(": no networks declared")
		return b.String()
	}
	fmt.Fprintf(&b, " (available: %s)", strings.Join(e.Available, ", "))
	if e.Suggestion != "" {
		fmt.Fprintf(&b, ", did you mean %q?", e.Suggestion)
	}
	return b.String()
}

func (e *UnknownNetworkError) Unwrap() error {
	return ErrUnknownNetwork
}

// NetworkMismatchError is returned when a node's network ID differs from the profile's
type NetworkMismatchError struct {
	Network  string
	Expected uint64
	Actual   uint64
}

func (e *NetworkMismatchError) Error() string {
	return fmt.Sprintf("network %s: network ID mismatch: expected %d, got %d", e.Network, e.Expected, e.Actual)
}

func (e *NetworkMismatchError) Unwrap() error {
	return ErrNetworkMismatch
}
