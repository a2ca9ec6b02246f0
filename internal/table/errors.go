package table

import (
	"errors"
	"fmt"
)

// Common errors returned by the table package.
var (
	// ErrConfig is wrapped by every column misconfiguration reported by New.
	ErrConfig = errors.New("invalid table configuration")

	// ErrUnknownColumn is returned when a column key is not declared.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrNotSortable is returned when sorting a column not marked sortable.
	ErrNotSortable = errors.New("column is not sortable")

	// ErrUnknownRow is returned when a row key does not match the current data.
	ErrUnknownRow = errors.New("unknown row")

	// ErrNoExpansion is returned when toggling rows of a table without an
	// expansion renderer.
	ErrNoExpansion = errors.New("table has no expansion renderer")

	// ErrNoRowClick is returned when clicking rows of a table without a
	// row click handler.
	ErrNoRowClick = errors.New("table has no row click handler")

	// ErrUnknownTier is returned by ParseTier.
	ErrUnknownTier = errors.New("unknown responsive tier")
)

// ConfigError describes a column descriptor rejected by New.
type ConfigError struct {
	Column string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: column %q: %s", ErrConfig, e.Column, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}
