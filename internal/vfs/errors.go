// Package vfs implements the in-memory virtual filesystem backing the
// terminal emulator.
//
// This file contains error types and error handling utilities.
package vfs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a path doesn't exist
	ErrNotFound = errors.New("no such file or directory")

	// ErrNotADirectory indicates a file where a directory was required
	ErrNotADirectory = errors.New("not a directory")

	// ErrIsADirectory indicates a directory where a file was required
	ErrIsADirectory = errors.New("is a directory")

	// ErrAlreadyExists indicates the target path already exists
	ErrAlreadyExists = errors.New("file exists")

	// ErrDirectoryNotEmpty indicates a non-recursive remove of a
	// populated directory
	ErrDirectoryNotEmpty = errors.New("directory not empty")

	// ErrInvalidPath indicates an invalid path or name
	ErrInvalidPath = errors.New("invalid path")
)

// Error wraps filesystem errors with context about the operation and
// affected path.
type Error struct {
	Op   string // Operation that failed (e.g., "lookup", "write")
	Path string // Affected path
	Err  error  // Underlying error
}

// Error implements the error interface, providing a formatted error message
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("operation %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("operation %s on %s failed: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements error unwrapping for the errors.Is/As functions
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given operation, path, and underlying error
func NewError(op string, path string, err error) *Error {
	return &Error{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// Common operation names for consistent logging and error reporting
const (
	OpLookup = "lookup" // Looking up a path
	OpList   = "list"   // Listing directory contents
	OpRead   = "read"   // Reading a file
	OpWrite  = "write"  // Writing a file
	OpMkdir  = "mkdir"  // Creating a directory
	OpRemove = "remove" // Removing a file or directory
	OpTouch  = "touch"  // Creating or timestamping a file
	OpFind   = "find"   // Glob search
	OpSearch = "search" // Text search
)
