// Package repository defines error types that are reused across the
// document store. These sentinel values allow higher layers such as
// services to distinguish between different failure scenarios. Absent
// records are reported with ErrUserNotFound / ErrTaskNotFound, while
// ErrPersist signals that the backing file could not be written and the
// in-memory change was rolled back.
package repository

import "errors"

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrTaskNotFound is returned when a task does not exist or is owned by
// someone else. Both causes share one error so ownership never leaks.
var ErrTaskNotFound = errors.New("task not found")

// ErrEmailExists is returned by CreateUser when the email is taken.
var ErrEmailExists = errors.New("email already exists")

// ErrPersist wraps any failure to write the backing file.
var ErrPersist = errors.New("persist store")

// ErrClosed is returned by mutations after Close.
var ErrClosed = errors.New("store closed")
