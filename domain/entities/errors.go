package entities

import (
	"errors"
	"fmt"
)

var (
	ErrRoleNotInMenu         = errors.New("role is not part of this menu")
	ErrRoleBlocked           = errors.New("role is blocked by a role the member holds")
	ErrMenuNotFound          = errors.New("role menu not found")
	ErrTooManyRoles          = errors.New("too many roles for one menu")
	ErrNoRoles               = errors.New("role menu needs at least one role")
	ErrSelfBlock             = errors.New("a role cannot block itself")
	ErrDocumentationNotFound = errors.New("documentation not found")
	ErrInvalidTitle          = errors.New("invalid documentation title")
	ErrEmptyContent          = errors.New("documentation content cannot be empty")
	ErrRateLimited           = errors.New("too many help requests")
)

// RoleBlockedError names the held role that prevents selecting RoleID.
// It matches ErrRoleBlocked with errors.Is.
type RoleBlockedError struct {
	RoleID         int64
	BlockingRoleID int64
}

func (e *RoleBlockedError) Error() string {
	return fmt.Sprintf("role %d is blocked by held role %d", e.RoleID, e.BlockingRoleID)
}

func (e *RoleBlockedError) Unwrap() error {
	return ErrRoleBlocked
}
