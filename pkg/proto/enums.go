package proto

import (
	"encoding"
	"errors"
)

// Plan is the subscription plan of an organization.
type Plan int

const (
	// BasicPlan is the entry level plan.
	BasicPlan Plan = iota
	// ProPlan is the professional plan.
	ProPlan
	// EnterprisePlan is the enterprise plan.
	EnterprisePlan
)

// Plans lists every known plan.
var Plans = []Plan{BasicPlan, ProPlan, EnterprisePlan}

// String returns the string representation of the plan.
func (p Plan) String() string {
	switch p {
	case BasicPlan:
		return "basic"
	case ProPlan:
		return "pro"
	case EnterprisePlan:
		return "enterprise"
	default:
		return "unknown"
	}
}

// ParsePlan parses a plan string.
func ParsePlan(s string) (Plan, error) {
	switch s {
	case "basic":
		return BasicPlan, nil
	case "pro":
		return ProPlan, nil
	case "enterprise":
		return EnterprisePlan, nil
	default:
		return Plan(-1), ErrInvalidPlan
	}
}

// Role is the role of a user within an organization.
type Role int

const (
	// StandardRole is a regular member.
	StandardRole Role = iota
	// AdminRole is an organization administrator.
	AdminRole
)

// Roles lists every known role.
var Roles = []Role{AdminRole, StandardRole}

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case StandardRole:
		return "standard"
	case AdminRole:
		return "admin"
	default:
		return "unknown"
	}
}

// ParseRole parses a role string.
func ParseRole(s string) (Role, error) {
	switch s {
	case "standard":
		return StandardRole, nil
	case "admin":
		return AdminRole, nil
	default:
		return Role(-1), ErrInvalidRole
	}
}

// Status is the account status of a user.
type Status int

const (
	// ActiveStatus is an active account.
	ActiveStatus Status = iota
	// InactiveStatus is a disabled account.
	InactiveStatus
	// PendingStatus is an account whose invitation has not been accepted yet.
	PendingStatus
)

// Statuses lists every known status.
var Statuses = []Status{ActiveStatus, InactiveStatus, PendingStatus}

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case ActiveStatus:
		return "active"
	case InactiveStatus:
		return "inactive"
	case PendingStatus:
		return "pending"
	default:
		return "unknown"
	}
}

// ParseStatus parses a status string.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "active":
		return ActiveStatus, nil
	case "inactive":
		return InactiveStatus, nil
	case "pending":
		return PendingStatus, nil
	default:
		return Status(-1), ErrInvalidStatus
	}
}

var (
	// ErrInvalidPlan is returned when an invalid plan is provided.
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrInvalidRole is returned when an invalid role is provided.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")
)

var (
	_ encoding.TextMarshaler   = Plan(0)
	_ encoding.TextUnmarshaler = (*Plan)(nil)
	_ encoding.TextMarshaler   = Role(0)
	_ encoding.TextUnmarshaler = (*Role)(nil)
	_ encoding.TextMarshaler   = Status(0)
	_ encoding.TextUnmarshaler = (*Status)(nil)
)

// MarshalText implements encoding.TextMarshaler.
func (p Plan) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Plan) UnmarshalText(text []byte) error {
	v, err := ParsePlan(string(text))
	if err != nil {
		return err
	}

	*p = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	v, err := ParseRole(string(text))
	if err != nil {
		return err
	}

	*r = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}

	*s = v
	return nil
}
