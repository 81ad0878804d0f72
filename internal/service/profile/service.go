package profile

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
	ErrInvalidRole   = errors.New("invalid profile role")
)

// Profile roles. Trainers and institutes appear in the public directory;
// plain users do not.
const (
	RoleUser      = "user"
	RoleTrainer   = "trainer"
	RoleInstitute = "institute"
)

// Profile represents stored profile data. Latitude and Longitude are
// optional; profiles without both are left out of distance-based ranking.
type Profile struct {
	ID          string
	Role        string
	Firstname   string
	Lastname    string
	Email       string
	PhoneNumber string
	City        string
	Latitude    *float64
	Longitude   *float64
	Marketing   bool
	Terms       bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateParams for creating a profile.
type CreateParams struct {
	Role        string
	Firstname   string
	Lastname    string
	Email       string
	PhoneNumber string
	City        string
	Latitude    *float64
	Longitude   *float64
	Marketing   bool
	Terms       bool
}

// UpdateParams for updating a profile. Role is fixed at signup and cannot
// be changed here.
type UpdateParams struct {
	Firstname   *string
	Lastname    *string
	Email       *string
	PhoneNumber *string
	City        *string
	Latitude    *float64
	Longitude   *float64
	Marketing   *bool
}

// ValidRole reports whether role is one of the known profile roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleTrainer, RoleInstitute:
		return true
	}
	return false
}

// Service defines profile operations.
//
// Implementations must normalize input data:
//   - Email: lowercase and trim whitespace
//   - PhoneNumber: trim whitespace
type Service interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Profile, error)
	Get(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error)
	Delete(ctx context.Context, userID string) error
}
