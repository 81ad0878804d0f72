package profile

import (
	"github.com/kridana/kridana-api/internal/platform/timeutil"
)

// Profile represents a user profile response.
type Profile struct {
	ID          string        `json:"id"                  doc:"Unique identifier"      example:"user-123"`
	Role        string        `json:"role"                doc:"Profile role"           example:"trainer" enum:"user,trainer,institute"`
	Firstname   string        `json:"firstname"           doc:"First name"             example:"Uma"`
	Lastname    string        `json:"lastname"            doc:"Last name"              example:"Rao"`
	Email       string        `json:"email"               doc:"Email address"          example:"uma@example.com"`
	PhoneNumber string        `json:"phoneNumber"         doc:"Phone number (E.164)"   example:"+919876543210"`
	City        string        `json:"city,omitempty"      doc:"City"                   example:"Bengaluru"`
	Latitude    *float64      `json:"latitude,omitempty"  doc:"Latitude in degrees"    example:"12.9716"`
	Longitude   *float64      `json:"longitude,omitempty" doc:"Longitude in degrees"   example:"77.5946"`
	Marketing   bool          `json:"marketing"           doc:"Marketing opt-in"       example:"true"`
	Terms       bool          `json:"terms"               doc:"Terms acceptance"       example:"true"`
	CreatedAt   timeutil.Time `json:"createdAt"           doc:"Creation timestamp"     example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt   timeutil.Time `json:"updatedAt"           doc:"Last update timestamp"  example:"2024-01-15T10:30:00.000Z"`
}
