package domain

import "strings"

// Role is the platform role carried by a verified identity.
type Role string

const (
	RoleTourist Role = "tourist"
	RoleGuide   Role = "Tour Guide"
)

// ParseRole maps a stored user_type value to a Role. Unknown values are tourists.
func ParseRole(userType string) Role {
	switch strings.ToLower(strings.TrimSpace(userType)) {
	case "tour guide", "tour_guide", "guide":
		return RoleGuide
	default:
		return RoleTourist
	}
}

// Identity is the verified caller of a request.
type Identity struct {
	ID   int64
	Role Role
}

// IsGuide reports whether the caller acts as a tour guide.
func (i *Identity) IsGuide() bool {
	return i != nil && i.Role == RoleGuide
}

// User is a platform account as seen by the tracking core.
type User struct {
	ID   int64
	Name string
	Role Role
}
