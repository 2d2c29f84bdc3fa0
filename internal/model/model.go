// Package model defines the core domain types shared by the event catalog
// store and its clients.
package model

// Role is the access level attached to a user credential record.
type Role string

const (
	// RoleNone is the role of a session that is not authenticated.
	RoleNone    Role = ""
	RoleAdmin   Role = "admin"
	RoleVisitor Role = "visitor"
)

// ParseRole maps a stored role string to a Role. Unknown values map to RoleNone.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleVisitor:
		return RoleVisitor
	default:
		return RoleNone
	}
}

// Label returns the human readable badge for the role.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleVisitor:
		return "Visitor"
	default:
		return ""
	}
}

// DefaultEventImage is attached to events created from the catalog form.
const DefaultEventImage = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRUGUnK6u1qokfESNX_OaME4vM0fCnVd0v5awXT9i4GsWetdwU-uxP6ClenDt9tcyk-Ocg&usqp=CAU"

// Event represents a catalog entry that visitors can enroll in.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Capacity    int    `json:"capacity" validate:"gte=0,lte=100000"`
	Date        string `json:"date"`
	Img         string `json:"img" validate:"omitempty,url"`
}

// Enrollment is a denormalized copy of an event tagged with the display name
// of the user that enrolled.
type Enrollment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	Date        string `json:"date"`
	Img         string `json:"img"`
	User        string `json:"user" validate:"required"`
}

// NewEnrollment copies the event fields into an enrollment owned by user.
func NewEnrollment(id string, e Event, user string) Enrollment {
	return Enrollment{
		ID:          id,
		Name:        e.Name,
		Description: e.Description,
		Capacity:    e.Capacity,
		Date:        e.Date,
		Img:         e.Img,
		User:        user,
	}
}

// User is a credential record. Passwords are stored and compared in plaintext.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"oneof=admin visitor"`
	Name     string `json:"name" validate:"required"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
