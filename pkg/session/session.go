// Package session owns the authenticated session for API clients: it holds
// the current user and bearer token, persists them to durable local storage,
// restores them on startup, and exposes Login, Register and Logout operations
// against the remote authentication API.
package session

// Role determines which dashboard and permissions apply to a user.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// Specialization is a doctor's medical specialty.
type Specialization struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is the canonical local snapshot of the authenticated principal,
// normalized from the provider-specific field names of the auth API.
type User struct {
	UserID         int64           `json:"userId"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           Role            `json:"role"`
	Birthday       *string         `json:"birthday"`
	Specialization *Specialization `json:"specialization"`
	PhoneNumber    string          `json:"phoneNumber,omitempty"`
}

// Session is the locally-known authentication state. A zero Session means
// logged out. Token and User are always written and cleared together.
type Session struct {
	Token string
	User  *User
}

// IsAuthenticated reports whether the session carries a bearer token.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// RegistrationData is the role-discriminated signup payload. Birthday is
// required for patients, SpecializationID for doctors.
type RegistrationData struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	PhoneNumber      string `json:"phoneNumber"`
	Role             Role   `json:"role"`
	Birthday         string `json:"birthday,omitempty"`
	SpecializationID int64  `json:"specializationId,omitempty"`
}

// Validate checks the role-specific required fields before any network call.
func (d RegistrationData) Validate() error {
	if d.Name == "" || d.Email == "" || d.Password == "" {
		return &Error{Kind: KindValidation, Message: "name, email and password are required"}
	}
	if !d.Role.Valid() {
		return &Error{Kind: KindValidation, Message: "role must be PATIENT or DOCTOR"}
	}
	if d.Role == RolePatient && d.Birthday == "" {
		return &Error{Kind: KindValidation, Message: "birthday is required for patients"}
	}
	if d.Role == RoleDoctor && d.SpecializationID == 0 {
		return &Error{Kind: KindValidation, Message: "specialization is required for doctors"}
	}
	return nil
}
