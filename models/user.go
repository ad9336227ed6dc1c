package models

import "time"

// Role is the account role assigned by the server. The client never derives
// permissions from it; it is shown to the user and sent on registration.
type Role string

const (
	RoleDoctor    Role = "medico"
	RoleAssistant Role = "asistente"
	RoleAdmin     Role = "admin"
)

// User is the authenticated practitioner profile returned by GET /auth/me.
// It is persisted on the device as JSON under the "user" key, so every field
// that must survive a restart needs a json tag.
type User struct {
	// ID is the server-assigned identifier of the account.
	ID int64 `json:"id"`

	// Email is the login identifier.
	Email string `json:"email"`

	// Name and LastName make up the display name.
	Name     string `json:"nombre"`
	LastName string `json:"apellidos,omitempty"`

	// Role is the account role ("medico" unless the server says otherwise).
	Role Role `json:"rol,omitempty"`

	// Phone and Specialty are optional contact fields editable from the
	// profile screen.
	Phone     *string `json:"telefono,omitempty"`
	Specialty *string `json:"especialidad,omitempty"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// FullName joins the name and last name.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	return u.Name + " " + u.LastName
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of POST /auth/register.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// Credentials returns the login body matching this registration.
func (r Registration) Credentials() Credentials {
	return Credentials{Email: r.Email, Password: r.Password}
}

// ProfileUpdate is a partial update sent to PUT /auth/me.
// Only non-nil fields are serialised.
type ProfileUpdate struct {
	Name      *string `json:"nombre,omitempty"`
	LastName  *string `json:"apellidos,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"telefono,omitempty"`
	Specialty *string `json:"especialidad,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.LastName == nil && p.Email == nil && p.Phone == nil && p.Specialty == nil
}

// PasswordChange is the body of PUT /auth/change-password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
