package entity

import "time"

// UserID identifies a registered user.
type UserID string

// Equal reports whether two user ids denote the same user.
// The empty id never equals anything, itself included.
func (id UserID) Equal(other UserID) bool {
	return id != "" && id == other
}

// String returns the raw identifier.
func (id UserID) String() string { return string(id) }

// Role is the coarse permission level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a registered account. PasswordHash holds a bcrypt hash.
type User struct {
	ID           UserID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	ID    UserID
	Name  string
	Email string
	Role  Role
}

// Principal returns the caller identity for u.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
