// Package model defines the records stored in the remote spreadsheet
// collections (Users, Tasks) and the task lifecycle rules that operate
// on them. Records are encoded as flat JSON objects so they round-trip
// through the endpoint's generic READ/CREATE/UPDATE envelope unchanged.
package model

// UserRole distinguishes the single bootstrap admin from ordinary members.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleMember UserRole = "USER"
)

// UserStatus is the registration approval state of a user.
type UserStatus string

const (
	// UserPending means the user registered and is waiting for admin approval.
	UserPending UserStatus = "PENDING"
	// UserActive means the user may log in and be assigned tasks.
	UserActive UserStatus = "ACTIVE"
	// UserRejected means an admin declined the registration.
	UserRejected UserStatus = "REJECTED"
)

// User is a record in the Users collection.
//
// The first user ever registered into an empty collection is created with
// RoleAdmin/UserActive; everyone after that starts as RoleMember/UserPending
// and is only mutated by an admin moving Status to active or rejected.
// Users are never deleted.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	Secret    string     `json:"passwordHash"` // bcrypt hash of the login secret
	CreatedAt int64      `json:"createdAt"`    // epoch millis
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanLogin reports whether the user is allowed past the auth gate.
// Admins always pass; everyone else must be active.
func (u *User) CanLogin() bool {
	return u.Status == UserActive || u.Role == RoleAdmin
}
