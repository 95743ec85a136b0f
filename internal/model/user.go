package model

import "time"

// Role values stored in the users.role column.  Only these two values
// are accepted when an admin creates an account.
const (
    RoleAdmin     = "admin"
    RoleDietitian = "dietitian"
)

// User represents a staff account as stored in the `users` table.
// Each field corresponds to a column in the database.  The json tags
// are omitted here because these structs are primarily used internally
// by the repository layer; handlers define separate response types
// with appropriate JSON tags so that PasswordHash is never serialized.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  Role         – name of the role ("admin" or "dietitian").
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Username     string    // users.username
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    CreatedAt    time.Time // users.created_at
}

// ValidRole reports whether r is one of the two accepted role values.
func ValidRole(r string) bool {
    return r == RoleAdmin || r == RoleDietitian
}
