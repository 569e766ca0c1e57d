package domain

import "time"

// Roles carried as the session artifact's role claim.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is a directory record. The login flow treats this table as a
// read-only system of record: it looks identities up by email and never
// creates or deletes them.
type User struct {
	UserID    string     `json:"id" dynamodbav:"user_id"`
	Email     string     `json:"email" dynamodbav:"email"`
	Name      string     `json:"name" dynamodbav:"name"`
	Role      string     `json:"role" dynamodbav:"role"` // admin | staff
	PhotoKey  string     `json:"photo_key,omitempty" dynamodbav:"photo_key"`
	Enable    bool       `json:"enable" dynamodbav:"enable"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Role  string `json:"role" validate:"required,oneof=admin staff"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	PhotoKey *string `json:"photo_key"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin staff"`
	Enable   *bool   `json:"enable"`
}

// VerifiedIdentity is the result of a successful OTP verification, handed
// to the session exchanger. It is never constructed on any other path.
type VerifiedIdentity struct {
	UserID string
	Email  string
	Name   string
	Role   string
}
