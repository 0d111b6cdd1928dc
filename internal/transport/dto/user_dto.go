package dto

import (
	"time"

	"jobverse/internal/models"

	"github.com/google/uuid"
)

// RegisterRequest defines the structure for registering a new account.
type RegisterRequest struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=user admin"`
}

// LoginRequest defines the structure for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the structure for updating the caller's own
// profile. All fields are optional; a password change is re-hashed.
type UpdateProfileRequest struct {
	UserID   uuid.UUID `json:"-"`
	Name     *string   `json:"name" validate:"omitempty,max=100"`
	Email    *string   `json:"email" validate:"omitempty,email"`
	Password *string   `json:"password" validate:"omitempty,min=6"`
}

// CreateUserRequest is the storage-level shape for inserting a user.
// Password is raw here; the repository stores only the bcrypt hash.
type CreateUserRequest struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// UpdateUserRequest is the storage-level shape for a partial user update.
type UpdateUserRequest struct {
	ID       uuid.UUID
	Name     *string
	Email    *string
	Password *string // re-hashed by the repository when set
	Role     *models.Role
}

// ListUsersQuery is the storage-level shape for the admin user listing.
type ListUsersQuery struct {
	Search string // matched against name and email
	Limit  int
	Offset int
}

// ListUsersRequest binds the admin user-listing query string.
type ListUsersRequest struct {
	Page   int    `form:"page,default=1" validate:"omitempty,gte=1"`
	Limit  int    `form:"limit,default=10" validate:"omitempty,gte=1,lte=100"`
	Search string `form:"search"`
}

// UpdateUserRoleRequest binds the admin role-change body.
type UpdateUserRoleRequest struct {
	Role models.Role `json:"role" validate:"required,oneof=user admin"`
}

// UserResponse is the public representation of a user (no password hash).
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UserSummary is the populated short form embedded in job and application
// responses.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserListResponse is the paginated admin user listing.
type UserListResponse struct {
	Users       []UserResponse `json:"users"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	Total       int            `json:"total"`
}
