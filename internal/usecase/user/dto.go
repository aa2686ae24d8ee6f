package user

import "io"

// AvatarUpload carries an uploaded avatar file into the create operation.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// CreateUserRequest represents the request payload for creating a new user.
// Name and email are required; no format validation is applied to either.
type CreateUserRequest struct {
	Name   string `validate:"required"`
	Email  string `validate:"required"`
	Avatar *AvatarUpload
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	ID        string
	AvatarURL string
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}
