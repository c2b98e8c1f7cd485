package dtos

import (
	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/models"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=120"`
	Password string `json:"password" validate:"required,max=200"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

/*
CreateUserRequest provisions an account. Owners must be mapped to an
existing property; admins carry no property mapping.
*/
type CreateUserRequest struct {
	Username   string     `json:"username" validate:"required,min=3,max=120"`
	Password   string     `json:"password" validate:"required,min=6,max=200"`
	FullName   string     `json:"full_name" validate:"max=200"`
	Role       string     `json:"role" validate:"required,oneof=admin owner"`
	Email      string     `json:"email" validate:"omitempty,email"`
	Phone      string     `json:"phone" validate:"max=30"`
	PropertyID *uuid.UUID `json:"property_id"`
}

// UpdateUserRequest edits an account. Username is immutable; a blank
// password keeps the existing hash.
type UpdateUserRequest struct {
	Password   string     `json:"password" validate:"omitempty,min=6,max=200"`
	FullName   string     `json:"full_name" validate:"max=200"`
	Role       string     `json:"role" validate:"required,oneof=admin owner"`
	Email      string     `json:"email" validate:"omitempty,email"`
	Phone      string     `json:"phone" validate:"max=30"`
	PropertyID *uuid.UUID `json:"property_id"`
}
