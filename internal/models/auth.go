package models

import "github.com/golang-jwt/jwt/v5"

// SignupRequest holds the payload for creating a user or admin account.
type SignupRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest holds credentials for authenticating against either domain.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccountInfo describes the authenticated account in responses.
type AccountInfo struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// AuthResponse returns the issued bearer token and account info.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
	User      AccountInfo `json:"user"`
}

// JWTClaims is the access-token payload: identity, role and expiry.
type JWTClaims struct {
	AccountID string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	jwt.RegisteredClaims
}
