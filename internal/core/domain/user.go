package domain

import "time"

// User is a registered portal account. PasswordHash never leaves the
// storage/logic boundary; handlers return Profile projections instead.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the reduced user projection echoed by auth endpoints.
type Profile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// ToProfile strips credential fields for responses.
func (u *User) ToProfile() Profile {
	return Profile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}
}

// SignupRequest is the payload for POST /api/auth/signup.
type SignupRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	FullName        string `json:"fullName" binding:"required"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the signed bearer token plus the user projection.
type AuthResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}
