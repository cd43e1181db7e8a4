package models

import "github.com/golang-jwt/jwt/v5"

// User represents a registered user in the system.
// The password hash is never serialized.
type User struct {
	Id           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at"`
}

// Credentials carries a username and password for register and login requests.
// Both fields are required.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Claims defines the information stored in the JWT.
type Claims struct {
	UserId int `json:"user_id"`
	jwt.RegisteredClaims
}
