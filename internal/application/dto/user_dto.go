package dto

import "time"

// SignupRequest entrada del formulario de registro. ConfirmPassword es opcional;
// si viene, debe coincidir con Password.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Department      string `json:"department,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// LoginRequest entrada del formulario de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

// SessionResponse sesión activa devuelta por login/signup/restore.
type SessionResponse struct {
	SessionID string       `json:"sessionId"`
	User      UserResponse `json:"user"`
	StartedAt time.Time    `json:"startedAt"`
}
