package dto

import "time"

// SignUpRequest entrada para registro de usuario.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SignInRequest entrada para login (usuario o vendedor).
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest entrada para cambio de contraseña.
// El cambio incrementa token_version: revoca todos los refresh tokens vigentes.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateUserRequest administración de una cuenta (solo admin): nombre, roles
// y activación. Desactivar revoca los refresh tokens vigentes.
type UpdateUserRequest struct {
	Name   *string  `json:"name"`
	Roles  []string `json:"roles"`
	Active *bool    `json:"active"`
}

// UserResponse salida de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Roles       []string   `json:"roles"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// AuthResponse salida de login/refresh. Los tokens también viajan en cookies
// (el access legible por el cliente, el refresh HttpOnly).
type AuthResponse struct {
	User         *UserResponse `json:"user,omitempty"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken,omitempty"`
}
