// Package profile contiene los DTOs del dominio profile.
package profile

import "github.com/dropDatabas3/itemboard/internal/directory"

// PublicUser es la vista del usuario que sale por la API.
// Nunca incluye password_hash.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Response es el contrato de datos de GET /profile.
type Response struct {
	User  PublicUser       `json:"user"`
	Items []directory.Item `json:"items"`
}

// FromUser arma la vista pública de un registro del directorio.
func FromUser(u *directory.User) PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}
