// Package auth contiene los DTOs del dominio auth.
package auth

// LoginForm son los campos del formulario POST /login.
type LoginForm struct {
	LoginType string // "login" | "register"
	Username  string
	Password  string
}
