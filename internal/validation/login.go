package validation

// Login form rules:
// - username: at least 3 characters as submitted (case preserved).
// - password: at least 6 characters.
// - loginType: "login" or "register", nothing else.
//
// The messages are user-facing field errors; they mirror what the login form
// renders next to each input.

const (
	MinUsernameLen = 3
	MinPasswordLen = 6
)

// Username devuelve el mensaje de error para el campo, o "" si es válido.
func Username(username string) string {
	if len(username) < MinUsernameLen {
		return "Usernames must be at least 3 characters long"
	}
	return ""
}

// Password devuelve el mensaje de error para el campo, o "" si es válido.
func Password(password string) string {
	if len(password) < MinPasswordLen {
		return "Passwords must be at least 6 characters long"
	}
	return ""
}

// LoginType valida el discriminador del formulario.
func LoginType(t string) bool {
	return t == "login" || t == "register"
}
