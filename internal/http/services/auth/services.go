// Package auth contiene los services del dominio auth: register, login,
// resolución de sesión y logout.
//
// El estado es por-request: Anonymous o Authenticated(user), re-derivado en
// cada request desde la cookie firmada. No hay session store del lado del
// servidor.
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dropDatabas3/itemboard/internal/cache"
	"github.com/dropDatabas3/itemboard/internal/directory"
	"github.com/dropDatabas3/itemboard/internal/security/sessioncookie"
)

// Errores de auth. Login devuelve exactamente el mismo error para
// "usuario inexistente" y "password incorrecta" (sin enumeración de usernames).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrRegistrationFailed = errors.New("registration failed")
)

// Directory es la vista del directorio de usuarios que necesita el service.
type Directory interface {
	GetUserByID(ctx context.Context, id string) (*directory.User, error)
	GetUserByUsername(ctx context.Context, username string) (*directory.User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (*directory.User, error)
}

// Resolution es el resultado de resolver la sesión de un request.
type Resolution struct {
	// User es el usuario autenticado, o nil si el request es anónimo.
	User *directory.User
	// Stale indica cookie válida apuntando a un usuario que ya no existe.
	// El caller debe emitir la deletion cookie (sesión auto-saneada).
	Stale bool
}

// Authenticated indica si la resolución terminó en estado Authenticated.
func (r Resolution) Authenticated() bool { return r.User != nil }

// Service agrupa las operaciones de auth.
type Service interface {
	// Register crea el usuario y devuelve el registro con id generado.
	// ErrUsernameTaken si el username existe; ErrRegistrationFailed si el
	// alta en el directorio falla.
	Register(ctx context.Context, username, password string) (*directory.User, error)

	// Login valida credenciales contra el directorio.
	Login(ctx context.Context, username, password string) (*directory.User, error)

	// ResolveSession deriva el estado de sesión desde la cookie del request.
	// Nunca devuelve error: cookie inválida o usuario inexistente degradan
	// a Anonymous.
	ResolveSession(ctx context.Context, r *http.Request) Resolution

	// SessionCookie emite la cookie de sesión para un usuario.
	SessionCookie(userID string) (*http.Cookie, error)

	// DeletionCookie emite la cookie que destruye la sesión en el browser.
	DeletionCookie() *http.Cookie
}

// Deps contiene las dependencias para crear el service auth.
type Deps struct {
	Directory Directory
	Cookies   *sessioncookie.Codec

	// Cache (opcional) guarda usuarios resueltos por sesión para ahorrar
	// roundtrips al directory. Nunca es autoritativo.
	Cache        cache.Cache
	UserCacheTTL time.Duration
}

type service struct {
	deps Deps
}

// NewService crea el service de auth.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

func (s *service) SessionCookie(userID string) (*http.Cookie, error) {
	return s.deps.Cookies.Create(userID)
}

func (s *service) DeletionCookie() *http.Cookie {
	return s.deps.Cookies.Deletion()
}
