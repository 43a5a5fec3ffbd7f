package auth

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/itemboard/internal/directory"
	authDTO "github.com/dropDatabas3/itemboard/internal/http/dto/auth"
	httpErrors "github.com/dropDatabas3/itemboard/internal/http/errors"
	svc "github.com/dropDatabas3/itemboard/internal/http/services/auth"
	"github.com/dropDatabas3/itemboard/internal/observability/logger"
	"github.com/dropDatabas3/itemboard/internal/validation"
	"go.uber.org/zap"
)

// LoginController atiende POST /login: el mismo formulario sirve para
// iniciar sesión o registrarse según el campo loginType.
type LoginController struct {
	Auth svc.Service
}

func NewLoginController(s svc.Service) *LoginController {
	return &LoginController{Auth: s}
}

func (c *LoginController) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("http"),
		logger.Component("auth.controller"),
		logger.Op("login"),
	)

	// Paso 1: parsear el formulario.
	if err := r.ParseForm(); err != nil {
		httpErrors.WriteError(w, httpErrors.ErrInvalidForm.WithCause(err))
		return
	}
	form := authDTO.LoginForm{
		LoginType: r.PostFormValue("loginType"),
		Username:  r.PostFormValue("username"),
		Password:  r.PostFormValue("password"),
	}

	if !validation.LoginType(form.LoginType) {
		httpErrors.WriteError(w, httpErrors.ErrInvalidForm.WithDetail("Login type invalid"))
		return
	}

	// Paso 2: validar campos. Los errores van juntos para que el
	// formulario pueda pintarlos todos de una vez.
	fieldErrs := map[string]string{}
	if msg := validation.Username(form.Username); msg != "" {
		fieldErrs["username"] = msg
	}
	if msg := validation.Password(form.Password); msg != "" {
		fieldErrs["password"] = msg
	}
	if len(fieldErrs) > 0 {
		httpErrors.WriteFieldErrors(w, fieldErrs)
		return
	}

	// Paso 3: delegar en el service según el tipo.
	var (
		user *directory.User
		err  error
	)
	switch form.LoginType {
	case "login":
		user, err = c.Auth.Login(ctx, form.Username, form.Password)
	case "register":
		user, err = c.Auth.Register(ctx, form.Username, form.Password)
	}
	if err != nil {
		c.writeAuthError(w, log, form.LoginType, form.Username, err)
		return
	}

	// Paso 4: emitir la cookie de sesión y redirigir al perfil.
	cookie, err := c.Auth.SessionCookie(user.ID)
	if err != nil {
		log.Error("session cookie mint failed", logger.UserID(user.ID), logger.Err(err))
		httpErrors.WriteError(w, httpErrors.ErrInternalServerError.WithCause(err))
		return
	}
	http.SetCookie(w, cookie)
	log.Info("login succeeded",
		logger.UserID(user.ID),
		logger.Username(user.Username),
		zap.String("login_type", form.LoginType),
	)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (c *LoginController) writeAuthError(w http.ResponseWriter, log *zap.Logger, loginType, username string, err error) {
	switch {
	case errors.Is(err, svc.ErrInvalidCredentials):
		log.Info("login rejected", logger.Username(username))
		httpErrors.WriteError(w, httpErrors.ErrInvalidCredentials)
	case errors.Is(err, svc.ErrUsernameTaken):
		log.Info("register rejected: username taken", logger.Username(username))
		httpErrors.WriteError(w, httpErrors.ErrUsernameTaken.WithDetail(
			"User with username "+username+" already exists"))
	case errors.Is(err, svc.ErrRegistrationFailed):
		log.Error("register failed", logger.Username(username), logger.Err(err))
		httpErrors.WriteError(w, httpErrors.ErrRegistrationFailed.WithCause(err))
	default:
		// Errores de transporte contra el directorio.
		log.Error("auth backend unavailable",
			zap.String("login_type", loginType), logger.Err(err))
		httpErrors.WriteError(w, httpErrors.ErrDirectoryUnavailable.WithCause(err))
	}
}
