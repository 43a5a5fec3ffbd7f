package auth

import (
	"net/http"

	svc "github.com/dropDatabas3/itemboard/internal/http/services/auth"
)

// LogoutController atiende POST /logout. Es idempotente: destruir una
// sesión inexistente también redirige a /login.
type LogoutController struct {
	Auth svc.Service
}

func NewLogoutController(s svc.Service) *LogoutController {
	return &LogoutController{Auth: s}
}

func (c *LogoutController) Handle(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, c.Auth.DeletionCookie())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
