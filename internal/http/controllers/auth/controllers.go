// Package auth contiene los controllers de login/register/logout.
package auth

import (
	svc "github.com/dropDatabas3/itemboard/internal/http/services/auth"
)

// Controllers agrupa todos los controllers del dominio auth.
type Controllers struct {
	Login  *LoginController
	Logout *LogoutController
}

// NewControllers crea el agregador de controllers auth.
func NewControllers(s svc.Service) *Controllers {
	return &Controllers{
		Login:  NewLoginController(s),
		Logout: NewLogoutController(s),
	}
}
