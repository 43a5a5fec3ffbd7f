// Package profile contiene el controller de GET /profile.
package profile

import (
	"context"
	"net/http"

	"github.com/dropDatabas3/itemboard/internal/directory"
	httpErrors "github.com/dropDatabas3/itemboard/internal/http/errors"
	profileDTO "github.com/dropDatabas3/itemboard/internal/http/dto/profile"
	"github.com/dropDatabas3/itemboard/internal/http/helpers"
	svc "github.com/dropDatabas3/itemboard/internal/http/services/auth"
	"github.com/dropDatabas3/itemboard/internal/observability/logger"
)

// ItemsDirectory es la vista del directorio que necesita el perfil: el
// listado de items se pide con la identidad del usuario, no como admin.
type ItemsDirectory interface {
	UserItems(ctx context.Context, userID string) ([]directory.Item, error)
}

// Controller atiende GET /profile. La ruta es privada: requests anónimos
// terminan en un redirect a /login en vez de un 401.
type Controller struct {
	Auth  svc.Service
	Items ItemsDirectory
}

func NewController(auth svc.Service, items ItemsDirectory) *Controller {
	return &Controller{Auth: auth, Items: items}
}

func (c *Controller) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(
		logger.Layer("http"),
		logger.Component("profile.controller"),
		logger.Op("show"),
	)

	// Paso 1: resolver la sesión desde la cookie.
	res := c.Auth.ResolveSession(ctx, r)
	if res.Stale {
		// Cookie válida pero el usuario ya no existe: sanear la sesión.
		log.Info("stale session, clearing cookie")
		http.SetCookie(w, c.Auth.DeletionCookie())
	}
	if !res.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	// Paso 2: pedir los items con la identidad del usuario.
	items, err := c.Items.UserItems(ctx, res.User.ID)
	if err != nil {
		log.Error("items lookup failed", logger.UserID(res.User.ID), logger.Err(err))
		httpErrors.WriteError(w, httpErrors.ErrDirectoryUnavailable.WithCause(err))
		return
	}
	if items == nil {
		items = []directory.Item{}
	}

	helpers.WriteJSON(w, http.StatusOK, profileDTO.Response{
		User:  profileDTO.FromUser(res.User),
		Items: items,
	})
}
