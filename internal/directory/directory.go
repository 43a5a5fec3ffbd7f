// Package directory implementa el cliente del directorio de usuarios:
// un servicio GraphQL externo (estilo Hasura) accedido por HTTPS.
//
// Hay dos modos de acceso:
//
//   - admin-scoped: header x-hasura-admin-secret, usado para lookups y alta
//     de identidades (GetUserByID, GetUserByUsername, CreateUser, InsertItemLog).
//   - user-scoped: además de admin secret, x-hasura-role=user y
//     x-hasura-user-id=<id>, usado para queries de datos del usuario (UserItems).
//
// La identidad user-scoped viaja como parámetro explícito por llamada; el
// cliente es inmutable y seguro para uso concurrente entre requests.
package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const (
	headerAdminSecret = "x-hasura-admin-secret"
	headerRole        = "x-hasura-role"
	headerUserID      = "x-hasura-user-id"
)

// User es el registro de identidad tal como lo persiste el directorio.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// Item es un ítem del usuario (listado en el profile).
type Item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Client es el cliente GraphQL del directorio.
type Client struct {
	endpoint    string
	adminSecret string
	http        *http.Client
}

// New crea un cliente con timeout acotado por llamada.
func New(endpoint, adminSecret string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:    endpoint,
		adminSecret: adminSecret,
		http:        &http.Client{Timeout: timeout},
	}
}

const queryGetUserByPk = `
query GetUserByPk($id: uuid!) {
  user_by_pk(id: $id) {
    id
    username
    password_hash
  }
}`

// GetUserByID busca un usuario por id.
// Devuelve ErrNotFound si no existe: los callers de resolución de sesión
// tratan ese caso como "sesión inválida".
func (c *Client) GetUserByID(ctx context.Context, id string) (*User, error) {
	var out struct {
		UserByPk *User `json:"user_by_pk"`
	}
	if err := c.do(ctx, "get_user_by_id", adminHeaders(c.adminSecret), queryGetUserByPk, map[string]any{"id": id}, &out); err != nil {
		return nil, err
	}
	if out.UserByPk == nil {
		return nil, ErrNotFound
	}
	return out.UserByPk, nil
}

const queryGetUserByUsername = `
query GetUserByUsername($username: String!) {
  user(where: { username: { _eq: $username } }) {
    id
    username
    password_hash
  }
}`

// GetUserByUsername busca un usuario por username.
// Cero filas NO es un error: devuelve (nil, nil). El flujo de registro
// distingue "no existe, crear" de "debería existir" con este sentinel.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var out struct {
		User []User `json:"user"`
	}
	if err := c.do(ctx, "get_user_by_username", adminHeaders(c.adminSecret), queryGetUserByUsername, map[string]any{"username": username}, &out); err != nil {
		return nil, err
	}
	if len(out.User) == 0 {
		return nil, nil
	}
	return &out.User[0], nil
}

const mutationCreateUser = `
mutation CreateUser($object: user_insert_input!) {
  insert_user_one(object: $object) {
    id
    username
    password_hash
  }
}`

// CreateUser inserta una fila y devuelve el registro creado (con id generado).
// No hay pre-check de unicidad acá: un duplicado surge como error del
// directorio (constraint), nunca como éxito silencioso.
func (c *Client) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	vars := map[string]any{
		"object": map[string]any{
			"username":      username,
			"password_hash": passwordHash,
		},
	}
	var out struct {
		InsertUserOne *User `json:"insert_user_one"`
	}
	if err := c.do(ctx, "create_user", adminHeaders(c.adminSecret), mutationCreateUser, vars, &out); err != nil {
		return nil, err
	}
	if out.InsertUserOne == nil {
		return nil, ErrUnavailable
	}
	return out.InsertUserOne, nil
}

const queryGetItems = `
query GetItems {
  item {
    id
    name
  }
}`

// UserItems lista los ítems visibles para el usuario dado.
// La query viaja user-scoped: el directorio filtra por x-hasura-user-id.
func (c *Client) UserItems(ctx context.Context, userID string) ([]Item, error) {
	h := adminHeaders(c.adminSecret)
	h.Set(headerRole, "user")
	h.Set(headerUserID, userID)

	var out struct {
		Item []Item `json:"item"`
	}
	if err := c.do(ctx, "user_items", h, queryGetItems, nil, &out); err != nil {
		return nil, err
	}
	return out.Item, nil
}

const mutationInsertItemLog = `
mutation InsertItemLog($object: item_insert_log_insert_input!) {
  insert_item_insert_log_one(object: $object) {
    id
  }
}`

// InsertItemLog registra un evento de cambio en la tabla de log del directorio.
// Usado por el webhook relay.
func (c *Client) InsertItemLog(ctx context.Context, itemJSON json.RawMessage) error {
	vars := map[string]any{
		"object": map[string]any{"item_json": itemJSON},
	}
	var out struct {
		InsertItemInsertLogOne *struct {
			ID int `json:"id"`
		} `json:"insert_item_insert_log_one"`
	}
	return c.do(ctx, "insert_item_log", adminHeaders(c.adminSecret), mutationInsertItemLog, vars, &out)
}

func adminHeaders(secret string) http.Header {
	h := http.Header{}
	h.Set(headerAdminSecret, secret)
	return h
}
