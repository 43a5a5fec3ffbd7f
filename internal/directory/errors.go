package directory

import "errors"

var (
	// ErrNotFound: el registro pedido por id no existe.
	ErrNotFound = errors.New("directory: user not found")

	// ErrUnavailable: fallo de transporte o del servicio (incluye timeout).
	ErrUnavailable = errors.New("directory: unavailable")
)
