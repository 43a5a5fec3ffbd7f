// Package cache provee una abstracción mínima de cache con backends
// memory (in-process) y redis (distribuido).
//
// En itemboard el cache nunca es autoritativo: guarda usuarios resueltos
// durante la resolución de sesión para ahorrar roundtrips al directory.
// La verdad vive en la cookie firmada y en el directorio externo.
package cache

import "time"

// Cache define las operaciones mínimas de cache.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}
