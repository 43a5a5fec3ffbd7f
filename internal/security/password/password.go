// Package password implementa el hash y la verificación de contraseñas.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost es el factor de costo bcrypt (2^10 rondas).
const Cost = 10

// Hash devuelve un hash bcrypt salteado del plaintext.
// Dos llamadas con el mismo input producen hashes distintos (salt aleatorio).
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify retorna true si plain corresponde al hash.
// Un hash malformado retorna false, nunca error.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
