// Package util contiene helpers chicos sin dependencias.
package util

import "strconv"

// MaskSecret devuelve una versión segura para logs de un secreto:
// primeros 2 caracteres y el largo, nunca el valor completo.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "***"
	}
	return s[:2] + "…(" + strconv.Itoa(len(s)) + ")"
}
