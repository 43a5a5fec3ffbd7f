// Package sessioncookie implementa la cookie de sesión firmada y cifrada.
//
// El payload ({userId}) se firma como JWT HS256 con SESSION_SECRET y,
// si hay SESSION_ENC_KEY configurada, el token se cifra con AES-256-GCM.
// La cookie es la única fuente de verdad de la sesión: no hay session store
// del lado del servidor.
package sessioncookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

const (
	nonceSizeGCM = 12  // AES-GCM nonce recomendado (96 bits)
	sep          = "|" // nonce|ciphertext (ambos en base64)
)

// Options configura el codec y los atributos de la cookie emitida.
type Options struct {
	// Secret firma el payload (requerido).
	Secret []byte
	// EncKey (opcional) habilita cifrado; debe ser de 32 bytes.
	EncKey []byte

	CookieName string
	Domain     string
	SameSite   string // "", "lax", "strict", "none"
	Secure     bool
	TTL        time.Duration
}

// Codec crea, lee y destruye cookies de sesión.
// Es inmutable y seguro para uso concurrente.
type Codec struct {
	opts Options
}

// New valida las opciones y construye el codec.
func New(opts Options) (*Codec, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("sessioncookie: signing secret is required")
	}
	if len(opts.EncKey) != 0 && len(opts.EncKey) != 32 {
		return nil, fmt.Errorf("sessioncookie: enc key must be 32 bytes, got %d", len(opts.EncKey))
	}
	if opts.CookieName == "" {
		opts.CookieName = "itemboard_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * 24 * time.Hour
	}
	return &Codec{opts: opts}, nil
}

// Name devuelve el nombre de cookie configurado.
func (c *Codec) Name() string { return c.opts.CookieName }

// Create emite la cookie de sesión para un userID.
func (c *Codec) Create(userID string) (*http.Cookie, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("sessioncookie: empty userID")
	}

	now := time.Now().UTC()
	claims := jwtv5.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(c.opts.TTL).Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"
	signed, err := tk.SignedString(c.opts.Secret)
	if err != nil {
		return nil, err
	}

	value := signed
	if len(c.opts.EncKey) > 0 {
		value, err = c.encrypt(signed)
		if err != nil {
			return nil, err
		}
	}

	return c.build(value, c.opts.TTL), nil
}

// Read extrae y valida el userID de la cookie del request.
// Cookie ausente, truncada, adulterada o vencida => ("", false), nunca error.
func (c *Codec) Read(r *http.Request) (string, bool) {
	ck, err := r.Cookie(c.opts.CookieName)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return c.ReadValue(ck.Value)
}

// ReadValue valida un valor de cookie crudo. Útil en tests y tooling.
func (c *Codec) ReadValue(value string) (string, bool) {
	if len(c.opts.EncKey) > 0 {
		pt, err := c.decrypt(value)
		if err != nil {
			return "", false
		}
		value = pt
	}

	tok, err := jwtv5.Parse(value, func(t *jwtv5.Token) (any, error) {
		return c.opts.Secret, nil
	}, jwtv5.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return "", false
	}
	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return "", false
	}
	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return "", false
	}
	return sub, true
}

// Deletion devuelve una cookie que expira la sesión en el browser inmediatamente.
// Usa mismo nombre/domain/samesite/secure para que el user-agent la sobreescriba.
func (c *Codec) Deletion() *http.Cookie {
	ck := c.build("", 0)
	ck.Expires = time.Unix(0, 0).UTC() // pasado
	ck.MaxAge = -1                     // eliminar
	return ck
}

func (c *Codec) build(value string, ttl time.Duration) *http.Cookie {
	ck := &http.Cookie{
		Name:     c.opts.CookieName,
		Value:    value,
		Path:     "/",
		Secure:   c.opts.Secure,
		HttpOnly: true,
		SameSite: parseSameSite(c.opts.SameSite),
	}
	if c.opts.Domain != "" {
		ck.Domain = c.opts.Domain
	}
	if ttl > 0 {
		ck.Expires = time.Now().UTC().Add(ttl)
		ck.MaxAge = int(ttl.Seconds())
	}
	return ck
}

// parseSameSite convierte el string de config a http.SameSite.
// Acepta: "", "lax", "strict", "none" (case-insensitive). Default: Lax.
func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// ---- cifrado AES-256-GCM: base64(nonce)|base64(ciphertext) ----

func (c *Codec) encrypt(plain string) (string, error) {
	block, err := aes.NewCipher(c.opts.EncKey)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}
	nonce := make([]byte, nonceSizeGCM)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("nonce random: %w", err)
	}
	ct := aesgcm.Seal(nil, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(nonce) + sep + base64.StdEncoding.EncodeToString(ct), nil
}

func (c *Codec) decrypt(value string) (string, error) {
	parts := strings.Split(value, sep)
	if len(parts) != 2 {
		return "", errors.New("formato inválido: esperado base64(nonce)|base64(ciphertext)")
	}
	nonce, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("decode nonce: %w", err)
	}
	ct, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(nonce) != nonceSizeGCM {
		return "", fmt.Errorf("nonce inválido: esperado %d bytes, obtuvo %d", nonceSizeGCM, len(nonce))
	}
	block, err := aes.NewCipher(c.opts.EncKey)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	pt, err := aesgcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", fmt.Errorf("gcm auth/decrypt: %w", err)
	}
	return string(pt), nil
}
