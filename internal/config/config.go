package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr         string `yaml:"addr"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
	} `yaml:"server"`

	Session struct {
		CookieName string `yaml:"cookie_name"`
		Domain     string `yaml:"domain"`
		SameSite   string `yaml:"samesite"`
		Secure     bool   `yaml:"secure"`
		TTL        string `yaml:"ttl"`
	} `yaml:"session"`

	Directory struct {
		// Timeout por llamada al servicio GraphQL externo.
		Timeout string `yaml:"timeout"`
		// UserCacheTTL: TTL del cache de usuarios resueltos por sesión.
		// "0" deshabilita el cache (cada request va al directory).
		UserCacheTTL string `yaml:"user_cache_ttl"`
	} `yaml:"directory"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Rate struct {
		Enabled bool `yaml:"enabled"`
		Login   struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"login"`
	} `yaml:"rate"`

	// Secrets: solo por entorno, nunca por YAML.
	GraphQL struct {
		Endpoint    string `yaml:"-"` // GRAPHQL_ENDPOINT
		AdminSecret string `yaml:"-"` // GRAPHQL_ADMIN_SECRET
	} `yaml:"-"`

	// SessionSecret firma el payload de la sesión (SESSION_SECRET).
	SessionSecret []byte `yaml:"-"`
	// SessionEncKey (opcional) habilita cifrado AES-256-GCM de la cookie.
	// SESSION_ENC_KEY en base64 de 32 bytes.
	SessionEncKey []byte `yaml:"-"`
	// APISecret protege el endpoint de webhook (API_SECRET).
	APISecret string `yaml:"-"`
}

// Load lee el YAML (si existe), aplica defaults, overrides de entorno y
// valida los secrets requeridos. Un error acá es fatal en el arranque.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// sin archivo: defaults + entorno alcanzan
		default:
			return nil, err
		}
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "itemboard_session"
	}
	if c.Session.SameSite == "" {
		c.Session.SameSite = "Lax"
	}
	if c.Session.TTL == "" {
		c.Session.TTL = "720h" // 30d
	}
	if c.Directory.Timeout == "" {
		c.Directory.Timeout = "10s"
	}
	if c.Directory.UserCacheTTL == "" {
		c.Directory.UserCacheTTL = "30s"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "itemboard:"
	}
	if c.Rate.Login.Limit == 0 {
		c.Rate.Login.Limit = 10
	}
	if c.Rate.Login.Window == "" {
		c.Rate.Login.Window = "1m"
	}

	c.applyEnvOverrides()

	// validate string durations
	for _, d := range []string{
		c.Server.ReadTimeout, c.Server.WriteTimeout,
		c.Session.TTL, c.Directory.Timeout, c.Directory.UserCacheTTL,
		c.Cache.Memory.DefaultTTL, c.Rate.Login.Window,
	} {
		if _, err := time.ParseDuration(d); err != nil {
			return nil, fmt.Errorf("config: invalid duration %q: %w", d, err)
		}
	}

	if err := c.loadSecrets(); err != nil {
		return nil, err
	}
	return &c, nil
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("SESSION_COOKIE_NAME"); ok {
		c.Session.CookieName = v
	}
	if v, ok := getEnvBool("SESSION_SECURE"); ok {
		c.Session.Secure = v
	}
	if v, ok := getEnvStr("SESSION_TTL"); ok {
		c.Session.TTL = v
	}
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("CACHE_REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	// En prod la cookie va siempre Secure.
	if c.App.Env == "prod" {
		c.Session.Secure = true
	}
}

// loadSecrets carga los secrets requeridos del entorno.
// La ausencia de cualquiera de los requeridos impide el arranque.
func (c *Config) loadSecrets() error {
	var missing []string

	c.GraphQL.Endpoint = strings.TrimSpace(os.Getenv("GRAPHQL_ENDPOINT"))
	if c.GraphQL.Endpoint == "" {
		missing = append(missing, "GRAPHQL_ENDPOINT")
	}
	c.GraphQL.AdminSecret = strings.TrimSpace(os.Getenv("GRAPHQL_ADMIN_SECRET"))
	if c.GraphQL.AdminSecret == "" {
		missing = append(missing, "GRAPHQL_ADMIN_SECRET")
	}
	if s := strings.TrimSpace(os.Getenv("SESSION_SECRET")); s != "" {
		c.SessionSecret = []byte(s)
	} else {
		missing = append(missing, "SESSION_SECRET")
	}
	c.APISecret = strings.TrimSpace(os.Getenv("API_SECRET"))
	if c.APISecret == "" {
		missing = append(missing, "API_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("config: missing required env: %s", strings.Join(missing, ", "))
	}

	// SESSION_ENC_KEY es opcional; si está, debe ser base64 de 32 bytes.
	if s := strings.TrimSpace(os.Getenv("SESSION_ENC_KEY")); s != "" {
		k, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("config: decode SESSION_ENC_KEY: %w", err)
		}
		if len(k) != 32 {
			return fmt.Errorf("config: SESSION_ENC_KEY must decode to 32 bytes, got %d", len(k))
		}
		c.SessionEncKey = k
	}
	return nil
}

// ---- Duration getters (ya validados en Load) ----

func (c *Config) SessionTTL() time.Duration      { return mustDur(c.Session.TTL) }
func (c *Config) DirectoryTimeout() time.Duration { return mustDur(c.Directory.Timeout) }
func (c *Config) UserCacheTTL() time.Duration    { return mustDur(c.Directory.UserCacheTTL) }
func (c *Config) CacheDefaultTTL() time.Duration { return mustDur(c.Cache.Memory.DefaultTTL) }
func (c *Config) LoginRateWindow() time.Duration { return mustDur(c.Rate.Login.Window) }
func (c *Config) ServerReadTimeout() time.Duration {
	return mustDur(c.Server.ReadTimeout)
}
func (c *Config) ServerWriteTimeout() time.Duration {
	return mustDur(c.Server.WriteTimeout)
}

func mustDur(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
