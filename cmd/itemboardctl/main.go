// itemboardctl: utilidades operativas para itemboard (hash de passwords,
// mint/decode de cookies de sesión, probe del webhook).
package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/itemboard/internal/security/password"
	"github.com/dropDatabas3/itemboard/internal/security/sessioncookie"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "itemboardctl",
		Short: "Utilidades operativas para itemboard",
	}
	root.AddCommand(hashPasswordCmd(), sessionCmd(), webhookProbeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Genera el hash bcrypt de una password (para seeds)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := password.Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Println(h)
			return nil
		},
	}
}

// codecFromEnv arma el codec con los mismos secrets que usa el servidor.
func codecFromEnv() (*sessioncookie.Codec, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("falta SESSION_SECRET en el entorno")
	}
	opts := sessioncookie.Options{Secret: []byte(secret)}
	if s := os.Getenv("SESSION_ENC_KEY"); s != "" {
		k, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("decode SESSION_ENC_KEY: %w", err)
		}
		opts.EncKey = k
	}
	return sessioncookie.New(opts)
}

func sessionCmd() *cobra.Command {
	session := &cobra.Command{
		Use:   "session",
		Short: "Mint y decode de cookies de sesión",
	}

	mint := &cobra.Command{
		Use:   "mint <user-id>",
		Short: "Emite el valor de cookie para un usuario (debug)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := codecFromEnv()
			if err != nil {
				return err
			}
			cookie, err := codec.Create(args[0])
			if err != nil {
				return err
			}
			fmt.Println(cookie.Value)
			return nil
		},
	}

	decode := &cobra.Command{
		Use:   "decode <cookie-value>",
		Short: "Extrae el user id de un valor de cookie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := codecFromEnv()
			if err != nil {
				return err
			}
			userID, ok := codec.ReadValue(args[0])
			if !ok {
				return fmt.Errorf("cookie inválida o expirada")
			}
			fmt.Println(userID)
			return nil
		},
	}

	session.AddCommand(mint, decode)
	return session
}

func webhookProbeCmd() *cobra.Command {
	var (
		baseURL string
		secret  string
	)
	cmd := &cobra.Command{
		Use:   "webhook-probe",
		Short: "Manda un evento de prueba a POST /api/on_item_insert",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("API_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("falta el secreto (flag --api-secret o env API_SECRET)")
			}
			payload := []byte(`{"event":{"op":"INSERT","data":{"old":null,"new":{"id":0,"name":"probe"}}}}`)
			req, err := http.NewRequest(http.MethodPost, baseURL+"/api/on_item_insert", bytes.NewReader(payload))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("api-secret", secret)

			client := &http.Client{Timeout: 10 * time.Second}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			fmt.Printf("status=%d\n", resp.StatusCode)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "URL base del servidor")
	cmd.Flags().StringVar(&secret, "api-secret", "", "Secreto del webhook (env API_SECRET)")
	return cmd
}
