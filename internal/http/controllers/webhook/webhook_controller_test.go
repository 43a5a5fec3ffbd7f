package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	svc "github.com/dropDatabas3/itemboard/internal/http/services/webhook"
)

type fakeItemLogger struct {
	mu   sync.Mutex
	rows []json.RawMessage
	err  error
}

func (f *fakeItemLogger) InsertItemLog(_ context.Context, itemJSON json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, itemJSON)
	return f.err
}

func (f *fakeItemLogger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func newTestController(logger *fakeItemLogger) (*Controller, svc.Service) {
	relay := svc.NewService(svc.Deps{Directory: logger})
	return NewController(relay, "hook-secret"), relay
}

func post(t *testing.T, c *Controller, secret, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/on_item_insert", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if secret != "" {
		r.Header.Set("api-secret", secret)
	}
	w := httptest.NewRecorder()
	c.Handle(w, r)
	return w
}

const validEvent = `{"event":{"op":"INSERT","data":{"old":null,"new":{"id":7,"name":"widget"}}}}`

func TestHandle_BadSecretRejectedWithEmptyBody(t *testing.T) {
	logger := &fakeItemLogger{}
	c, relay := newTestController(logger)

	for _, secret := range []string{"", "wrong", "hook-secret "} {
		w := post(t, c, secret, validEvent)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("secret %q: want 401, got %d", secret, w.Code)
		}
		if w.Body.Len() != 0 {
			t.Fatalf("secret %q: body must be empty, got %q", secret, w.Body.String())
		}
	}
	relay.Drain()
	if logger.count() != 0 {
		t.Fatalf("nothing must be forwarded on auth failure, got %d", logger.count())
	}
}

func TestHandle_MissingNewRowIsClientError(t *testing.T) {
	logger := &fakeItemLogger{}
	c, relay := newTestController(logger)

	for _, body := range []string{
		`{}`,
		`{"event":{"op":"INSERT","data":{"old":null,"new":null}}}`,
		`{"event":{"op":"INSERT","data":{}}}`,
	} {
		w := post(t, c, "hook-secret", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: want 400, got %d", body, w.Code)
		}
	}
	relay.Drain()
	if logger.count() != 0 {
		t.Fatalf("no directory calls expected, got %d", logger.count())
	}
}

func TestHandle_MalformedJSON(t *testing.T) {
	logger := &fakeItemLogger{}
	c, relay := newTestController(logger)

	w := post(t, c, "hook-secret", `{"event":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
	relay.Drain()
	if logger.count() != 0 {
		t.Fatalf("no directory calls expected, got %d", logger.count())
	}
}

func TestHandle_ForwardsNewRow(t *testing.T) {
	logger := &fakeItemLogger{}
	c, relay := newTestController(logger)

	w := post(t, c, "hook-secret", validEvent)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	relay.Drain()
	if logger.count() != 1 {
		t.Fatalf("want 1 forward, got %d", logger.count())
	}

	var row struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(logger.rows[0], &row); err != nil {
		t.Fatalf("forwarded row not JSON: %v", err)
	}
	if row.ID != 7 || row.Name != "widget" {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestHandle_InsertFailureNeverReachesCaller(t *testing.T) {
	logger := &fakeItemLogger{err: context.DeadlineExceeded}
	c, relay := newTestController(logger)

	w := post(t, c, "hook-secret", validEvent)
	if w.Code != http.StatusOK {
		t.Fatalf("insert failure must not change the response, got %d", w.Code)
	}
	relay.Drain()
}
