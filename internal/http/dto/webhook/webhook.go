// Package webhook contiene los DTOs del webhook de cambios del directorio.
package webhook

import "encoding/json"

// ChangeEvent es el payload que manda el directorio en cada insert.
// Solo nos interesa event.data.new; el resto del sobre se ignora.
type ChangeEvent struct {
	Event struct {
		Op   string `json:"op"`
		Data struct {
			Old json.RawMessage `json:"old"`
			New json.RawMessage `json:"new"`
		} `json:"data"`
	} `json:"event"`
}

// NewRow devuelve event.data.new, o nil si no vino en el payload.
func (e *ChangeEvent) NewRow() json.RawMessage {
	n := e.Event.Data.New
	if len(n) == 0 || string(n) == "null" {
		return nil
	}
	return n
}
