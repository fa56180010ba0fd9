package events

import (
	"encoding/json"
	"time"
)

// Event types the engine publishes. The most recent search_progress always
// reflects current progress; no ordering is promised relative to timers.
const (
	TypePing           = "ping"
	TypeSearchProgress = "search_progress"
	TypeSearchDone     = "search_done"
	TypeSearchError    = "search_error"
	TypeSnapshotDone   = "snapshot_done"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}

// Progress publishes a human-readable progress line for the in-flight
// search.
func (h *Hub) Progress(msg string) {
	h.Publish(MakeEvent("", TypeSearchProgress, 1, map[string]string{"message": msg}))
}
