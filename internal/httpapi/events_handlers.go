package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"medvagas-engine/internal/events"
)

type EventsHandler struct {
	Hub *events.Hub
}

// ServeSSE is the endpoint the panel subscribes to for search progress
// and snapshot notifications.
func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	// Initial ping so the client knows the stream is live.
	fmt.Fprintf(w, "data: %s\n\n", events.MakeEvent(RequestIDFrom(r.Context()), events.TypePing, 1, nil))
	flusher.Flush()

	ticker := time.NewTicker(25 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprintf(w, "data: %s\n\n", events.MakeEvent("", events.TypePing, 1, nil))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
