package httpapi

import (
	"errors"
	"net/http"
	"os"

	"medvagas-engine/internal/snapshot"
)

type SnapshotHandler struct {
	Path string
}

// Get serves the latest offline snapshot, if one has been built.
func (h SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := snapshot.Read(h.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			WriteError(w, r, http.StatusNotFound, "no_snapshot", "no snapshot has been built yet")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "snapshot_read", err.Error())
		return
	}
	writeJSON(w, snap)
}
