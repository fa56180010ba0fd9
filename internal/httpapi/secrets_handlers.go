package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"medvagas-engine/internal/config"
	"medvagas-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // config.Config
}

type setPasswordRequest struct {
	Password string `json:"password"`
}

// SetPanelPassword stores the panel password in the OS keychain.
func (h SecretsHandler) SetPanelPassword(w http.ResponseWriter, r *http.Request) {
	var req setPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.SetPanelPassword(secrets.PanelKeyringAccount(cfg), req.Password); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring_set", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
