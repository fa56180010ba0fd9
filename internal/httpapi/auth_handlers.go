package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"

	"medvagas-engine/internal/config"
	"medvagas-engine/internal/secrets"
)

// AuthHandler is the panel's login gate: a plain username+password check
// against the keychain. It exists to keep casual eyes off a local panel,
// nothing more.
type AuthHandler struct {
	CfgVal *atomic.Value // config.Config
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	user := strings.TrimSpace(cfg.Panel.Username)
	if user == "" {
		user = "admin"
	}

	stored, err := secrets.GetPanelPassword(secrets.PanelKeyringAccount(cfg))
	if err != nil {
		WriteError(w, r, http.StatusConflict, "no_password", err.Error())
		return
	}

	if req.Username != user || req.Password != stored {
		WriteError(w, r, http.StatusUnauthorized, "bad_credentials", "invalid username or password")
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
