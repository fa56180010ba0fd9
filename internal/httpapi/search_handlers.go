package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medvagas-engine/internal/config"
	"medvagas-engine/internal/domain"
	"medvagas-engine/internal/events"
	"medvagas-engine/internal/pncp"
	"medvagas-engine/internal/search"
)

type SearchHandler struct {
	Deps
}

type searchRequest struct {
	UF   string `json:"uf"`
	Mode string `json:"mode"`
}

// Run starts an aggregation for one state. If a previous search is still in
// flight it is cancelled first; its goroutine sees the cancellation and
// leaves the status with a neutral message rather than an error.
func (h SearchHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	uf := strings.ToUpper(strings.TrimSpace(req.UF))
	if !domain.ValidUF(uf) {
		WriteError(w, r, http.StatusBadRequest, "invalid_uf", "unknown state code: "+req.UF)
		return
	}

	mode := search.ModeKeywords
	if strings.EqualFold(strings.TrimSpace(req.Mode), string(search.ModeStrict)) {
		mode = search.ModeStrict
	}

	ctx, run := h.Session.Start(h.BaseCtx)

	prev := h.SearchStatus.Load().(SearchStatus)
	h.SearchStatus.Store(SearchStatus{
		run:       run,
		Running:   true,
		UF:        uf,
		Mode:      string(mode),
		Progress:  fmt.Sprintf("Buscando Editais, Atas e Contratos em %s...", uf),
		LastRunAt: time.Now().Format(time.RFC3339),
		LastOkAt:  prev.LastOkAt,
	})

	go func() {
		cfg := h.CfgVal.Load().(config.Config)

		onStatus := func(msg string) {
			st := h.SearchStatus.Load().(SearchStatus)
			if st.run != run {
				return // a newer search took over
			}
			st.Progress = msg
			h.SearchStatus.Store(st)
			h.Hub.Progress(msg)
		}

		grouped, err := h.Gather(ctx, h.Client, cfg, search.Query{UF: uf, Mode: mode}, onStatus)

		now := time.Now().Format(time.RFC3339)
		st := h.SearchStatus.Load().(SearchStatus)
		if st.run != run {
			return // superseded; the newer goroutine owns the status now
		}
		st.Running = false
		st.LastRunAt = now

		switch {
		case err != nil && pncp.IsCancelled(err):
			st.Progress = "Busca cancelada (você selecionou outro estado)."
			h.SearchStatus.Store(st)
			return
		case err != nil:
			st.LastError = err.Error()
			h.SearchStatus.Store(st)
			h.Hub.Publish(events.MakeEvent("", events.TypeSearchError, 1, map[string]string{"error": err.Error()}))
			return
		}

		trunc := ""
		if grouped.Truncated {
			trunc = " (busca truncada por limite de segurança)"
		}
		st.LastError = ""
		st.LastOkAt = now
		st.Matched = grouped.Matched
		st.Progress = fmt.Sprintf("%d documentos encontrados em %d municípios%s.", grouped.Matched, len(grouped.CityNames), trunc)
		h.SearchResult.Store(grouped)
		h.SearchStatus.Store(st)
		h.Hub.Publish(events.MakeEvent("", events.TypeSearchDone, 1, map[string]any{
			"uf": uf, "matched": grouped.Matched, "cities": len(grouped.CityNames), "truncated": grouped.Truncated,
		}))
	}()

	writeJSON(w, map[string]any{"ok": true, "uf": uf, "mode": string(mode)})
}

func (h SearchHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.SearchStatus.Load().(SearchStatus)
	writeJSON(w, st)
}

// Result serves the grouped output of the last completed search.
func (h SearchHandler) Result(w http.ResponseWriter, r *http.Request) {
	v := h.SearchResult.Load()
	if v == nil {
		WriteError(w, r, http.StatusNotFound, "no_result", "no search has completed yet")
		return
	}
	writeJSON(w, v.(*search.Grouped))
}

// Cancel aborts the in-flight search without starting another.
func (h SearchHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.Session.Cancel()
	writeJSON(w, map[string]any{"ok": true})
}
