package httpapi

import "net/http"

// NewMux returns the raw mux so main() can wrap it in the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Regions (static drill-down data)
	rh := RegionsHandler{}
	mux.HandleFunc("/regions", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.List,
	}))

	// Search
	sh := SearchHandler{Deps: d}
	mux.HandleFunc("/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Run,
	}))
	mux.HandleFunc("/search/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Status,
	}))
	mux.HandleFunc("/search/result", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Result,
	}))
	mux.HandleFunc("/search/cancel", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Cancel,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Snapshot
	snh := SnapshotHandler{Path: d.SnapshotPath}
	mux.HandleFunc("/snapshot", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: snh.Get,
	}))

	// Auth + secrets (use cfgVal, NOT a snapshot cfg)
	ah := AuthHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/auth/login", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Login,
	}))
	seh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/panel", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: seh.SetPanelPassword,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
