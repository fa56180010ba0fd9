package httpapi

import (
	"context"
	"sync/atomic"

	"medvagas-engine/internal/config"
	"medvagas-engine/internal/events"
	"medvagas-engine/internal/pncp"
	"medvagas-engine/internal/search"
)

type Deps struct {
	Client *pncp.Client

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	SearchStatus *atomic.Value // stores httpapi.SearchStatus
	SearchResult *atomic.Value // stores *search.Grouped

	// Exactly one aggregation runs at a time; starting a new one cancels
	// the previous.
	Session *search.Session
	// Parent context for background searches (engine lifetime).
	BaseCtx context.Context

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	SnapshotPath string

	// Aggregation entrypoint (inject for testability)
	Gather func(ctx context.Context, client *pncp.Client, cfg config.Config, q search.Query, onStatus func(string)) (*search.Grouped, error)
}
