// Package snapshot builds the offline cache: the strict-filtered result of
// walking every state and modality code, serialized as one JSON document.
package snapshot

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"medvagas-engine/internal/config"
	"medvagas-engine/internal/domain"
	"medvagas-engine/internal/pncp"
	"medvagas-engine/internal/rank"
	"medvagas-engine/internal/search"
)

// Snapshot is the serialized cache document.
type Snapshot struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	RangeDays   int             `json:"rangeDays"`
	Modalities  []string        `json:"modalidades"`
	Items       []domain.Record `json:"items"`
}

type cell struct {
	uf       string
	modality string
}

// Build walks the full UF × modality grid over the editais endpoint,
// keeping only open records the strict classifier accepts. Cells run on a
// small bounded pool; each cell is its own fetch run, so the engine's
// per-run fallback state stays local. Failed cells cost coverage, not the
// build; cancellation aborts everything.
func Build(ctx context.Context, client *pncp.Client, cfg config.Config, onStatus func(string)) (*Snapshot, error) {
	status := func(format string, args ...any) {
		if onStatus != nil {
			onStatus(fmt.Sprintf(format, args...))
		}
	}

	rangeDays := cfg.Search.RangeDays
	if rangeDays <= 0 {
		rangeDays = 30
	}
	start, end := pncp.DateRange(rangeDays)

	pageSize := cfg.Snapshot.PageSize
	if pageSize <= 0 {
		pageSize = 200
	}
	maxPages := cfg.Snapshot.MaxPagesPerCell
	if maxPages <= 0 {
		maxPages = 30
	}
	maxTotal := cfg.Snapshot.MaxTotal
	if maxTotal <= 0 {
		maxTotal = 25000
	}
	workers := cfg.Snapshot.Workers
	if workers <= 0 {
		workers = 2
	}

	modalities := cfg.ModalityCodes()
	var cells []cell
	for _, uf := range domain.AllUFs {
		for _, mod := range modalities {
			cells = append(cells, cell{uf: uf, modality: mod})
		}
	}

	// Per-cell results land in their grid slot so the global dedup below
	// runs in deterministic grid order no matter how the pool scheduled
	// the fetches.
	matched := make([][]domain.Record, len(cells))
	scorer := rank.DoctorScorer{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, c := range cells {
		i, c := i, c
		g.Go(func() error {
			status("UF %s | modalidade %s...", c.uf, c.modality)

			rr, err := client.FetchAllPages(gctx, pncp.PathEditais, map[string]string{
				pncp.ParamStartDate: start,
				pncp.ParamEndDate:   end,
				pncp.ParamModality:  c.modality,
				pncp.ParamUF:        c.uf,
				pncp.ParamPage:      "1",
				pncp.ParamPageSize:  fmt.Sprint(pageSize),
			}, pncp.RunOptions{
				Timeout:  cfg.Timeout(),
				MaxPages: maxPages,
			})
			if err != nil {
				if pncp.IsCancelled(err) {
					return err
				}
				log.Printf("[snapshot] uf=%s modalidade=%s err=%v", c.uf, c.modality, err)
				return nil
			}

			var keep []domain.Record
			for _, rec := range rr.Records {
				subject := rec.Subject()
				if subject == "" {
					continue
				}
				ok, score := scorer.Score(subject)
				if !ok || !search.IsOpen(rec) {
					continue
				}
				rec.SetDocumentType(domain.DocEdital)
				rec.SetRelevance(score)
				keep = append(keep, rec)
			}
			matched[i] = keep
			log.Printf("[snapshot] uf=%s modalidade=%s matched=%d pages=%d", c.uf, c.modality, len(keep), rr.PagesFetched)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		GeneratedAt: time.Now().UTC(),
		RangeDays:   rangeDays,
		Modalities:  modalities,
	}
	seen := map[string]bool{}
	for i, recs := range matched {
		for _, rec := range recs {
			key := rec.IdentityKey(cells[i].uf, cells[i].modality)
			if seen[key] {
				continue
			}
			seen[key] = true
			snap.Items = append(snap.Items, rec)
			if len(snap.Items) >= maxTotal {
				status("Limite de segurança do cache atingido (%d itens).", maxTotal)
				return snap, nil
			}
		}
	}

	return snap, nil
}
