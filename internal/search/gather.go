// Package search is the aggregation layer: it drives the paginated fetch
// engine across the three consulta endpoints and every modality code,
// then filters, dedups and groups what came back.
package search

import (
	"context"
	"fmt"
	"log"

	"medvagas-engine/internal/config"
	"medvagas-engine/internal/domain"
	"medvagas-engine/internal/pncp"
	"medvagas-engine/internal/rank"
)

// Mode selects which scorer gates the results.
type Mode string

const (
	// ModeStrict runs the physician-hiring classifier (snapshot policy).
	ModeStrict Mode = "strict"
	// ModeKeywords runs the permissive keyword counter (interactive panel).
	ModeKeywords Mode = "keywords"
)

// Query is one aggregation request.
type Query struct {
	UF   string
	Mode Mode
}

type fetched struct {
	rec      domain.Record
	modality string
}

// Gather fetches editais (per modality, UF-filtered at the API), atas and
// contratos (UF-filtered client side) for the configured date window, then
// tags, filters, dedups and groups the survivors by municipality.
//
// Runs execute sequentially with a fixed delay in between. A failed run
// degrades coverage but never aborts its siblings; only cancellation stops
// the whole aggregation. Even when every run fails the returned Grouped is
// well formed (and empty).
func Gather(ctx context.Context, client *pncp.Client, cfg config.Config, q Query, onStatus func(string)) (*Grouped, error) {
	status := func(format string, args ...any) {
		if onStatus != nil {
			onStatus(fmt.Sprintf(format, args...))
		}
	}

	start, end := pncp.DateRange(cfg.Search.RangeDays)
	pageSize := cfg.PNCP.PageSize
	if pageSize <= 0 {
		pageSize = 500
	}

	runOpts := func(label string) pncp.RunOptions {
		return pncp.RunOptions{
			Timeout:   cfg.Timeout(),
			PageDelay: cfg.PageDelay(),
			MaxPages:  cfg.PNCP.MaxPages,
			MaxItems:  cfg.PNCP.MaxItems,
			OnProgress: func(p pncp.Progress) {
				if p.TotalPages > 0 {
					status("%s... página %d de %d (%d itens)", label, p.Page, p.TotalPages, p.ItemsSoFar)
				} else {
					status("%s... página %d (%d itens)", label, p.Page, p.ItemsSoFar)
				}
			},
		}
	}

	var raw []fetched
	truncated := false

	collect := func(rr pncp.RunResult, t domain.DocumentType, modality string) {
		truncated = truncated || rr.Truncated
		for _, rec := range rr.Records {
			rec.SetDocumentType(t)
			raw = append(raw, fetched{rec: rec, modality: modality})
		}
	}

	// 1) Editais/contratações: one run per modality, UF filter at the API.
	modalities := cfg.ModalityCodes()
	for i, mod := range modalities {
		label := fmt.Sprintf("Buscando contratações (modalidade %s)", mod)
		status("%s...", label)

		rr, err := client.FetchAllPages(ctx, pncp.PathEditais, map[string]string{
			pncp.ParamStartDate: start,
			pncp.ParamEndDate:   end,
			pncp.ParamModality:  mod,
			pncp.ParamUF:        q.UF,
			pncp.ParamPage:      "1",
			pncp.ParamPageSize:  fmt.Sprint(pageSize),
		}, runOpts(label))
		if err != nil {
			if pncp.IsCancelled(err) {
				return nil, err
			}
			log.Printf("[search] editais modalidade=%s uf=%s err=%v", mod, q.UF, err)
		} else {
			collect(rr, domain.DocEdital, mod)
		}

		if i < len(modalities)-1 {
			if err := pncp.Sleep(ctx, cfg.RunDelay()); err != nil {
				return nil, err
			}
		}
	}

	if err := pncp.Sleep(ctx, cfg.RunDelay()); err != nil {
		return nil, err
	}

	// 2) Atas de registro de preços: no uf param on this endpoint.
	status("Buscando atas de registro de preços...")
	rr, err := client.FetchAllPages(ctx, pncp.PathAtas, map[string]string{
		pncp.ParamStartDate: start,
		pncp.ParamEndDate:   end,
		pncp.ParamPage:      "1",
		pncp.ParamPageSize:  fmt.Sprint(pageSize),
	}, runOpts("Buscando atas"))
	if err != nil {
		if pncp.IsCancelled(err) {
			return nil, err
		}
		log.Printf("[search] atas uf=%s err=%v", q.UF, err)
	} else {
		collect(rr, domain.DocAta, "")
	}

	if err := pncp.Sleep(ctx, cfg.RunDelay()); err != nil {
		return nil, err
	}

	// 3) Contratos: also filtered client side.
	status("Buscando contratos...")
	rr, err = client.FetchAllPages(ctx, pncp.PathContratos, map[string]string{
		pncp.ParamStartDate: start,
		pncp.ParamEndDate:   end,
		pncp.ParamPage:      "1",
		pncp.ParamPageSize:  fmt.Sprint(pageSize),
	}, runOpts("Buscando contratos"))
	if err != nil {
		if pncp.IsCancelled(err) {
			return nil, err
		}
		log.Printf("[search] contratos uf=%s err=%v", q.UF, err)
	} else {
		collect(rr, domain.DocContrato, "")
	}

	g := assemble(raw, q, scorerFor(q.Mode, cfg))
	g.Truncated = truncated
	return g, nil
}

func scorerFor(mode Mode, cfg config.Config) rank.Scorer {
	if mode == ModeKeywords {
		return rank.KeywordScorer{Terms: cfg.Search.Keywords}
	}
	return rank.DoctorScorer{}
}

// assemble applies the filter chain, dedups by identity key (first seen
// wins) and groups by municipality.
func assemble(raw []fetched, q Query, scorer rank.Scorer) *Grouped {
	g := newGrouped()
	seen := map[string]bool{}

	for _, f := range raw {
		score, keep, _ := shouldKeep(f.rec, q.UF, scorer)
		if !keep {
			continue
		}

		key := f.rec.IdentityKey(q.UF, f.modality)
		if seen[key] {
			continue
		}
		seen[key] = true

		f.rec.SetRelevance(score)
		g.add(f.rec)
	}

	g.sortCities()
	return g
}
