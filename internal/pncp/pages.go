package pncp

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"medvagas-engine/internal/domain"
)

// Progress is pushed to RunOptions.OnProgress after every fetched page.
type Progress struct {
	Page          int
	TotalPages    int // 0 while unknown
	ItemsSoFar    int
	LastPageItems int
}

// RunOptions bound one FetchAllPages run.
type RunOptions struct {
	Timeout    time.Duration // per request
	PageDelay  time.Duration // between successful pages
	MaxPages   int
	MaxItems   int
	OnProgress func(Progress)
}

func (o RunOptions) withDefaults() RunOptions {
	if o.Timeout <= 0 {
		o.Timeout = 20 * time.Second
	}
	if o.PageDelay < 0 {
		o.PageDelay = 0
	} else if o.PageDelay == 0 {
		o.PageDelay = 120 * time.Millisecond
	}
	if o.MaxPages <= 0 {
		o.MaxPages = 80
	}
	if o.MaxItems <= 0 {
		o.MaxItems = 15000
	}
	return o
}

// RunResult is the accumulated output of one run.
type RunResult struct {
	Records      []domain.Record
	PagesFetched int
	TotalPages   int // 0 when the endpoint never said
	Truncated    bool
}

// FetchAllPages pages through one consulta endpoint until end-of-data or a
// safety limit. Pages are fetched strictly in order; the two recovery
// fallbacks (page-size rejection, inverted date window) are applied at most
// once per run and never surface to the caller.
//
// Not every endpoint accepts tamanhoPagina, so the parameter is only sent
// when the caller put it in params.
func (c *Client) FetchAllPages(ctx context.Context, path string, params map[string]string, opts RunOptions) (RunResult, error) {
	opts = opts.withDefaults()

	base := make(map[string]string, len(params))
	for k, v := range params {
		base[k] = v
	}
	normalizeDateOrder(base)

	page := 1
	if n, err := strconv.Atoi(base[ParamPage]); err == nil && n > 0 {
		page = n
	}
	delete(base, ParamPage)

	includeSize := false
	requestedSize := 0
	if raw, ok := base[ParamPageSize]; ok {
		if s := strings.TrimSpace(raw); s != "" {
			includeSize = true
			requestedSize, _ = strconv.Atoi(s)
		}
		delete(base, ParamPageSize)
	}

	sizeFallbackUsed := false
	dateFallbackUsed := false

	var res RunResult
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		reqParams := make(map[string]string, len(base)+2)
		for k, v := range base {
			reqParams[k] = v
		}
		reqParams[ParamPage] = strconv.Itoa(page)
		if includeSize {
			reqParams[ParamPageSize] = strconv.Itoa(requestedSize)
		}

		pg, err := c.fetchPage(ctx, c.buildURL(path, reqParams), opts.Timeout)
		if err != nil {
			// One-shot: endpoint rejects tamanhoPagina with a 400; retry the
			// same page without it.
			if !sizeFallbackUsed && includeSize && httpStatus(err) == 400 {
				sizeFallbackUsed = true
				includeSize = false
				continue
			}
			// One-shot: a 422 complaining about the date order while both
			// dates are set; swap and refetch the same page. The swap sticks
			// for the rest of the run (it corrected an inversion), but the
			// fallback itself never fires twice.
			if !dateFallbackUsed && isDateOrderError(err) && base[ParamStartDate] != "" && base[ParamEndDate] != "" {
				dateFallbackUsed = true
				base[ParamStartDate], base[ParamEndDate] = base[ParamEndDate], base[ParamStartDate]
				continue
			}
			return res, err
		}

		res.PagesFetched++
		res.Records = append(res.Records, pg.Records...)
		if res.TotalPages == 0 && pg.Paging.TotalPages > 0 {
			res.TotalPages = pg.Paging.TotalPages
		}

		if opts.OnProgress != nil {
			opts.OnProgress(Progress{
				Page:          page,
				TotalPages:    res.TotalPages,
				ItemsSoFar:    len(res.Records),
				LastPageItems: len(pg.Records),
			})
		}

		if len(pg.Records) == 0 {
			break
		}
		if pg.Paging.HasRemaining && pg.Paging.PagesRemaining == 0 {
			break
		}
		if res.TotalPages > 0 && page >= res.TotalPages {
			break
		}
		if res.PagesFetched >= opts.MaxPages {
			res.Truncated = true
			break
		}
		if len(res.Records) >= opts.MaxItems {
			res.Truncated = true
			break
		}
		if res.TotalPages == 0 && !pg.Paging.HasRemaining {
			// No pagination metadata at all: assume more only when the page
			// came back full-sized against the size we asked for.
			if !includeSize || requestedSize <= 0 || len(pg.Records) < requestedSize {
				break
			}
		}

		page++
		if opts.PageDelay > 0 {
			if err := Sleep(ctx, opts.PageDelay); err != nil {
				return res, err
			}
		}
	}

	return res, nil
}

// Sleep waits d or fails with the context's cancellation error. Runs use it
// for the inter-page and inter-run delays so an abort during a delay fails
// immediately instead of after the timer.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// normalizeDateOrder swaps dataInicial/dataFinal in place when both are
// 8-digit dates and inverted. Runs once before the first request.
func normalizeDateOrder(params map[string]string) {
	a := strings.TrimSpace(params[ParamStartDate])
	b := strings.TrimSpace(params[ParamEndDate])
	if eightDigits.MatchString(a) && eightDigits.MatchString(b) && a > b {
		params[ParamStartDate], params[ParamEndDate] = b, a
	}
}

// isDateOrderError matches the consulta 422 raised when dataInicial is after
// dataFinal ("Data Inicial maior que a Data Final").
func isDateOrderError(err error) bool {
	if httpStatus(err) != 422 {
		return false
	}
	var he *HTTPError
	if !errors.As(err, &he) {
		return false
	}
	detail := strings.ToLower(he.Detail)
	return strings.Contains(detail, "data inicial") || strings.Contains(detail, "datainicial")
}
