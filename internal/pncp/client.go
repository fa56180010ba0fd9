// Package pncp is the client for the PNCP "API de Consultas". It knows the
// three public document endpoints, their inconsistent response envelopes,
// and how to page through them without tripping the source's quirks
// (rejected page sizes, inverted date windows, missing metadata).
package pncp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"medvagas-engine/internal/ptext"
)

// Consulta endpoint paths, relative to the base URL.
const (
	PathEditais   = "/v1/contratacoes/publicacao"
	PathAtas      = "/v1/atas"
	PathContratos = "/v1/contratos"
)

const DefaultBaseURL = "https://pncp.gov.br/api/consulta"

// Request parameter names recognized by the consulta endpoints.
const (
	ParamStartDate = "dataInicial"
	ParamEndDate   = "dataFinal"
	ParamModality  = "codigoModalidadeContratacao"
	ParamUF        = "uf"
	ParamPage      = "pagina"
	ParamPageSize  = "tamanhoPagina"
)

// Client issues rate-limited requests against one PNCP deployment.
type Client struct {
	base    string
	hc      *http.Client
	limiter *rate.Limiter
}

// NewClient builds a client for base (DefaultBaseURL when empty). reqPerSec
// caps the request rate toward the host; <=0 disables the limiter.
func NewClient(base string, reqPerSec float64, burst int) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	var lim *rate.Limiter
	if reqPerSec > 0 {
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(reqPerSec), burst)
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		// per-request deadlines come from the run options, not the client
		hc:      &http.Client{},
		limiter: lim,
	}
}

// buildURL appends the non-empty params to path in a stable key order.
func (c *Client) buildURL(path string, params map[string]string) string {
	q := url.Values{}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := strings.TrimSpace(params[k])
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	u := c.base + path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// fetchPage runs one GET with its own timeout, racing against ctx. A 204 or
// empty body decodes as a zero-record page. Timeouts surface as
// *TimeoutError; ctx cancellation propagates as context.Canceled.
func (c *Client) fetchPage(ctx context.Context, rawURL string, timeout time.Duration) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Page{}, err
		}
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("pncp: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", "MedVagas/1.0 (+local)")

	res, err := c.hc.Do(req)
	if err != nil {
		// the outer context wins the race over the per-request deadline
		if ctx.Err() != nil {
			return Page{}, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return Page{}, &TimeoutError{URL: rawURL, After: timeout}
		}
		return Page{}, fmt.Errorf("pncp: get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNoContent {
		return Page{}, nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		if ctx.Err() != nil {
			return Page{}, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return Page{}, &TimeoutError{URL: rawURL, After: timeout}
		}
		return Page{}, fmt.Errorf("pncp: read body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Page{}, &HTTPError{
			Status: res.StatusCode,
			Detail: bodyDetail(body),
			URL:    rawURL,
		}
	}

	if strings.TrimSpace(string(body)) == "" {
		return Page{}, nil
	}
	return decodePage(rawURL, body)
}

// bodyDetail pulls a short human-readable message out of an error body:
// the JSON message/erro/error/detail field when there is one, else a
// 200-char excerpt of the cleaned text.
func bodyDetail(body []byte) string {
	var payload map[string]any
	if json.Unmarshal(body, &payload) == nil {
		for _, k := range []string{"message", "erro", "error", "detail"} {
			if s, ok := payload[k].(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					return s
				}
			}
		}
	}
	cleaned := ptext.Clean(string(body))
	if len(cleaned) > 200 {
		cut := 200
		// don't cut a multi-byte character in half
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		cleaned = cleaned[:cut]
	}
	return cleaned
}
