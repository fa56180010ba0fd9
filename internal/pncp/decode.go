package pncp

import (
	"encoding/json"

	"medvagas-engine/internal/domain"
)

// Paging is the pagination metadata of one page, when the endpoint sent any.
// The consulta endpoints are inconsistent: some report total pages, some
// report pages remaining, some report nothing at all.
type Paging struct {
	TotalPages     int
	TotalRecords   int
	PageNumber     int
	PagesRemaining int
	// HasRemaining distinguishes "paginasRestantes: 0" from the field being
	// absent; the stop conditions treat those differently.
	HasRemaining bool
}

// Page is one decoded response.
type Page struct {
	Records []domain.Record
	Paging  Paging
}

// decodePage turns a raw body into records + paging. Body shapes, in
// priority order: bare JSON array; object with data / items / results.
// Metadata lives under meta / paginacao / pagination or at the top level.
// An empty body is a valid zero-record page.
func decodePage(url string, body []byte) (Page, error) {
	if len(body) == 0 {
		return Page{}, nil
	}

	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return Page{}, &DecodeError{URL: url, Err: err}
	}

	switch v := root.(type) {
	case []any:
		return Page{Records: toRecords(v)}, nil
	case map[string]any:
		var items []any
		for _, key := range []string{"data", "items", "results"} {
			if arr, ok := v[key].([]any); ok {
				items = arr
				break
			}
		}
		return Page{Records: toRecords(items), Paging: extractPaging(v)}, nil
	default:
		// scalar JSON; nothing usable
		return Page{}, nil
	}
}

func toRecords(items []any) []domain.Record {
	out := make([]domain.Record, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, domain.Record(m))
		}
	}
	return out
}

func extractPaging(root map[string]any) Paging {
	meta := root
	for _, key := range []string{"meta", "paginacao", "pagination"} {
		if m, ok := root[key].(map[string]any); ok {
			meta = m
			break
		}
	}

	var p Paging
	p.TotalPages = firstInt(meta, "totalPaginas", "totalPages", "total_pages", "totalPaginasConsulta")
	p.TotalRecords = firstInt(meta, "totalRegistros", "totalRecords")
	p.PageNumber = firstInt(meta, "numeroPagina", "pagina", "page")
	if v, ok := lookupNumber(meta, "paginasRestantes"); ok {
		p.PagesRemaining = v
		p.HasRemaining = true
	}
	return p
}

func firstInt(m map[string]any, keys ...string) int {
	for _, k := range keys {
		if v, ok := lookupNumber(m, k); ok && v > 0 {
			return v
		}
	}
	return 0
}

func lookupNumber(m map[string]any, key string) (int, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}
