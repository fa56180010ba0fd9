package pncp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingServer captures each request's query so the tests can assert on
// the exact sequence the engine sent.
type recordingServer struct {
	mu      sync.Mutex
	queries []map[string]string
	handler http.HandlerFunc
	srv     *httptest.Server
}

func newRecordingServer(t *testing.T, handler http.HandlerFunc) *recordingServer {
	t.Helper()
	rs := &recordingServer{handler: handler}
	rs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := map[string]string{}
		for k, vs := range r.URL.Query() {
			q[k] = vs[0]
		}
		rs.mu.Lock()
		rs.queries = append(rs.queries, q)
		rs.mu.Unlock()
		rs.handler(w, r)
	}))
	t.Cleanup(rs.srv.Close)
	return rs
}

func (rs *recordingServer) query(i int) map[string]string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.queries[i]
}

func (rs *recordingServer) count() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.queries)
}

func items(n int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		out[i] = map[string]any{"objetoCompra": fmt.Sprintf("item %d", i)}
	}
	return out
}

func writePage(w http.ResponseWriter, records []map[string]any, extra map[string]any) {
	body := map[string]any{"data": records}
	for k, v := range extra {
		body[k] = v
	}
	_ = json.NewEncoder(w).Encode(body)
}

// noDelay disables the inter-page pause so the tests run fast.
const noDelay = -1 * time.Millisecond

func TestFetchAllPages_WalksAllPages(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get(ParamPage)
		switch page {
		case "1", "2":
			writePage(w, items(200), map[string]any{"totalPaginas": 3, "totalRegistros": 440})
		case "3":
			writePage(w, items(40), map[string]any{"totalPaginas": 3, "totalRegistros": 440})
		default:
			t.Errorf("unexpected page %q", page)
		}
	})

	c := NewClient(rs.srv.URL, 0, 0)
	rr, err := c.FetchAllPages(context.Background(), PathEditais, map[string]string{
		ParamStartDate: "20250101",
		ParamEndDate:   "20250131",
		ParamPage:      "1",
		ParamPageSize:  "200",
	}, RunOptions{PageDelay: noDelay})

	require.NoError(t, err)
	assert.Equal(t, 3, rr.PagesFetched)
	assert.Equal(t, 3, rr.TotalPages)
	assert.Len(t, rr.Records, 440)
	assert.False(t, rr.Truncated)
	assert.Equal(t, 3, rs.count())
	assert.Equal(t, "200", rs.query(0)[ParamPageSize])
	assert.Equal(t, "2", rs.query(1)[ParamPage])
}

func TestFetchAllPages_PageSizeRejectedOnce(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get(ParamPageSize) != "" {
			w.WriteHeader(400)
			_, _ = w.Write([]byte(`{"erro":"tamanhoPagina não suportado"}`))
			return
		}
		switch r.URL.Query().Get(ParamPage) {
		case "1":
			writePage(w, items(2), map[string]any{"totalPaginas": 2})
		default:
			writePage(w, items(1), map[string]any{"totalPaginas": 2})
		}
	})

	c := NewClient(rs.srv.URL, 0, 0)
	rr, err := c.FetchAllPages(context.Background(), PathAtas, map[string]string{
		ParamStartDate: "20250101",
		ParamEndDate:   "20250131",
		ParamPage:      "1",
		ParamPageSize:  "500",
	}, RunOptions{PageDelay: noDelay})

	require.NoError(t, err)
	assert.Len(t, rr.Records, 3)
	assert.Equal(t, 2, rr.PagesFetched)

	// rejected attempt + page 1 retry + page 2
	require.Equal(t, 3, rs.count())
	assert.Equal(t, "500", rs.query(0)[ParamPageSize])
	assert.Empty(t, rs.query(1)[ParamPageSize])
	assert.Empty(t, rs.query(2)[ParamPageSize])
	assert.Equal(t, "1", rs.query(1)[ParamPage])
	assert.Equal(t, "2", rs.query(2)[ParamPage])
}

func TestFetchAllPages_SecondPageSizeRejectionSurfaces(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		_, _ = w.Write([]byte(`{"message":"parâmetro inválido"}`))
	})

	c := NewClient(rs.srv.URL, 0, 0)
	_, err := c.FetchAllPages(context.Background(), PathAtas, map[string]string{
		ParamPage:     "1",
		ParamPageSize: "500",
	}, RunOptions{PageDelay: noDelay})

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "parâmetro inválido", he.Detail)
	assert.Equal(t, 2, rs.count())
}

func TestFetchAllPages_DateOrderRejectionSwapsOnce(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get(ParamStartDate) == "20250101" {
			w.WriteHeader(422)
			_, _ = w.Write([]byte(`{"message":"Data Inicial maior que a Data Final"}`))
			return
		}
		writePage(w, items(1), nil)
	})

	c := NewClient(rs.srv.URL, 0, 0)
	rr, err := c.FetchAllPages(context.Background(), PathContratos, map[string]string{
		ParamStartDate: "20250101",
		ParamEndDate:   "20250310",
		ParamPage:      "1",
	}, RunOptions{PageDelay: noDelay})

	require.NoError(t, err)
	assert.Len(t, rr.Records, 1)

	require.Equal(t, 2, rs.count())
	assert.Equal(t, "20250310", rs.query(1)[ParamStartDate])
	assert.Equal(t, "20250101", rs.query(1)[ParamEndDate])
}

func TestFetchAllPages_InvertedWindowNormalizedBeforeFirstRequest(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writePage(w, nil, nil)
	})

	c := NewClient(rs.srv.URL, 0, 0)
	_, err := c.FetchAllPages(context.Background(), PathEditais, map[string]string{
		ParamStartDate: "20250310",
		ParamEndDate:   "20250101",
		ParamPage:      "1",
	}, RunOptions{PageDelay: noDelay})

	require.NoError(t, err)
	assert.Equal(t, "20250101", rs.query(0)[ParamStartDate])
	assert.Equal(t, "20250310", rs.query(0)[ParamEndDate])
}

func TestFetchAllPages_MaxPagesTruncates(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writePage(w, items(10), map[string]any{"totalPaginas": 50})
	})

	c := NewClient(rs.srv.URL, 0, 0)
	rr, err := c.FetchAllPages(context.Background(), PathEditais, map[string]string{
		ParamPage: "1",
	}, RunOptions{PageDelay: noDelay, MaxPages: 2})

	require.NoError(t, err)
	assert.True(t, rr.Truncated)
	assert.Equal(t, 2, rr.PagesFetched)
	assert.Len(t, rr.Records, 20)
}

func TestFetchAllPages_MaxItemsTruncates(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writePage(w, items(100), map[string]any{"totalPaginas": 50})
	})

	c := NewClient(rs.srv.URL, 0, 0)
	rr, err := c.FetchAllPages(context.Background(), PathEditais, map[string]string{
		ParamPage: "1",
	}, RunOptions{PageDelay: noDelay, MaxItems: 150})

	require.NoError(t, err)
	assert.True(t, rr.Truncated)
	assert.Equal(t, 2, rr.PagesFetched)
	assert.Len(t, rr.Records, 200)
}

func TestFetchAllPages_PagesRemainingZeroStops(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writePage(w, items(5), map[string]any{"paginasRestantes": 0})
	})

	c := NewClient(rs.srv.URL, 0, 0)
	rr, err := c.FetchAllPages(context.Background(), PathEditais, map[string]string{
		ParamPage: "1",
	}, RunOptions{PageDelay: noDelay})

	require.NoError(t, err)
	assert.Equal(t, 1, rr.PagesFetched)
	assert.False(t, rr.Truncated)
	assert.Equal(t, 1, rs.count())
}

func TestFetchAllPages_EmptyFirstPage(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	c := NewClient(rs.srv.URL, 0, 0)
	rr, err := c.FetchAllPages(context.Background(), PathEditais, map[string]string{
		ParamPage: "1",
	}, RunOptions{PageDelay: noDelay})

	require.NoError(t, err)
	assert.Empty(t, rr.Records)
	assert.Equal(t, 1, rr.PagesFetched)
	assert.False(t, rr.Truncated)
}

func TestFetchAllPages_FullPageHeuristic(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		// bare-array responses: no pagination metadata at all
		switch r.URL.Query().Get(ParamPage) {
		case "1", "2":
			_ = json.NewEncoder(w).Encode(items(2))
		default:
			_ = json.NewEncoder(w).Encode(items(1))
		}
	})

	c := NewClient(rs.srv.URL, 0, 0)
	rr, err := c.FetchAllPages(context.Background(), PathEditais, map[string]string{
		ParamPage:     "1",
		ParamPageSize: "2",
	}, RunOptions{PageDelay: noDelay})

	require.NoError(t, err)
	assert.Equal(t, 3, rr.PagesFetched)
	assert.Len(t, rr.Records, 5)
}

func TestFetchAllPages_NoMetadataNoPageSizeStopsAfterOne(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(items(2))
	})

	// Without a requested page size a full page is indistinguishable from a
	// short one, so the heuristic must not fire.
	c := NewClient(rs.srv.URL, 0, 0)
	rr, err := c.FetchAllPages(context.Background(), PathEditais, map[string]string{
		ParamPage: "1",
	}, RunOptions{PageDelay: noDelay})

	require.NoError(t, err)
	assert.Equal(t, 1, rr.PagesFetched)
	assert.Equal(t, 1, rs.count())
}

func TestFetchAllPages_CancellationStopsBetweenPages(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writePage(w, items(5), map[string]any{"totalPaginas": 10})
	})

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(rs.srv.URL, 0, 0)
	_, err := c.FetchAllPages(ctx, PathEditais, map[string]string{
		ParamPage: "1",
	}, RunOptions{
		PageDelay:  noDelay,
		OnProgress: func(Progress) { cancel() },
	})

	assert.True(t, IsCancelled(err))
	assert.Equal(t, 1, rs.count())
}

func TestFetchAllPages_RequestTimeout(t *testing.T) {
	rs := newRecordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		writePage(w, nil, nil)
	})

	c := NewClient(rs.srv.URL, 0, 0)
	_, err := c.FetchAllPages(context.Background(), PathEditais, map[string]string{
		ParamPage: "1",
	}, RunOptions{PageDelay: noDelay, Timeout: 30 * time.Millisecond})

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.False(t, IsCancelled(err))
}

func TestSleep_CancelledImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	err := Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
