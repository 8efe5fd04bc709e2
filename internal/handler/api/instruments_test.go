package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"TrendBoard/internal/dataset"
	"TrendBoard/internal/domain/models"
	"TrendBoard/internal/query"
	"TrendBoard/internal/repository"
	icache "TrendBoard/internal/service/cache"
	applogger "TrendBoard/pkg/logger"
)

type fakeSource struct {
	data      []models.Instrument
	listCalls int
}

func (s *fakeSource) List(ctx context.Context) ([]models.Instrument, error) {
	s.listCalls++
	return append([]models.Instrument(nil), s.data...), nil
}

func (s *fakeSource) Get(ctx context.Context, id string) (models.Instrument, error) {
	for _, in := range s.data {
		if in.ID == id {
			return in, nil
		}
	}
	return models.Instrument{}, repository.ErrNotFound
}

func (s *fakeSource) Sectors(ctx context.Context) ([]string, error) {
	return dataset.Sectors(), nil
}

func newTestHandler(t *testing.T) (*InstrumentsHandler, *fakeSource, *echo.Echo) {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	src := &fakeSource{data: dataset.Instruments()}
	h := NewInstrumentsHandler(log, src, query.NewEngine())
	e := echo.New()
	h.RegisterRoutes(e)
	return h, src, e
}

func doGet(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeQuery(t *testing.T, rec *httptest.ResponseRecorder) models.QueryResponse {
	t.Helper()
	var resp models.QueryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestListInstrumentsDefaults(t *testing.T) {
	_, _, e := newTestHandler(t)

	rec := doGet(e, "/api/instruments")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	resp := decodeQuery(t, rec)
	if !resp.Success {
		t.Fatalf("success=false: %s", resp.Message)
	}
	if resp.Pagination == nil {
		t.Fatalf("missing pagination")
	}
	if resp.Pagination.Page != 1 || resp.Pagination.PageSize != 25 {
		t.Fatalf("defaults not applied: %+v", resp.Pagination)
	}
	if len(resp.Data) != 25 {
		t.Fatalf("expected a full default page, got %d", len(resp.Data))
	}
	for i := 1; i < len(resp.Data); i++ {
		if resp.Data[i-1].Symbol > resp.Data[i].Symbol {
			t.Fatalf("default order broken at %d: %s > %s", i, resp.Data[i-1].Symbol, resp.Data[i].Symbol)
		}
	}
}

// The HTTP endpoint and the local engine must produce identical pages
// for identical criteria.
func TestListInstrumentsMatchesLocalEngine(t *testing.T) {
	_, src, e := newTestHandler(t)
	eng := query.NewEngine()

	cases := []struct {
		name   string
		target string
		req    models.InstrumentQueryRequest
	}{
		{
			name:   "defaults",
			target: "/api/instruments",
			req:    models.InstrumentQueryRequest{Page: 1, PageSize: 25, Sector: "all", Direction: "all", SortBy: "symbol", SortOrder: "asc"},
		},
		{
			name:   "sector and sort",
			target: "/api/instruments?sector=Technology&sortBy=currentPrice&sortOrder=desc",
			req:    models.InstrumentQueryRequest{Page: 1, PageSize: 25, Sector: "Technology", Direction: "all", SortBy: "currentPrice", SortOrder: "desc"},
		},
		{
			name:   "search with paging",
			target: "/api/instruments?search=a&page=2&pageSize=5",
			req:    models.InstrumentQueryRequest{Page: 2, PageSize: 5, Search: "a", Sector: "all", Direction: "all", SortBy: "symbol", SortOrder: "asc"},
		},
		{
			name:   "direction and confidence floor",
			target: "/api/instruments?prediction=up&minConfidence=70&sortBy=prediction.confidence&sortOrder=desc",
			req: models.InstrumentQueryRequest{
				Page: 1, PageSize: 25, Sector: "all", Direction: "up",
				SortBy: "prediction.confidence", SortOrder: "desc",
				MinConfidence: f64(70),
			},
		},
	}

	for _, tc := range cases {
		rec := doGet(e, tc.target)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", tc.name, rec.Code)
		}
		resp := decodeQuery(t, rec)

		criteria, err := tc.req.Criteria()
		if err != nil {
			t.Fatalf("%s: criteria: %v", tc.name, err)
		}
		want := eng.Run(src.data, criteria)

		if !reflect.DeepEqual(resp.Data, want.Data) {
			t.Fatalf("%s: data diverges from local engine", tc.name)
		}
		if *resp.Pagination != want.Pagination {
			t.Fatalf("%s: pagination %+v != %+v", tc.name, *resp.Pagination, want.Pagination)
		}
	}
}

func f64(v float64) *float64 { return &v }

func TestListInstrumentsRejectsInvalidInput(t *testing.T) {
	_, _, e := newTestHandler(t)

	for _, target := range []string{
		"/api/instruments?prediction=sideways",
		"/api/instruments?sortOrder=upward",
		"/api/instruments?page=-1",
		"/api/instruments?pageSize=9999",
		"/api/instruments?sortBy=volume",
	} {
		rec := doGet(e, target)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", target, rec.Code)
		}
		resp := decodeQuery(t, rec)
		if resp.Success {
			t.Fatalf("%s: success=true on rejected input", target)
		}
		if resp.Message == "" {
			t.Fatalf("%s: missing message", target)
		}
	}
}

func TestGetInstrument(t *testing.T) {
	_, src, e := newTestHandler(t)

	rec := doGet(e, "/api/instruments/"+src.data[0].ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp models.InstrumentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Data == nil || resp.Data.ID != src.data[0].ID {
		t.Fatalf("unexpected response %+v", resp)
	}

	rec = doGet(e, "/api/instruments/no-such-id")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
	var failure struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &failure); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if failure.Success {
		t.Fatalf("success=true for missing instrument")
	}
	if failure.Message != "instrument no-such-id not found" {
		t.Fatalf("unexpected message %q", failure.Message)
	}
}

func TestSectors(t *testing.T) {
	_, _, e := newTestHandler(t)

	rec := doGet(e, "/api/sectors")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp models.SectorsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || len(resp.Data) == 0 {
		t.Fatalf("unexpected response %+v", resp)
	}
	for i := 1; i < len(resp.Data); i++ {
		if resp.Data[i-1] >= resp.Data[i] {
			t.Fatalf("sectors not sorted distinct: %v", resp.Data)
		}
	}
}

func TestListInstrumentsRateLimit(t *testing.T) {
	h, _, e := newTestHandler(t)
	h.SetRateLimit(1, 0)

	if rec := doGet(e, "/api/instruments"); rec.Code != http.StatusOK {
		t.Fatalf("first request: status %d", rec.Code)
	}
	rec := doGet(e, "/api/instruments")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status %d, want 429", rec.Code)
	}
	if resp := decodeQuery(t, rec); resp.Success {
		t.Fatalf("success=true on rate-limited request")
	}
}

func TestListInstrumentsCaching(t *testing.T) {
	h, src, e := newTestHandler(t)
	h.SetCache(icache.NewTTLCache(), time.Minute)

	first := doGet(e, "/api/instruments?sector=Finance")
	if first.Code != http.StatusOK {
		t.Fatalf("status %d", first.Code)
	}
	if src.listCalls != 1 {
		t.Fatalf("listCalls = %d", src.listCalls)
	}

	second := doGet(e, "/api/instruments?sector=Finance")
	if second.Code != http.StatusOK {
		t.Fatalf("status %d", second.Code)
	}
	if src.listCalls != 1 {
		t.Fatalf("cache miss on identical query: listCalls = %d", src.listCalls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("cached body diverges")
	}

	// A different query must not hit the same entry.
	doGet(e, "/api/instruments?sector=Energy")
	if src.listCalls != 2 {
		t.Fatalf("distinct query served from cache: listCalls = %d", src.listCalls)
	}
}
