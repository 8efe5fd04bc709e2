package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"TrendBoard/internal/domain/models"
	xhttp "TrendBoard/pkg/http"
	applogger "TrendBoard/pkg/logger"
)

// Snapshot is the externally visible fetch state. Data and Pagination
// survive both Loading and Failed: the last good payload stays visible
// until a newer successful response replaces it.
type Snapshot struct {
	Data       []models.Instrument
	Pagination models.PaginationState
	Loading    bool
	Err        string
}

// Params is one observed tuple of query parameters. Enabled=false
// suppresses all requests without touching the rest of the state.
type Params struct {
	Criteria models.Criteria
	Enabled  bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger injects a structured logger.
func WithLogger(l *applogger.Logger) Option {
	return func(f *Fetcher) { f.log = l }
}

// WithTimeout bounds each remote call.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithOnUpdate registers a callback invoked with a snapshot copy after
// every state transition.
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(f *Fetcher) { f.onUpdate = fn }
}

// Fetcher drives instrument queries against a remote endpoint, one
// logical request at a time. Every issued request carries a generation
// token; a response whose token is no longer the latest is discarded,
// so a slow stale reply can never overwrite the result for newer
// parameters.
type Fetcher struct {
	baseURL string
	client  *xhttp.Client
	log     *applogger.Logger
	timeout time.Duration

	onUpdate func(Snapshot)

	mu      sync.Mutex
	seq     uint64
	started bool
	last    Params
	snap    Snapshot

	wg sync.WaitGroup
}

// NewFetcher creates a fetcher for the given API base URL. The base URL
// is an explicit constructor argument; nothing is read from process
// environment.
func NewFetcher(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL: baseURL,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = xhttp.NewClient(xhttp.WithTimeout(f.timeout))
	return f
}

// Update observes a new parameter tuple. A request is issued when the
// tuple differs from the last observed one (or none was observed yet)
// and fetching is enabled.
func (f *Fetcher) Update(p Params) {
	f.mu.Lock()
	defer f.mu.Unlock()

	changed := !f.started || p != f.last
	f.started = true
	f.last = p
	if changed && p.Enabled {
		f.issueLocked()
	}
}

// Refetch re-issues the last observed request. Disabled fetchers stay
// idle.
func (f *Fetcher) Refetch() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.started || !f.last.Enabled {
		return
	}
	f.issueLocked()
}

// Snapshot returns a copy of the current fetch state.
func (f *Fetcher) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Wait blocks until every issued request has settled. Intended for
// sequential callers (CLI, tests); concurrent Update during Wait is
// not supported.
func (f *Fetcher) Wait() {
	f.wg.Wait()
}

func (f *Fetcher) snapshotLocked() Snapshot {
	s := f.snap
	s.Data = append([]models.Instrument(nil), f.snap.Data...)
	return s
}

// issueLocked starts one request under f.mu: bumps the generation
// token, enters Loading, and clears the previous error. Data remains
// visible while the request is in flight.
func (f *Fetcher) issueLocked() {
	f.seq++
	token := f.seq
	criteria := f.last.Criteria

	f.snap.Loading = true
	f.snap.Err = ""
	f.notifyLocked()

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		result, errMsg := f.do(criteria)
		f.apply(token, result, errMsg)
	}()
}

// do performs the remote call and classifies the outcome. It returns
// either a result or a user-facing error message, never both.
func (f *Fetcher) do(c models.Criteria) (models.QueryResult, string) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	resp, err := f.client.SendRequest(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         f.baseURL + "/api/instruments",
		QueryParams: encodeCriteria(c),
	})
	if err != nil {
		if f.log != nil {
			f.log.Warn("fetch transport error", applogger.Error(err))
		}
		return models.QueryResult{}, KindNetworkError.Message()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		kind := KindFromStatus(resp.StatusCode)
		if f.log != nil {
			f.log.Warn("fetch rejected",
				applogger.Int("status", resp.StatusCode),
				applogger.String("kind", string(kind)),
			)
		}
		return models.QueryResult{}, kind.Message()
	}

	var envelope models.QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if f.log != nil {
			f.log.Warn("fetch decode error", applogger.Error(err))
		}
		return models.QueryResult{}, KindNetworkError.Message()
	}
	if !envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = KindServerError.Message()
		}
		return models.QueryResult{}, msg
	}

	result := models.QueryResult{Data: envelope.Data}
	if envelope.Pagination != nil {
		result.Pagination = *envelope.Pagination
	}
	return result, ""
}

// Sectors fetches the distinct sector list from the remote endpoint.
// A one-shot call outside the snapshot state machine: the sector list
// feeds filter option rendering, not the query result.
func (f *Fetcher) Sectors(ctx context.Context) ([]string, error) {
	var resp models.SectorsResponse
	err := f.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    f.baseURL + "/api/sectors",
	}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = KindServerError.Message()
		}
		return nil, errors.New(msg)
	}
	return resp.Data, nil
}

// apply installs a settled response unless its generation token has
// been superseded, in which case the response is dropped: responses
// take effect in request order, never arrival order.
func (f *Fetcher) apply(token uint64, result models.QueryResult, errMsg string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if token != f.seq {
		if f.log != nil {
			f.log.Debug("stale response discarded",
				applogger.Int64("token", int64(token)),
				applogger.Int64("latest", int64(f.seq)),
			)
		}
		return
	}

	f.snap.Loading = false
	if errMsg != "" {
		// Failed: keep the last good data visible.
		f.snap.Err = errMsg
	} else {
		f.snap.Err = ""
		f.snap.Data = result.Data
		f.snap.Pagination = result.Pagination
	}
	f.notifyLocked()
}

func (f *Fetcher) notifyLocked() {
	if f.onUpdate != nil {
		f.onUpdate(f.snapshotLocked())
	}
}

// encodeCriteria serializes criteria as query parameters. Bounds are
// sent explicitly so the server evaluates exactly the same ranges the
// local engine would.
func encodeCriteria(c models.Criteria) map[string][]string {
	q := map[string][]string{
		"page":          {strconv.Itoa(c.Page)},
		"pageSize":      {strconv.Itoa(c.PageSize)},
		"sector":        {c.Filter.Sector},
		"prediction":    {string(c.Filter.Direction)},
		"sortBy":        {string(c.Sort.Field)},
		"sortOrder":     {string(c.Sort.Direction)},
		"minPrice":      {formatFloat(c.Filter.Price.Min)},
		"maxPrice":      {formatFloat(c.Filter.Price.Max)},
		"minChange":     {formatFloat(c.Filter.Change.Min)},
		"maxChange":     {formatFloat(c.Filter.Change.Max)},
		"minConfidence": {formatFloat(c.Filter.Confidence.Min)},
		"maxConfidence": {formatFloat(c.Filter.Confidence.Max)},
	}
	if c.Filter.Search != "" {
		q["search"] = []string{c.Filter.Search}
	}
	if c.Filter.Date.Preset != models.PresetAllTime {
		if !c.Filter.Date.From.IsZero() {
			q["fromDate"] = []string{c.Filter.Date.From.Format(time.RFC3339)}
		}
		if !c.Filter.Date.To.IsZero() {
			q["toDate"] = []string{c.Filter.Date.To.Format(time.RFC3339)}
		}
	}
	return q
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
