package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"TrendBoard/internal/domain/models"
	"TrendBoard/internal/query"
	"TrendBoard/internal/repository"
	icache "TrendBoard/internal/service/cache"
	"TrendBoard/internal/service/metrics"
	"TrendBoard/internal/service/ratelimit"
	xhttp "TrendBoard/pkg/http"
	applogger "TrendBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// InstrumentSource provides the read-only dataset the query engine
// evaluates against.
type InstrumentSource interface {
	List(ctx context.Context) ([]models.Instrument, error)
	Get(ctx context.Context, id string) (models.Instrument, error)
	Sectors(ctx context.Context) ([]string, error)
}

// InstrumentsHandler serves the dashboard query API. Filtering, sorting
// and pagination all go through the same engine the local fallback
// uses, so a remote page and a local page for identical criteria are
// identical.
type InstrumentsHandler struct {
	logger *applogger.Logger
	src    InstrumentSource
	engine *query.Engine

	cache    icache.BytesCache
	cacheTTL time.Duration

	rl       *ratelimit.Limiter
	capacity float64
	refill   float64
}

func NewInstrumentsHandler(logger *applogger.Logger, src InstrumentSource, engine *query.Engine) *InstrumentsHandler {
	metrics.Register()
	return &InstrumentsHandler{
		logger:   logger,
		src:      src,
		engine:   engine,
		cacheTTL: 30 * time.Second,
	}
}

// SetCache enables response caching.
func (h *InstrumentsHandler) SetCache(c icache.BytesCache, ttl time.Duration) {
	h.cache = c
	if ttl > 0 {
		h.cacheTTL = ttl
	}
}

// SetRateLimit enables per-client rate limiting.
func (h *InstrumentsHandler) SetRateLimit(capacity, refillPerSec float64) {
	h.rl = ratelimit.New()
	h.capacity = capacity
	h.refill = refillPerSec
}

func (h *InstrumentsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/instruments", h.ListInstruments)
	g.GET("/instruments/:id", h.GetInstrument)
	g.GET("/sectors", h.Sectors)
}

// ListInstruments handles GET /api/instruments.
func (h *InstrumentsHandler) ListInstruments(c echo.Context) error {
	start := time.Now()
	endpoint := "instruments"
	defer func() { metrics.QueryLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if h.rl != nil && !h.rl.Allow(c.RealIP()+":instruments", h.capacity, h.refill) {
		h.logger.Warn("instruments rate_limited", applogger.String("remote", c.RealIP()))
		return xhttp.AppErrorResponse(c, xhttp.RateLimitedError("Too many requests"))
	}

	req := &models.InstrumentQueryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	criteria, err := req.Criteria()
	if err != nil {
		// Unknown sort field: rejected at the boundary, never resolved
		// dynamically further down.
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	cacheKey := req.CacheKey()
	if h.cache != nil {
		if b, ok, cerr := h.cache.GetBytes(cacheKey); cerr != nil {
			h.logger.Warn("instruments cache_get_error", applogger.Error(cerr))
		} else if ok {
			metrics.CacheRequests.WithLabelValues("hit").Inc()
			return c.JSONBlob(http.StatusOK, b)
		}
		metrics.CacheRequests.WithLabelValues("miss").Inc()
	}

	dataset, err := h.src.List(c.Request().Context())
	if err != nil {
		metrics.QueryErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("instruments list error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("Failed to load instruments").WithError(err))
	}

	result := h.engine.Run(dataset, criteria)

	pagination := result.Pagination
	resp := models.QueryResponse{
		Data:       result.Data,
		Success:    true,
		Pagination: &pagination,
	}
	b, err := json.Marshal(resp)
	if err != nil {
		metrics.QueryErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("instruments marshal error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("Failed to encode response").WithError(err))
	}

	if h.cache != nil {
		if cerr := h.cache.SetBytes(cacheKey, b, h.cacheTTL); cerr != nil {
			h.logger.Warn("instruments cache_set_error", applogger.Error(cerr))
		}
	}

	return c.JSONBlob(http.StatusOK, b)
}

// GetInstrument handles GET /api/instruments/:id.
func (h *InstrumentsHandler) GetInstrument(c echo.Context) error {
	start := time.Now()
	endpoint := "instrument"
	defer func() { metrics.QueryLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	id := c.Param("id")
	in, err := h.src.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("instrument %s not found", id))
		}
		metrics.QueryErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("instrument get error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("Failed to load instrument %s", id).WithError(err))
	}

	return c.JSON(http.StatusOK, models.InstrumentResponse{Data: &in, Success: true})
}

// Sectors handles GET /api/sectors.
func (h *InstrumentsHandler) Sectors(c echo.Context) error {
	sectors, err := h.src.Sectors(c.Request().Context())
	if err != nil {
		metrics.QueryErrors.WithLabelValues("sectors").Inc()
		h.logger.Error("sectors error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("Failed to load sectors").WithError(err))
	}
	return xhttp.SuccessResponse(c, sectors)
}
