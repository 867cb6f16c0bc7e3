package handler

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skyfare/skyfare/internal/airports"
	"github.com/skyfare/skyfare/internal/cache"
	"github.com/skyfare/skyfare/internal/filter"
	"github.com/skyfare/skyfare/internal/models"
	"github.com/skyfare/skyfare/internal/prefs"
	"github.com/skyfare/skyfare/internal/search"
	"github.com/skyfare/skyfare/internal/trend"
)

type SearchHandler struct {
	orchestrator *search.Orchestrator
	cache        cache.Cache
	suggester    *airports.Suggester
	prefs        *prefs.Store
}

func NewSearchHandler(orch *search.Orchestrator, c cache.Cache, suggester *airports.Suggester, prefStore *prefs.Store) *SearchHandler {
	return &SearchHandler{
		orchestrator: orch,
		cache:        c,
		suggester:    suggester,
		prefs:        prefStore,
	}
}

type searchRequest struct {
	models.SearchParams
	Criteria *models.FilterCriteria `json:"criteria,omitempty"`
	SortBy   string                 `json:"sortBy,omitempty"`
}

// Search runs one search cycle and returns the filtered, sorted view model.
func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := req.SearchParams.Validate(airports.Known); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	var result search.Result
	cacheHit := false
	if cached, found := h.cache.Get(ctx, req.SearchParams); found {
		cacheHit = true
		result = h.orchestrator.AdoptCached(req.SearchParams, cached)
	} else {
		result = h.orchestrator.ExecuteSearch(ctx, req.SearchParams)
	}

	if req.Criteria != nil {
		h.orchestrator.SetCriteria(*req.Criteria)
	}

	snap := h.orchestrator.Snapshot()

	// Only live results are worth caching; fallback data is synthetic.
	if !cacheHit && snap.Status == models.StatusSuccess && !snap.UsingFallback {
		_ = h.cache.Set(ctx, req.SearchParams, snap.Flights)
	}

	flights := snap.Filtered
	if req.SortBy != "" {
		flights = filter.Sort(flights, req.SortBy)
	}

	resp := models.SearchResponse{
		SearchCriteria: buildSearchCriteria(req),
		Metadata: models.SearchMetadata{
			SearchID:      result.SearchID,
			Status:        snap.Status,
			UsingFallback: snap.UsingFallback,
			CacheHit:      cacheHit,
			TotalResults:  len(flights),
			SearchTimeMs:  time.Since(startTime).Milliseconds(),
		},
		Flights:    flights,
		StopCounts: filter.CountByStops(snap.Flights),
		Analytics:  snap.Analytics,
		PriceStats: trend.Stats(flights),
	}
	if resp.Analytics == nil {
		// Per-request source: requests run on concurrent goroutines and
		// rand.Rand is not safe for shared use.
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		resp.PriceTrend = trend.Series(flights, time.Now(), rng)
	}

	return c.JSON(http.StatusOK, resp)
}

// Filter re-applies criteria to the current collection without a new search.
func (h *SearchHandler) Filter(c echo.Context) error {
	var req struct {
		Criteria models.FilterCriteria `json:"criteria"`
		SortBy   string                `json:"sortBy,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	h.orchestrator.SetCriteria(req.Criteria)
	snap := h.orchestrator.Snapshot()

	flights := snap.Filtered
	if req.SortBy != "" {
		flights = filter.Sort(flights, req.SortBy)
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		Metadata: models.SearchMetadata{
			Status:        snap.Status,
			UsingFallback: snap.UsingFallback,
			TotalResults:  len(flights),
		},
		Flights:    flights,
		StopCounts: filter.CountByStops(snap.Flights),
		PriceStats: trend.Stats(flights),
	})
}

type suggestResponse struct {
	Airports []airports.Airport `json:"airports"`
	// Superseded marks a request replaced by a newer one for the same
	// field before its debounce window elapsed.
	Superseded bool `json:"superseded,omitempty"`
}

// Suggest serves debounced airport autocompletion. The field parameter keys
// the debounce so origin and destination inputs do not cancel each other.
func (h *SearchHandler) Suggest(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	field := c.QueryParam("field")
	if field == "" {
		field = "origin"
	}

	results, ok := h.suggester.Suggest(c.Request().Context(), field, keyword)
	if !ok {
		return c.JSON(http.StatusOK, suggestResponse{Superseded: true})
	}

	return c.JSON(http.StatusOK, suggestResponse{Airports: results})
}

// Language returns the persisted UI language preference.
func (h *SearchHandler) Language(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"language": h.prefs.Language(),
	})
}

// SetLanguage updates the persisted UI language preference.
func (h *SearchHandler) SetLanguage(c echo.Context) error {
	var req struct {
		Language string `json:"language"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := h.prefs.SetLanguage(req.Language); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"language": h.prefs.Language(),
	})
}

func buildSearchCriteria(req searchRequest) models.SearchCriteria {
	return models.SearchCriteria{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Passengers:    req.Passengers,
		TripType:      req.TripType,
		Class:         req.Class,
		Filters:       req.Criteria,
		SortBy:        req.SortBy,
	}
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
