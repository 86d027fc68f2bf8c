package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "assetpulse/internal/errors"
	"assetpulse/internal/presentation"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetDashboard)
	r.Get("/snapshot", h.GetSnapshot)
	r.Post("/refresh", h.Refresh)

	r.Route("/series/{name}", func(r chi.Router) {
		r.Use(h.SeriesCtx)
		r.Get("/", h.GetSeries)
	})

	return r
}

// knownSeries lists the series names the rendering layer may request.
var knownSeries = map[string]bool{
	presentation.SeriesSpendByCategory:    true,
	presentation.SeriesReferenceFigures:   true,
	presentation.SeriesCostCenters:        true,
	presentation.SeriesStatusDistribution: true,
	presentation.SeriesAccessories:        true,
	presentation.SeriesPriorityBreakdown:  true,
}

// SeriesCtx middleware validates the series name parameter
func (h *DashboardHandler) SeriesCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("name", "Series name is required"))
			return
		}
		if !knownSeries[name] {
			h.errorHandler.HandleError(w, r, apierrors.ErrSeriesNotFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "fetching dashboard payload",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	payload, err := h.service.Payload(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   payload,
	})
}

// GetSnapshot handles GET /api/dashboard/snapshot
func (h *DashboardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "fetching metric snapshot",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	snapshot, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   snapshot,
	})
}

// GetSeries handles GET /api/dashboard/series/{name}
func (h *DashboardHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	series, err := h.service.Series(r.Context(), name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"name":   name,
		"data":   series,
		"count":  len(series),
	})
}

// Refresh handles POST /api/dashboard/refresh: it drops the cached snapshot
// and recomputes from the file currently on disk.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "refreshing snapshot",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	snapshot, err := h.service.Refresh(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   snapshot,
	})
}
