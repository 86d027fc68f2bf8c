package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "assetpulse/internal/errors"
	"assetpulse/internal/exporter"
)

// ExportHandler streams snapshot exports as file downloads
type ExportHandler struct {
	service      DashboardServiceInterface
	exporter     *exporter.Exporter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler
func NewExportHandler(service DashboardServiceInterface, exp *exporter.Exporter, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		exporter:     exp,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/{format}", func(r chi.Router) {
		r.Use(h.FormatCtx)
		r.Get("/", h.Download)
	})

	return r
}

// FormatCtx middleware validates the export format parameter
func (h *ExportHandler) FormatCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format := chi.URLParam(r, "format")
		if !exporter.ValidFormat(format) {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", fmt.Sprintf("Unsupported export format: %s", format)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Download handles GET /api/export/{format}
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")

	h.logger.InfoContext(r.Context(), "exporting snapshot",
		slog.String("format", format),
		slog.String("path", r.URL.Path),
	)

	snapshot, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", exporter.ContentType(format))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", exporter.Filename(format, time.Now())))

	switch format {
	case exporter.FormatCSV:
		err = h.exporter.WriteCSV(r.Context(), w, snapshot, exporter.CSVOptions{BOMPrefix: true})
	case exporter.FormatXLSX:
		err = h.exporter.WriteXLSX(r.Context(), w, snapshot)
	case exporter.FormatPDF:
		err = h.exporter.WritePDF(r.Context(), w, snapshot)
	}

	if err != nil {
		// Headers are gone at this point; log and abandon the response
		h.logger.ErrorContext(r.Context(), "export stream failed",
			slog.String("format", format),
			slog.String("error", err.Error()),
		)
	}
}
