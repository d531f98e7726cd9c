package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sheetpulse/internal/config"
	apierrors "sheetpulse/internal/errors"
	"sheetpulse/internal/exporter"
)

// multipartOverhead allows for boundaries and part headers on top of the
// file size limit
const multipartOverhead = 1 << 20

// AnalysisHandler accepts spreadsheet uploads and answers with the report
type AnalysisHandler struct {
	service         AnalysisServiceInterface
	logger          *slog.Logger
	errorHandler    *apierrors.ErrorHandler
	maxBytes        int64
	multipartMemory int64
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service AnalysisServiceInterface, cfg config.UploadConfig, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalysisHandler {
	memory := cfg.MultipartMemory
	if memory <= 0 {
		memory = config.DefaultMultipartMemory
	}
	return &AnalysisHandler{
		service:         service,
		logger:          logger.With(slog.String("component", "analysis_handler")),
		errorHandler:    errorHandler,
		maxBytes:        cfg.MaxBytes,
		multipartMemory: memory,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Analyze)
	return r
}

// Analyze handles POST /analyze with a multipart "file" field
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	}

	if err := r.ParseMultipartForm(h.multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.errorHandler.HandleError(w, r, apierrors.PayloadTooLargeError(h.maxBytes))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(config.UploadFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			h.errorHandler.HandleError(w, r, apierrors.ErrMissingFile)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(config.UploadFormField, "No selected file"))
		return
	}

	h.logger.DebugContext(ctx, "upload received",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	analysis, err := h.service.AnalyzeUpload(ctx, file, header.Filename)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var body bytes.Buffer
	if err := exporter.WriteReport(&body, analysis.Report); err != nil {
		h.errorHandler.HandleError(w, r, fmt.Errorf("%w: %s: %v", apierrors.ErrAnalysisFailed, header.Filename, err))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := body.WriteTo(w); err != nil {
		h.logger.ErrorContext(ctx, "failed to write report",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()))
	}
}
