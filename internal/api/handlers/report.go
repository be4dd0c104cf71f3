package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/apperrors"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/service"
)

// uploadFields are the multipart fields read, in order. file1..file3 are the
// fixed slots of the upload form; files takes any number of statements.
var uploadFields = []string{"file1", "file2", "file3", "files"}

// ReportHandler handles statement uploads
type ReportHandler struct {
	reportService *service.ReportService
	maxUploadSize int64
	log           *logrus.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService, maxUploadSize int64, log *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

// Generate handles POST requests carrying one or more CSV statements and
// returns the computed portfolio report.
//
// Endpoint: POST /api/report
// Request: multipart/form-data with file1, file2, file3 and/or files
// Response: 200 OK with model.Report
// Error: 400 Bad Request for invalid uploads, 413 when the body is too large
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respondError(w, http.StatusRequestEntityTooLarge, "upload too large", err.Error())
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			respondError(w, http.StatusBadRequest, "invalid upload", apperrors.ErrNoValidFiles.Error())
		default:
			respondError(w, http.StatusBadRequest, "invalid upload", err.Error())
		}
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	var uploads []service.UploadedFile
	for _, field := range uploadFields {
		for _, fh := range r.MultipartForm.File[field] {
			if fh.Filename == "" {
				continue
			}
			f, err := fh.Open()
			if err != nil {
				respondError(w, http.StatusBadRequest, "invalid upload", (&apperrors.FileError{Source: fh.Filename, Err: err}).Error())
				return
			}
			defer func(f multipart.File) { _ = f.Close() }(f)
			uploads = append(uploads, service.UploadedFile{Name: fh.Filename, Body: f})
		}
	}

	report, err := h.reportService.Generate(r.Context(), uploads)
	if err != nil {
		if apperrors.IsInputError(err) {
			h.log.WithError(err).Info("report request rejected")
			respondError(w, http.StatusBadRequest, "invalid upload", err.Error())
			return
		}
		h.log.WithError(err).Error("report generation failed")
		respondError(w, http.StatusInternalServerError, "failed to generate report", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, report)
}
