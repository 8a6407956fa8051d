// Package handler exposes the statement pipeline over HTTP: PDF upload with
// JSON preview, and spreadsheet download of a previously processed document.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bcakit/mutasi2xlsx/internal/domain/category"
	"github.com/bcakit/mutasi2xlsx/internal/domain/export"
	"github.com/bcakit/mutasi2xlsx/internal/domain/statement"
	"github.com/bcakit/mutasi2xlsx/internal/domain/statement/service"
)

// RuleSource supplies the stored category rules used when a request does
// not carry its own list.
type RuleSource interface {
	List(ctx context.Context) ([]category.Rule, error)
}

// StatementHandler handles statement upload and download requests.
type StatementHandler struct {
	svc            *service.StatementService
	sessions       *SessionStore
	rules          RuleSource
	logger         *slog.Logger
	previewRows    int
	maxUploadBytes int64
}

// NewStatementHandler creates a new statement handler.
func NewStatementHandler(svc *service.StatementService, sessions *SessionStore, rules RuleSource, logger *slog.Logger, previewRows int, maxUploadBytes int64) *StatementHandler {
	return &StatementHandler{
		svc:            svc,
		sessions:       sessions,
		rules:          rules,
		logger:         logger,
		previewRows:    previewRows,
		maxUploadBytes: maxUploadBytes,
	}
}

// Register wires the handler's routes onto the mux.
func (h *StatementHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /upload", h.Upload)
	mux.HandleFunc("POST /download", h.Download)
}

// uploadResponse mirrors the preview payload the UI renders after upload.
type uploadResponse struct {
	DocumentID string                        `json:"document_id"`
	TotalRows  int                           `json:"total_rows"`
	Columns    []string                      `json:"columns"`
	Preview    []statement.TransactionRecord `json:"preview"`
	Statistics uploadStatistics              `json:"statistics"`
}

type uploadStatistics struct {
	TotalTransactions int  `json:"total_transactions"`
	ColumnsCount      int  `json:"columns_count"`
	HasDateRange      bool `json:"has_date_range"`
}

// Upload accepts a multipart PDF, runs the pipeline, stores the result for
// later download, and responds with a bounded preview.
func (h *StatementHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if !strings.EqualFold(strings.TrimPrefix(filepathExt(header.Filename), "."), "pdf") {
		writeError(w, http.StatusBadRequest, "file must be a PDF")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	rules, err := h.requestRules(r.Context(), r.FormValue("categories"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid categories payload")
		return
	}

	result, err := h.svc.ProcessPDF(r.Context(), data, rules)
	if err != nil {
		h.respondPipelineError(w, r, err)
		return
	}

	id := h.sessions.Put(result.Records)

	preview := result.Records
	if len(preview) > h.previewRows {
		preview = preview[:h.previewRows]
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		DocumentID: id.String(),
		TotalRows:  len(result.Records),
		Columns:    result.Columns,
		Preview:    preview,
		Statistics: uploadStatistics{
			TotalTransactions: len(result.Records),
			ColumnsCount:      len(result.Columns),
			HasDateRange:      true,
		},
	})
}

type downloadRequest struct {
	DocumentID string          `json:"document_id"`
	Categories []category.Rule `json:"categories"`
	Format     string          `json:"format"`
}

// Download streams the spreadsheet for a previously uploaded document,
// re-annotated with the rules supplied in the request (if any).
func (h *StatementHandler) Download(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := uuid.Parse(req.DocumentID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document_id")
		return
	}

	records, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no transaction data found, upload a PDF first")
		return
	}

	if len(req.Categories) > 0 {
		records = h.svc.Annotate(records, req.Categories)
	}
	// Upload may already have annotated the stored records; the CATEGORY
	// column is kept whenever any record carries one.
	categorized := slices.ContainsFunc(records, func(r statement.TransactionRecord) bool {
		return r.Category != ""
	})

	format := strings.ToLower(req.Format)
	if format == "" {
		format = "xlsx"
	}

	var payload []byte
	var contentType string
	switch format {
	case "xlsx":
		payload, err = export.WriteXLSX(records, categorized)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		payload, err = export.WriteCSV(records, categorized)
		contentType = "text/csv"
	default:
		writeError(w, http.StatusBadRequest, "unsupported format: "+req.Format)
		return
	}
	if err != nil {
		h.logger.Error("failed to serialize export", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to generate export file")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(format, time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// requestRules decodes the per-request category rules; when the request
// carries none, the stored rule list is used instead.
func (h *StatementHandler) requestRules(ctx context.Context, raw string) ([]category.Rule, error) {
	if strings.TrimSpace(raw) != "" {
		var rules []category.Rule
		if err := json.Unmarshal([]byte(raw), &rules); err != nil {
			return nil, err
		}
		return rules, nil
	}
	if h.rules == nil {
		return nil, nil
	}
	rules, err := h.rules.List(ctx)
	if err != nil {
		// The store failing must not block extraction; proceed unannotated.
		h.logger.Warn("failed to load stored category rules", slog.Any("error", err))
		return nil, nil
	}
	return rules, nil
}

func (h *StatementHandler) respondPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, statement.ErrEmptyExtraction),
		errors.Is(err, statement.ErrNoTableFound),
		errors.Is(err, statement.ErrNoValidRows):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("failed to process statement", slog.Any("error", err))
		writeError(w, http.StatusBadRequest, "error processing PDF: "+err.Error())
	}
}

func filepathExt(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx:]
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
