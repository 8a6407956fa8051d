package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bcakit/mutasi2xlsx/internal/domain/category"
	"github.com/bcakit/mutasi2xlsx/internal/domain/statement"
	"github.com/bcakit/mutasi2xlsx/internal/domain/statement/service"
)

type staticRules []category.Rule

func (s staticRules) List(context.Context) ([]category.Rule, error) {
	return s, nil
}

func newTestHandler(t *testing.T) (*StatementHandler, *SessionStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := NewSessionStore(time.Minute)
	svc := service.NewStatementService(logger)
	h := NewStatementHandler(svc, sessions, staticRules(nil), logger, 100, 16<<20)
	return h, sessions
}

func multipartUpload(t *testing.T, filename string, content []byte, categories string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)

	if categories != "" {
		require.NoError(t, mw.WriteField("categories", categories))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	return payload["error"]
}

func TestUpload(t *testing.T) {
	t.Run("rejects non-PDF uploads", func(t *testing.T) {
		h, _ := newTestHandler(t)
		rec := httptest.NewRecorder()

		h.Upload(rec, multipartUpload(t, "statement.txt", []byte("hello"), ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "file must be a PDF", decodeError(t, rec))
	})

	t.Run("rejects requests without a file part", func(t *testing.T) {
		h, _ := newTestHandler(t)

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/upload", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		rec := httptest.NewRecorder()
		h.Upload(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "no file provided", decodeError(t, rec))
	})

	t.Run("rejects malformed category JSON", func(t *testing.T) {
		h, _ := newTestHandler(t)
		rec := httptest.NewRecorder()

		h.Upload(rec, multipartUpload(t, "statement.pdf", []byte("%PDF"), "{not json"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid categories payload", decodeError(t, rec))
	})

	t.Run("unreadable PDF bytes fail the pipeline", func(t *testing.T) {
		h, _ := newTestHandler(t)
		rec := httptest.NewRecorder()

		h.Upload(rec, multipartUpload(t, "statement.pdf", []byte("not really a pdf"), ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec), "error processing PDF")
	})
}

func TestDownload(t *testing.T) {
	amount := 100000.0
	records := []statement.TransactionRecord{
		{Date: "01/03", ShortDesc: "TRSF", Detail: "PAYMENT INDOMARET JKT", Amount: &amount},
	}

	downloadReq := func(body string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/download", strings.NewReader(body))
	}

	t.Run("streams an XLSX workbook", func(t *testing.T) {
		h, sessions := newTestHandler(t)
		id := sessions.Put(records)

		rec := httptest.NewRecorder()
		h.Download(rec, downloadReq(`{"document_id":"`+id.String()+`"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "bank_transaction_")
		assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Transactions")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.NotContains(t, rows[0], "CATEGORY")
	})

	t.Run("upload-time categories survive a plain download", func(t *testing.T) {
		h, sessions := newTestHandler(t)
		annotated := []statement.TransactionRecord{
			{Date: "01/03", ShortDesc: "TRSF", Detail: "PAYMENT INDOMARET JKT", Amount: &amount, Category: "Grocery"},
		}
		id := sessions.Put(annotated)

		rec := httptest.NewRecorder()
		h.Download(rec, downloadReq(`{"document_id":"`+id.String()+`"}`))

		require.Equal(t, http.StatusOK, rec.Code)

		f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Transactions")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t,
			[]string{"TANGGAL", "KETERANGAN", "DETAIL TRANSAKSI", "CATEGORY", "MUTASI", "SALDO"},
			rows[0])
		assert.Equal(t, "Grocery", rows[1][3])
	})

	t.Run("request rules re-annotate before export", func(t *testing.T) {
		h, sessions := newTestHandler(t)
		id := sessions.Put(records)

		body := `{"document_id":"` + id.String() + `","format":"csv",` +
			`"categories":[{"category":"Grocery","keywords":["indomaret"]}]}`

		rec := httptest.NewRecorder()
		h.Download(rec, downloadReq(body))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "CATEGORY")
		assert.Contains(t, lines[1], "Grocery")
	})

	t.Run("unknown document ID is 404", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := httptest.NewRecorder()
		h.Download(rec, downloadReq(`{"document_id":"5c6a7c71-52f8-4a8c-9b3f-111111111111"}`))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "no transaction data found, upload a PDF first", decodeError(t, rec))
	})

	t.Run("malformed document ID is 400", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := httptest.NewRecorder()
		h.Download(rec, downloadReq(`{"document_id":"not-a-uuid"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported format is 400", func(t *testing.T) {
		h, sessions := newTestHandler(t)
		id := sessions.Put(records)

		rec := httptest.NewRecorder()
		h.Download(rec, downloadReq(`{"document_id":"`+id.String()+`","format":"pdf"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec), "unsupported format")
	})

	t.Run("invalid body is 400", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := httptest.NewRecorder()
		h.Download(rec, downloadReq(`{broken`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
