package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/logging"
	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/testutil"
)

// reportBody mirrors the JSON shape of model.Report for decoding.
type reportBody struct {
	ID      string `json:"id"`
	Summary []struct {
		Symbol   string             `json:"symbol"`
		Quantity float64            `json:"quantity"`
		Totals   map[string]float64 `json:"totals"`
		Position string             `json:"position"`
		XIRR     *float64           `json:"xirr"`
	} `json:"summary"`
	Transactions []map[string]any              `json:"transactions"`
	TimeSeries   map[string]map[string]float64 `json:"timeseries"`
	DroppedRows  int                           `json:"droppedRows"`
}

func TestReportHandler_Generate(t *testing.T) {
	setupHandler := func(t *testing.T) *ReportHandler {
		t.Helper()
		return NewReportHandler(testutil.NewTestOfflineReportService(t), 1<<20, logging.Discard())
	}
	buy := testutil.NewStatement().Trade("X", 10, 100, testutil.Day(2021, time.June, 1)).String()

	t.Run("returns the report for a single upload", func(t *testing.T) {
		handler := setupHandler(t)
		req := testutil.NewMultipartRequest(t, "/api/report",
			testutil.UploadPart{Field: "file1", Filename: "trades.csv", Content: buy},
		)
		w := httptest.NewRecorder()

		handler.Generate(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var body reportBody
		testutil.DecodeJSON(t, w, &body)

		assert.NotEmpty(t, body.ID)
		require.Len(t, body.Summary, 1)
		assert.Equal(t, "Buy", body.Summary[0].Position)
		assert.Equal(t, 1000.0, body.Summary[0].Totals["USD"])
		assert.Equal(t, 75000.0, body.Summary[0].Totals["INR"])
		assert.Nil(t, body.Summary[0].XIRR, "unavailable XIRR is null")
		assert.Equal(t, map[string]map[string]float64{
			"2021-06-01": {"USD": 1000, "INR": 75000, "EUR": 850, "GBP": 750},
		}, body.TimeSeries)
	})

	t.Run("reads every slot and the files field", func(t *testing.T) {
		handler := setupHandler(t)
		req := testutil.NewMultipartRequest(t, "/api/report",
			testutil.UploadPart{Field: "file1", Filename: "a.csv", Content: buy},
			testutil.UploadPart{Field: "file3", Filename: "b.csv",
				Content: testutil.NewStatement().Trade("Y", 1, 5, testutil.Day(2021, time.June, 2)).String()},
			testutil.UploadPart{Field: "files", Filename: "c.csv",
				Content: testutil.NewStatement().Trade("Z", -1, 5, testutil.Day(2021, time.June, 3)).String()},
			testutil.UploadPart{Field: "other", Filename: "ignored.csv", Content: "not,a,statement\n"},
		)
		w := httptest.NewRecorder()

		handler.Generate(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var body reportBody
		testutil.DecodeJSON(t, w, &body)
		assert.Len(t, body.Summary, 3)
		assert.Len(t, body.Transactions, 3)
	})

	t.Run("rejects a file with missing columns", func(t *testing.T) {
		handler := setupHandler(t)
		req := testutil.NewMultipartRequest(t, "/api/report",
			testutil.UploadPart{Field: "file1", Filename: "bad.csv", Content: "Symbol,Quantity\nX,1\n"},
		)
		w := httptest.NewRecorder()

		handler.Generate(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]string
		testutil.DecodeJSON(t, w, &body)
		assert.Equal(t, "invalid upload", body["error"])
		assert.True(t, strings.HasPrefix(body["detail"],
			"File bad.csv must contain columns: Symbol, Quantity, T. Price, Date/Time"), body["detail"])
	})

	t.Run("rejects a request without files", func(t *testing.T) {
		handler := setupHandler(t)
		req := testutil.NewMultipartRequest(t, "/api/report")
		w := httptest.NewRecorder()

		handler.Generate(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]string
		testutil.DecodeJSON(t, w, &body)
		assert.Equal(t, "please upload at least one valid file", body["detail"])
	})

	t.Run("rejects a non-multipart body", func(t *testing.T) {
		handler := setupHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(buy))
		req.Header.Set("Content-Type", "text/csv")
		w := httptest.NewRecorder()

		handler.Generate(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects uploads where every row is invalid", func(t *testing.T) {
		handler := setupHandler(t)
		req := testutil.NewMultipartRequest(t, "/api/report",
			testutil.UploadPart{Field: "file2", Filename: "junk.csv",
				Content: testutil.NewStatement().Row("X", "abc", "1", "2021-01-01", "").String()},
		)
		w := httptest.NewRecorder()

		handler.Generate(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReferenceHandler_Reference(t *testing.T) {
	handler := NewReferenceHandler(testutil.NewTestOfflineReportService(t))
	req := httptest.NewRequest(http.MethodGet, "/api/reference", nil)
	w := httptest.NewRecorder()

	handler.Reference(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Splits        []json.RawMessage  `json:"splits"`
		ExchangeRates map[string]float64 `json:"exchangeRates"`
		DefaultRate   float64            `json:"defaultRate"`
	}
	testutil.DecodeJSON(t, w, &body)
	assert.Len(t, body.Splits, 3)
	assert.Equal(t, 74.0, body.ExchangeRates["2020-08-31"])
	assert.Equal(t, 75.0, body.DefaultRate)
}
