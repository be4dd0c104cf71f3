package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/yahoo"
)

// Bar is one daily session served by the mock Yahoo server.
type Bar struct {
	Date     time.Time
	Close    float64
	AdjClose float64 // zero means "same as Close"
	Missing  bool    // serve a null close
}

// YahooServer is an httptest server speaking the chart API.
//
// Example usage:
//
//	srv := testutil.NewYahooServer(t).
//	    WithChart("AAPL", testutil.Bar{Date: day, Close: 125.5})
//	client := yahoo.NewClient(srv.URL, time.Second)
type YahooServer struct {
	*httptest.Server

	mu       sync.Mutex
	charts   map[string][]Bar
	requests map[string]int
}

// NewYahooServer starts a mock server that is closed when the test ends.
func NewYahooServer(t *testing.T) *YahooServer {
	t.Helper()

	s := &YahooServer{
		charts:   make(map[string][]Bar),
		requests: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serveChart))
	t.Cleanup(s.Close)
	return s
}

// WithChart registers the sessions of symbol.
func (s *YahooServer) WithChart(symbol string, bars ...Bar) *YahooServer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charts[symbol] = append(s.charts[symbol], bars...)
	return s
}

// Requests returns how often symbol was queried.
func (s *YahooServer) Requests(symbol string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[symbol]
}

func (s *YahooServer) serveChart(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")
	p1, _ := strconv.ParseInt(r.URL.Query().Get("period1"), 10, 64)
	p2, _ := strconv.ParseInt(r.URL.Query().Get("period2"), 10, 64)

	s.mu.Lock()
	s.requests[symbol]++
	bars, ok := s.charts[symbol]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(yahoo.Response{Chart: yahoo.Chart{
			Error: &yahoo.Error{Code: "Not Found", Description: "No data found, symbol may be delisted"},
		}})
		return
	}

	result := yahoo.Result{Meta: yahoo.Meta{Symbol: symbol, Currency: "USD"}}
	quote := yahoo.Quote{}
	adj := yahoo.AdjClose{}
	for _, b := range bars {
		ts := b.Date.Unix()
		if ts < p1 || ts >= p2 {
			continue
		}
		result.Timestamp = append(result.Timestamp, ts)
		if b.Missing {
			quote.Close = append(quote.Close, nil)
			adj.AdjClose = append(adj.AdjClose, nil)
			continue
		}
		closePrice := b.Close
		adjPrice := b.AdjClose
		if adjPrice == 0 {
			adjPrice = closePrice
		}
		quote.Close = append(quote.Close, &closePrice)
		adj.AdjClose = append(adj.AdjClose, &adjPrice)
	}
	result.Indicators = yahoo.Indicators{Quote: []yahoo.Quote{quote}, AdjClose: []yahoo.AdjClose{adj}}

	_ = json.NewEncoder(w).Encode(yahoo.Response{Chart: yahoo.Chart{Result: []yahoo.Result{result}}})
}
