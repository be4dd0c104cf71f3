// Package yahoo is a small client for the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ndewijer/Portfolio-Statement-Analyzer/internal/apperrors"
)

// ErrNoData is returned when a chart holds no usable price.
var ErrNoData = errors.New("no price data returned")

// DefaultBaseURL is the public chart API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches daily price charts.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against baseURL. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// QuerySymbolByDateRange fetches daily bars for symbol between start and end.
// Yahoo treats period2 as exclusive, so end should be one day past the last
// wanted session.
func (c *Client) QuerySymbolByDateRange(ctx context.Context, symbol string, start, end time.Time) (PriceChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL,
		url.PathEscape(symbol),
		start.Unix(),
		end.Unix(),
	)
	resp, err := c.query(ctx, u)
	if err != nil {
		return PriceChart{}, fmt.Errorf("query %s: %w", symbol, err)
	}
	chart, err := ParseChart(resp)
	if err != nil {
		return PriceChart{}, fmt.Errorf("parse %s: %w", symbol, err)
	}
	return chart, nil
}

func (c *Client) query(ctx context.Context, u string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Response{}, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
		}
		return Response{}, err
	}
	if e := response.Chart.Error; e != nil {
		err := fmt.Errorf("yahoo error: %s: %s", e.Code, e.Description)
		if e.Code == "Not Found" {
			return Response{}, fmt.Errorf("%w: %w", apperrors.ErrSymbolNotFound, err)
		}
		return Response{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}
	return response, nil
}

// ParseChart flattens the first result of a Response into price points.
// Sessions with a null close are skipped. A missing adjusted close falls
// back to the close.
func ParseChart(r Response) (PriceChart, error) {
	if len(r.Chart.Result) == 0 {
		return PriceChart{}, ErrNoData
	}
	result := r.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return PriceChart{}, ErrNoData
	}

	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths: %d timestamps, %d closes", len(result.Timestamp), len(closes))
	}
	var adjusted []*float64
	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) == len(closes) {
		adjusted = result.Indicators.AdjClose[0].AdjClose
	}

	points := make([]PricePoint, 0, len(closes))
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		p := PricePoint{
			Date:          time.Unix(ts, 0).UTC(),
			Close:         *closes[i],
			AdjustedClose: *closes[i],
		}
		if adjusted != nil && adjusted[i] != nil {
			p.AdjustedClose = *adjusted[i]
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return PriceChart{}, ErrNoData
	}

	return PriceChart{
		Symbol:   result.Meta.Symbol,
		Currency: result.Meta.Currency,
		Points:   points,
	}, nil
}
