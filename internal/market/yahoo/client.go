// Package yahoo is the quote source client for the Yahoo Finance v8
// chart API. A fetch either returns usable data or an error; "no data
// yet" from upstream is an error, never an empty success.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/linyc/twmonitor/pkg/config"
	"github.com/linyc/twmonitor/pkg/httputil"
	"github.com/linyc/twmonitor/pkg/logger"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client calls the Yahoo Finance chart API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a Yahoo Finance client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient.WithUserAgent(browserUserAgent),
		logger:     log.WithField("module", "yahoo"),
		baseURL:    cfg.Yahoo.BaseURL,
	}
}

// History is a daily close series plus the previous session's close.
type History struct {
	Closes    []float64
	PrevClose float64
}

// Quote is the live intraday view of an instrument.
type Quote struct {
	Price float64
	Open  float64
}

// FetchDailyHistory returns roughly two months of daily closes for symbol,
// oldest to newest, with null entries (non-trading gaps) removed.
func (c *Client) FetchDailyHistory(ctx context.Context, symbol string) (History, error) {
	result, err := c.fetchChart(ctx, symbol, "2mo", "1d")
	if err != nil {
		return History{}, err
	}

	var closes []float64
	if len(result.Indicators.Quote) > 0 {
		for _, p := range result.Indicators.Quote[0].Close {
			if p != nil {
				closes = append(closes, *p)
			}
		}
	}

	return History{
		Closes:    closes,
		PrevClose: result.Meta.ChartPreviousClose,
	}, nil
}

// FetchIntradayQuote returns the current price and the session-open price
// (first 5-minute bar). When the open series is empty, e.g. right at the
// opening auction, the previous close stands in for the open.
func (c *Client) FetchIntradayQuote(ctx context.Context, symbol string) (Quote, error) {
	result, err := c.fetchChart(ctx, symbol, "1d", "5m")
	if err != nil {
		return Quote{}, err
	}

	open := result.Meta.ChartPreviousClose
	if len(result.Indicators.Quote) > 0 {
		for _, p := range result.Indicators.Quote[0].Open {
			if p != nil {
				open = *p
				break
			}
		}
	}

	return Quote{
		Price: result.Meta.RegularMarketPrice,
		Open:  open,
	}, nil
}

// fetchChart calls the chart endpoint and unwraps the single result.
func (c *Client) fetchChart(ctx context.Context, symbol, dataRange, interval string) (*chartResult, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		c.baseURL, url.PathEscape(symbol), dataRange, interval)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("chart request failed for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart request for %s: unexpected status code %d", symbol, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chart response for %s: %w", symbol, err)
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse chart response for %s: %w", symbol, err)
	}

	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", symbol, parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart API returned no result for %s", symbol)
	}

	return &parsed.Chart.Result[0], nil
}

// chartResponse mirrors the subset of the v8 chart payload we consume.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		ChartPreviousClose float64 `json:"chartPreviousClose"`
	} `json:"meta"`
	Indicators struct {
		Quote []struct {
			Open  []*float64 `json:"open"`
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
