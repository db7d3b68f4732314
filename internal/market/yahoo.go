package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

// YahooSource fetches daily bars from the Yahoo Finance v8 chart API.
type YahooSource struct {
	// BaseURL is overridable in tests; production uses the default.
	BaseURL string
	Client  *http.Client
}

const defaultYahooBase = "https://query1.finance.yahoo.com"

// NewYahooSource returns a source against the public Yahoo endpoint
// with a 10-second request timeout.
func NewYahooSource() *YahooSource {
	return &YahooSource{
		BaseURL: defaultYahooBase,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// DailyBars requests five days of daily bars and drops bars whose
// quote values are null (market holidays come back as nulls in the
// quote arrays). Bars are returned oldest-first.
func (y *YahooSource) DailyBars(ctx context.Context, ticker string) ([]Bar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=5d&interval=1d",
		y.BaseURL, url.PathEscape(ticker))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "nanda-agents/0.1")

	resp, err := y.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch chart: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch chart: provider returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chart body: %w", err)
	}

	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		if desc := gjson.GetBytes(body, "chart.error.description"); desc.Exists() {
			return nil, fmt.Errorf("chart error: %s", desc.String())
		}
		return nil, ErrNoData
	}

	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()

	var bars []Bar
	for i := range timestamps {
		if i >= len(opens) || i >= len(highs) || i >= len(lows) || i >= len(closes) {
			break
		}
		// Holidays and half-days appear as nulls; skip the whole bar.
		if opens[i].Type == gjson.Null || highs[i].Type == gjson.Null ||
			lows[i].Type == gjson.Null || closes[i].Type == gjson.Null {
			continue
		}
		bars = append(bars, Bar{
			Time:  time.Unix(timestamps[i].Int(), 0).UTC(),
			Open:  opens[i].Float(),
			High:  highs[i].Float(),
			Low:   lows[i].Float(),
			Close: closes[i].Float(),
		})
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	return bars, nil
}
