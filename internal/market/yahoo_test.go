package market_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/nanda-agents/internal/market"
)

const chartPayload = `{
  "chart": {
    "result": [
      {
        "meta": {"symbol": "^GSPC"},
        "timestamp": [1748874600, 1748961000, 1749047400],
        "indicators": {
          "quote": [
            {
              "open":  [5000.1, null, 5020.2],
              "high":  [5050.0, null, 5110.9],
              "low":   [4990.0, null, 5005.3],
              "close": [5020.0, null, 5100.5]
            }
          ]
        }
      }
    ],
    "error": null
  }
}`

func yahooTestSource(t *testing.T, status int, body string) (*market.YahooSource, *string) {
	t.Helper()
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	src := market.NewYahooSource()
	src.BaseURL = srv.URL
	return src, &gotPath
}

func TestDailyBars_ParsesAndDropsNullBars(t *testing.T) {
	src, gotPath := yahooTestSource(t, http.StatusOK, chartPayload)

	bars, err := src.DailyBars(context.Background(), "^GSPC")
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/%5EGSPC", *gotPath)

	// The middle bar is all nulls (holiday) and must be dropped.
	require.Len(t, bars, 2)
	assert.Equal(t, 5020.0, bars[0].Close)
	assert.Equal(t, 5100.5, bars[1].Close)
	assert.Equal(t, 5020.2, bars[1].Open)
	assert.True(t, bars[0].Time.Before(bars[1].Time), "bars must stay oldest-first")
}

func TestDailyBars_ChartErrorPayload(t *testing.T) {
	src, _ := yahooTestSource(t, http.StatusOK,
		`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`)

	_, err := src.DailyBars(context.Background(), "BOGUS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbol may be delisted")
}

func TestDailyBars_AllNullBarsIsNoData(t *testing.T) {
	src, _ := yahooTestSource(t, http.StatusOK, `{
	  "chart": {"result": [{"timestamp": [1748874600],
	    "indicators": {"quote": [{"open": [null], "high": [null], "low": [null], "close": [null]}]}}]}}`)

	_, err := src.DailyBars(context.Background(), "^GSPC")
	assert.ErrorIs(t, err, market.ErrNoData)
}

func TestDailyBars_HTTPErrorStatus(t *testing.T) {
	src, _ := yahooTestSource(t, http.StatusTooManyRequests, "slow down")

	_, err := src.DailyBars(context.Background(), "^GSPC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
