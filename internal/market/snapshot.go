// Package market implements the index snapshot service: it reduces
// recent daily bars from an external data provider to a one-day
// summary and serves it over HTTP alongside health, catalog, and
// registry-announce endpoints.
package market

import (
	"context"
	"errors"
	"math"
	"time"
)

// Bar is one daily OHLC bar, oldest-first in any slice of bars.
type Bar struct {
	Time  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Source fetches recent daily bars for a ticker.
type Source interface {
	DailyBars(ctx context.Context, ticker string) ([]Bar, error)
}

// Snapshot is the latest daily summary for the index.
type Snapshot struct {
	AsOf      string  `json:"asof"`
	Date      string  `json:"date"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
	Source    string  `json:"source"`
	Human     string  `json:"human,omitempty"`
}

// ErrNoData is returned when the provider yields no usable bars.
var ErrNoData = errors.New("no data returned")

// BuildSnapshot reduces daily bars to a snapshot of the last bar with
// change measured against the prior close. A single bar yields zero
// change. Values are rounded to two decimals.
func BuildSnapshot(bars []Bar, source string) (Snapshot, error) {
	if len(bars) == 0 {
		return Snapshot{}, ErrNoData
	}
	last := bars[len(bars)-1]

	prevClose := last.Close
	if len(bars) >= 2 {
		prevClose = bars[len(bars)-2].Close
	}
	change := last.Close - prevClose
	pct := 0.0
	if prevClose != 0 {
		pct = change / prevClose * 100
	}

	return Snapshot{
		AsOf:      last.Time.Format(time.RFC3339),
		Date:      last.Time.Format("2006-01-02"),
		Open:      round2(last.Open),
		High:      round2(last.High),
		Low:       round2(last.Low),
		Close:     round2(last.Close),
		Change:    round2(change),
		ChangePct: round2(pct),
		Source:    source,
	}, nil
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
