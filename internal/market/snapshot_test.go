package market_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/nanda-agents/internal/market"
)

func bar(day int, open, high, low, close float64) market.Bar {
	return market.Bar{
		Time: time.Date(2025, 6, day, 20, 0, 0, 0, time.UTC),
		Open: open, High: high, Low: low, Close: close,
	}
}

func TestBuildSnapshot_ChangeAgainstPriorClose(t *testing.T) {
	bars := []market.Bar{
		bar(2, 5000, 5050, 4990, 5020),
		bar(3, 5020, 5105.456, 5010, 5100.123),
	}

	snap, err := market.BuildSnapshot(bars, "yahoo")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-03", snap.Date)
	assert.Equal(t, "2025-06-03T20:00:00Z", snap.AsOf)
	assert.Equal(t, 5020.0, snap.Open)
	assert.Equal(t, 5105.46, snap.High)
	assert.Equal(t, 5100.12, snap.Close)
	assert.Equal(t, 80.12, snap.Change) // 5100.123 - 5020, rounded
	assert.Equal(t, 1.6, snap.ChangePct)
	assert.Equal(t, "yahoo", snap.Source)
	assert.Empty(t, snap.Human)
}

func TestBuildSnapshot_SingleBarHasZeroChange(t *testing.T) {
	snap, err := market.BuildSnapshot([]market.Bar{bar(2, 10, 12, 9, 11)}, "yahoo")
	require.NoError(t, err)
	assert.Equal(t, 0.0, snap.Change)
	assert.Equal(t, 0.0, snap.ChangePct)
	assert.Equal(t, 11.0, snap.Close)
}

func TestBuildSnapshot_EmptyIsError(t *testing.T) {
	_, err := market.BuildSnapshot(nil, "yahoo")
	assert.ErrorIs(t, err, market.ErrNoData)
}

func TestFallbackBlurb(t *testing.T) {
	up := market.Snapshot{Close: 5100.12, Change: 80.12, ChangePct: 1.6}
	assert.Equal(t, "S&P 500 closed up 80.12 (1.60%) at 5100.12.", market.FallbackBlurb(up))

	down := market.Snapshot{Close: 4900.5, Change: -25.25, ChangePct: -0.51}
	assert.Equal(t, "S&P 500 closed down 25.25 (-0.51%) at 4900.50.", market.FallbackBlurb(down))
}
