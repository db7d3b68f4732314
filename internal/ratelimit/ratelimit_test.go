package ratelimit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/petasbytes/nanda-agents/internal/clock"
	"github.com/petasbytes/nanda-agents/internal/ratelimit"
)

func TestAdmit_FullWindowThenDeny(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	l := ratelimit.New(60, clk)

	for i := 0; i < 60; i++ {
		assert.True(t, l.Admit(), "call %d should be admitted", i+1)
	}
	assert.False(t, l.Admit(), "61st call in the same minute must be denied")
}

func TestAdmit_DenialDoesNotConsumeCapacity(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 30, 0, time.UTC))
	l := ratelimit.New(2, clk)

	assert.True(t, l.Admit())
	assert.True(t, l.Admit())
	for i := 0; i < 5; i++ {
		assert.False(t, l.Admit())
	}

	// Next window: both slots are available again, proving the denials
	// above never incremented the counter past the limit.
	clk.Advance(time.Minute)
	assert.True(t, l.Admit())
	assert.True(t, l.Admit())
	assert.False(t, l.Admit())
}

func TestAdmit_WindowBoundaryResets(t *testing.T) {
	// Start one second before the minute boundary.
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 59, 0, time.UTC))
	l := ratelimit.New(1, clk)

	assert.True(t, l.Admit())
	assert.False(t, l.Admit())

	// Crossing into the next bucket resets the counter even though
	// barely any wall time passed.
	clk.Advance(time.Second)
	assert.True(t, l.Admit())
}

func TestAdmit_BurstAcrossBoundary(t *testing.T) {
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 59, 0, time.UTC))
	l := ratelimit.New(3, clk)

	// A full burst at the end of one window and another at the start of
	// the next is allowed: fixed windows do not smooth.
	for i := 0; i < 3; i++ {
		assert.True(t, l.Admit())
	}
	clk.Advance(time.Second)
	for i := 0; i < 3; i++ {
		assert.True(t, l.Admit())
	}
	assert.False(t, l.Admit())
}

func TestLimit(t *testing.T) {
	l := ratelimit.New(42, clock.NewFake(time.Unix(0, 0)))
	assert.Equal(t, 42, l.Limit())
}
