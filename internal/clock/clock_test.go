package clock_test

import (
	"testing"
	"time"

	"github.com/petasbytes/nanda-agents/internal/clock"
)

func TestFake_AdvanceAndSet(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := clock.NewFake(base)

	if got := f.Now(); !got.Equal(base) {
		t.Fatalf("initial Now: got %v want %v", got, base)
	}

	f.Advance(90 * time.Second)
	if got := f.Now(); !got.Equal(base.Add(90 * time.Second)) {
		t.Fatalf("after Advance: got %v", got)
	}

	pin := base.Add(24 * time.Hour)
	f.Set(pin)
	if got := f.Now(); !got.Equal(pin) {
		t.Fatalf("after Set: got %v want %v", got, pin)
	}
}

func TestReal_TracksWallClock(t *testing.T) {
	before := time.Now()
	got := clock.Real().Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Fatalf("Real().Now() outside [%v, %v]: %v", before, after, got)
	}
}
