// Package agent implements the rate-limited command agent: admission
// control, slash-command dispatch, fallback composition, and durable
// memory bookkeeping, one Handle call per inbound message.
package agent

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petasbytes/nanda-agents/internal/clock"
	"github.com/petasbytes/nanda-agents/internal/memstore"
	"github.com/petasbytes/nanda-agents/internal/ratelimit"
	"github.com/petasbytes/nanda-agents/internal/telemetry"
	"github.com/petasbytes/nanda-agents/internal/textstat"
	"github.com/petasbytes/nanda-agents/internal/tools"
)

// DefaultRatePerMin is the admission limit used when none is configured.
const DefaultRatePerMin = 60

// rateLimitedReply is the plain-text denial. Admission denial is not
// an error; it is a reply.
const rateLimitedReply = "Rate limit exceeded. Try again in a minute."

// Options configures a new Agent.
type Options struct {
	Name       string
	Version    string
	MemoryPath string
	RatePerMin int
	Clock      clock.Clock
	Logger     *zap.Logger
}

// Agent owns the shared mutable state (memory document, rate window)
// and serializes every message through one lock, making each
// read-decide-mutate-persist sequence atomic under concurrent callers.
type Agent struct {
	mu      sync.Mutex
	id      string
	name    string
	version string
	path    string
	doc     memstore.Document
	limiter *ratelimit.Limiter
	tools   []tools.Definition
	clk     clock.Clock
	logger  *zap.Logger
	started time.Time
	latest  string
}

// New builds an Agent, loading (or initializing) the memory document
// at opts.MemoryPath.
func New(opts Options) *Agent {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RatePerMin <= 0 {
		opts.RatePerMin = DefaultRatePerMin
	}
	a := &Agent{
		id:      opts.Name + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		name:    opts.Name,
		version: opts.Version,
		path:    opts.MemoryPath,
		clk:     opts.Clock,
		logger:  opts.Logger,
		started: opts.Clock.Now(),
	}
	a.doc = memstore.LoadOrInit(opts.MemoryPath, opts.Clock, opts.Logger)
	a.limiter = ratelimit.New(opts.RatePerMin, opts.Clock)
	a.tools = tools.Registry(a)
	return a
}

// Reply is the outcome of processing one message.
type Reply struct {
	Text        string
	RateLimited bool
}

// Handle processes one inbound message and returns exactly one reply
// string. The only error path is a refused durable write; every other
// failure is reported inline as reply text.
func (a *Agent) Handle(ctx context.Context, message string) (string, error) {
	r, err := a.Process(ctx, message)
	return r.Text, err
}

// Process is Handle with the admission outcome exposed, for transports
// that map denial to a status code.
func (a *Agent) Process(ctx context.Context, message string) (Reply, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.limiter.Admit() {
		a.logger.Debug("message denied by rate limiter",
			zap.Int("limit", a.limiter.Limit()))
		telemetry.Emit("rate_limited", map[string]any{"limit": a.limiter.Limit()})
		return Reply{Text: rateLimitedReply, RateLimited: true}, nil
	}

	out, isCommand, err := a.dispatch(ctx, message)
	if err != nil {
		return Reply{}, err
	}
	if !isCommand {
		out = a.compose(message)
	}

	a.doc.Metrics.Messages++
	if err := memstore.Save(a.path, a.doc); err != nil {
		return Reply{}, err
	}
	a.latest = out

	feat := textstat.Count(message)
	telemetry.Emit("message_handled", map[string]any{
		"command": isCommand,
		"bytes":   feat.Bytes,
		"words":   feat.Words,
	})
	return Reply{Text: out}, nil
}

// Doc returns the live memory document. Only tool handlers invoked
// under Process's lock may touch it.
func (a *Agent) Doc() *memstore.Document { return &a.doc }

// Persist durably writes the current document.
func (a *Agent) Persist() error { return memstore.Save(a.path, a.doc) }

// Now returns the agent's current wall-clock time.
func (a *Agent) Now() time.Time { return a.clk.Now() }

// Tools returns the agent's tool catalog.
func (a *Agent) Tools() []tools.Definition { return a.tools }

// Stats is a point-in-time view of the agent for health reporting.
type Stats struct {
	ID        string
	Name      string
	Version   string
	Messages  int64
	UptimeSec int64
	RateLimit int
	Latest    string
}

// Stats snapshots the agent's counters under the lock.
func (a *Agent) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Stats{
		ID:        a.id,
		Name:      a.name,
		Version:   a.version,
		Messages:  a.doc.Metrics.Messages,
		UptimeSec: int64(a.clk.Now().Sub(a.started).Seconds()),
		RateLimit: a.limiter.Limit(),
		Latest:    a.latest,
	}
}
