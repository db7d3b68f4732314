package market

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petasbytes/nanda-agents/internal/clock"
	"github.com/petasbytes/nanda-agents/internal/registry"
	"github.com/petasbytes/nanda-agents/internal/telemetry"
)

// Options configures a Service.
type Options struct {
	Name    string
	Version string
	Title   string
	Ticker  string

	// Addr is the listen address, used to build catalog URLs when no
	// public URL is configured.
	Addr string

	// PublicURL is the externally reachable base URL, when known.
	PublicURL string

	Source     Source
	Summarizer Summarizer

	// Registry is nil when no registry is configured; announce then
	// answers 400.
	Registry *registry.Client

	Clock  clock.Clock
	Logger *zap.Logger
}

// Service is the market snapshot HTTP service.
type Service struct {
	opts    Options
	ident   string
	started time.Time

	mu       sync.Mutex
	requests int64
}

// NewService builds a Service with a fresh instance ident.
func NewService(opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Summarizer == nil {
		opts.Summarizer = StaticSummarizer{}
	}
	return &Service{
		opts:    opts,
		ident:   "spx-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		started: opts.Clock.Now(),
	}
}

// Ident returns the per-process service identity.
func (s *Service) Ident() string { return s.ident }

// Health is the /svc/healthz response body.
type Health struct {
	OK       bool   `json:"ok"`
	Service  string `json:"service"`
	Version  string `json:"version"`
	ID       string `json:"id"`
	UptimeS  int64  `json:"uptime_s"`
	Requests int64  `json:"requests"`
}

// Catalog is the /svc/catalog response body.
type Catalog struct {
	Ident     string            `json:"ident"`
	Title     string            `json:"title"`
	Endpoints map[string]string `json:"endpoints"`
	About     map[string]any    `json:"about"`
}

// AnnounceResult is the /svc/announce success body.
type AnnounceResult struct {
	OK          bool   `json:"ok"`
	AnnouncedTo string `json:"announced_to"`
	As          string `json:"as"`
}

// Handler returns the /svc routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/svc/healthz", s.handleHealthz)
	mux.HandleFunc("/svc/summary", s.handleSummary)
	mux.HandleFunc("/svc/catalog", s.handleCatalog)
	mux.HandleFunc("/svc/announce", s.handleAnnounce)
	return mux
}

func (s *Service) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	requests := s.requests
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, Health{
		OK:       true,
		Service:  s.opts.Name,
		Version:  s.opts.Version,
		ID:       s.ident,
		UptimeS:  int64(s.opts.Clock.Now().Sub(s.started).Seconds()),
		Requests: requests,
	})
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()

	bars, err := s.opts.Source.DailyBars(r.Context(), s.opts.Ticker)
	if err != nil {
		s.opts.Logger.Warn("data fetch failed", zap.Error(err))
		writeDetail(w, http.StatusBadGateway, fmt.Sprintf("data fetch failed: %v", err))
		return
	}
	snap, err := BuildSnapshot(bars, "yahoo")
	if err != nil {
		writeDetail(w, http.StatusBadGateway, fmt.Sprintf("data fetch failed: %v", err))
		return
	}
	if r.URL.Query().Get("human") == "true" || r.URL.Query().Get("human") == "1" {
		snap.Human = s.opts.Summarizer.Summarize(r.Context(), snap)
	}

	telemetry.Emit("snapshot_fetched", map[string]any{
		"ticker": s.opts.Ticker,
		"date":   snap.Date,
		"close":  snap.Close,
	})
	writeJSON(w, http.StatusOK, snap)
}

func (s *Service) handleCatalog(w http.ResponseWriter, r *http.Request) {
	base := s.opts.PublicURL
	if base == "" {
		base = fmt.Sprintf("http://%s%s", localAddr(), s.opts.Addr)
	}
	writeJSON(w, http.StatusOK, Catalog{
		Ident: s.ident,
		Title: s.opts.Title,
		Endpoints: map[string]string{
			"healthz": base + "/svc/healthz",
			"summary": base + "/svc/summary",
		},
		About: map[string]any{
			"ticker":         s.opts.Ticker,
			"implementation": "go-nanda",
			"anthropic":      os.Getenv("ANTHROPIC_API_KEY") != "",
		},
	})
}

func (s *Service) handleAnnounce(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.opts.PublicURL == "" || s.opts.Registry == nil {
		writeDetail(w, http.StatusBadRequest, "PUBLIC_URL and REGISTRY_URL must be set")
		return
	}

	ann := registry.Announcement{
		AgentID:   s.ident,
		AgentURL:  s.opts.PublicURL,
		Protocols: []string{"https", "http"},
		Facts: map[string]any{
			"service": s.opts.Name,
			"version": s.opts.Version,
			"role":    "spx-today",
		},
	}
	if err := s.opts.Registry.Announce(r.Context(), ann); err != nil {
		s.opts.Logger.Warn("announce failed", zap.Error(err))
		writeDetail(w, http.StatusBadGateway, fmt.Sprintf("announce failed: %v", err))
		return
	}

	telemetry.Emit("announce", map[string]any{
		"registry": s.opts.Registry.Base(),
		"as":       s.ident,
	})
	writeJSON(w, http.StatusOK, AnnounceResult{
		OK:          true,
		AnnouncedTo: s.opts.Registry.Base(),
		As:          s.ident,
	})
}

// localAddr resolves a best-effort local IP for catalog URLs when no
// public URL is configured.
func localAddr() string {
	host, err := os.Hostname()
	if err != nil {
		return "127.0.0.1"
	}
	addrs, err := net.LookupHost(host)
	if err != nil || len(addrs) == 0 {
		return "127.0.0.1"
	}
	return addrs[0]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes an error body in the {"detail": ...} shape.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
