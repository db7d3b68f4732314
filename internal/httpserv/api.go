package httpserv

import (
	"encoding/json"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"go.uber.org/zap"

	"github.com/petasbytes/nanda-agents/internal/agent"
)

// Health is the /api/health response body.
type Health struct {
	Status          string `json:"status"`
	Name            string `json:"name"`
	UptimeSec       int64  `json:"uptime_sec"`
	Messages        int64  `json:"messages"`
	RateLimitPerMin int    `json:"rate_limit_per_min"`
	Version         string `json:"version"`
}

// SendRequest is the /api/send request body.
type SendRequest struct {
	Message string `json:"message"`
}

// SendResponse is the /api/send response body.
type SendResponse struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// RenderResponse is the /api/render response body.
type RenderResponse struct {
	Latest string `json:"latest"`
}

// AgentInfo is one entry of /api/agents/list.
type AgentInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToolInfo is one entry of /api/tools: the tool catalog exposed for
// registry interop, schemas included.
type ToolInfo struct {
	Name        string                         `json:"name"`
	Description string                         `json:"description"`
	InputSchema anthropic.ToolInputSchemaParam `json:"input_schema"`
}

// Handler returns the agent API routes.
func Handler(a *agent.Agent, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		st := a.Stats()
		writeJSON(w, http.StatusOK, Health{
			Status:          "ok",
			Name:            st.Name,
			UptimeSec:       st.UptimeSec,
			Messages:        st.Messages,
			RateLimitPerMin: st.RateLimit,
			Version:         st.Version,
		})
	})

	mux.HandleFunc("/api/send", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req SendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		reply, err := a.Process(r.Context(), req.Message)
		if err != nil {
			logger.Error("message processing failed", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if reply.RateLimited {
			http.Error(w, reply.Text, http.StatusTooManyRequests)
			return
		}
		writeJSON(w, http.StatusOK, SendResponse{Input: req.Message, Output: reply.Text})
	})

	mux.HandleFunc("/api/render", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, RenderResponse{Latest: a.Stats().Latest})
	})

	mux.HandleFunc("/api/agents/list", func(w http.ResponseWriter, r *http.Request) {
		st := a.Stats()
		writeJSON(w, http.StatusOK, []AgentInfo{{ID: st.ID, Name: st.Name}})
	})

	mux.HandleFunc("/api/tools", func(w http.ResponseWriter, r *http.Request) {
		defs := a.Tools()
		out := make([]ToolInfo, 0, len(defs))
		for _, d := range defs {
			out = append(out, ToolInfo{
				Name:        d.Name,
				Description: d.Description,
				InputSchema: d.InputSchema,
			})
		}
		writeJSON(w, http.StatusOK, out)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
