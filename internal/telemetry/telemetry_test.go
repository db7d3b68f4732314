package telemetry_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petasbytes/nanda-agents/internal/telemetry"
)

// chtemp moves the working directory to a temp dir for the test, since
// events are written relative to the process working directory.
func chtemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func TestEmit_DisabledByDefault(t *testing.T) {
	dir := chtemp(t)
	t.Setenv("NANDA_OBSERVE_JSON", "")

	telemetry.Emit("noop", map[string]any{"k": "v"})

	if _, err := os.Stat(filepath.Join(dir, ".nanda", "events.jsonl")); !os.IsNotExist(err) {
		t.Fatal("expected no events file when emission is disabled")
	}
}

func TestEmit_WritesAugmentedJSONLines(t *testing.T) {
	dir := chtemp(t)
	t.Setenv("NANDA_OBSERVE_JSON", "1")

	telemetry.Emit("message_handled", map[string]any{"words": 3})
	telemetry.Emit("rate_limited", map[string]any{"limit": 60})

	b, err := os.ReadFile(filepath.Join(dir, ".nanda", "events.jsonl"))
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 0 not JSON: %v", err)
	}
	if first["event"] != "message_handled" {
		t.Fatalf("event: got %v", first["event"])
	}
	if first["words"] != float64(3) {
		t.Fatalf("words: got %v", first["words"])
	}
	if _, ok := first["time"].(string); !ok {
		t.Fatal("missing time field")
	}
}

func TestEmit_DoesNotMutateCallerMap(t *testing.T) {
	chtemp(t)
	t.Setenv("NANDA_OBSERVE_JSON", "1")

	fields := map[string]any{"k": "v"}
	telemetry.Emit("evt", fields)
	if len(fields) != 1 {
		t.Fatalf("caller map mutated: %v", fields)
	}
}
