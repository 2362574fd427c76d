package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnGenerateComplete(ctx, "Flowchart", 1, time.Millisecond, nil)
	h.OnCacheMiss(ctx, "artifact")
	h.OnError(ctx, "GET", "/healthz", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"generate done", "kind=Flowchart", "cache miss", "request error", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksRegister(t *testing.T) {
	defer Reset()

	h := NewLogHooks(nil)
	h.Register()

	if Pipeline() != PipelineHooks(h) || Cache() != CacheHooks(h) || HTTP() != HTTPHooks(h) {
		t.Error("Register should install the hooks for every category")
	}
}
