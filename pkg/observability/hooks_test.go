package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("default pipeline hooks = %T", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("default cache hooks = %T", Cache())
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Errorf("default server hooks = %T", Server())
	}

	p, c, s := &testPipelineHooks{}, &testCacheHooks{}, &testServerHooks{}
	SetPipelineHooks(p)
	SetCacheHooks(c)
	SetServerHooks(s)
	SetPipelineHooks(nil)
	if Pipeline() != p || Cache() != c || Server() != s {
		t.Error("registered hooks not returned")
	}

	Reset()
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Reset() kept custom server hooks")
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Cleanup(Reset)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetCacheHooks(&testCacheHooks{})
		}()
		go func() {
			defer wg.Done()
			Cache().OnCacheHit(context.Background(), "layout")
		}()
	}
	wg.Wait()
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	h.OnLayoutStart(ctx, 4, 5)
	h.OnLayoutComplete(ctx, 0, time.Millisecond, errors.New("boom"))
	h.OnCacheHit(ctx, "layout")
	h.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"hooks", "layout start", "nodes=4", "layout failed", "err=boom", "cache hit", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }
