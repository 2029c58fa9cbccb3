package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/itp-onboarding/internal/config"
	"github.com/riskibarqy/itp-onboarding/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
)

func memoryConfig() config.Config {
	berlin, _ := time.LoadLocation("Europe/Berlin")
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       5 * time.Second,
		CORSAllowedOrigins: []string{"*"},
		RepositoryBackend:  config.BackendMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		DraftStoreBackend:  config.BackendMemory,
		DraftTTL:           time.Hour,
		ObjectStoreBackend: config.BackendMemory,
		DisplayLocation:    berlin,
		ITPSite:            memory.SiteCologne,
		UploadMaxBytes:     10 << 20,
		PreseasonNotice:    "Preseason starts July 6, 2026.",
		CSRFAuthKey:        "0123456789abcdef0123456789abcdef",
	}
}

func TestNewRuntime_MemoryBackends(t *testing.T) {
	rt, err := NewRuntime(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build runtime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })

	srv := httptest.NewServer(rt.Server.Handler)
	t.Cleanup(srv.Close)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{path: "/healthz", status: http.StatusOK, body: "ok"},
		{path: "/", status: http.StatusOK, body: "ITP Trial Onboarding"},
		{path: "/" + memory.DemoProspectID, status: http.StatusOK, body: "Nehemiah"},
		{path: "/not-a-prospect", status: http.StatusNotFound, body: "Page not found"},
		{path: "/metrics", status: http.StatusOK, body: "go_goroutines"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tc.path)
			if err != nil {
				t.Fatalf("get %s: %v", tc.path, err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.StatusCode)
			}
			if !strings.Contains(string(body), tc.body) {
				t.Fatalf("expected body to contain %q", tc.body)
			}
		})
	}
}

func TestNewRuntime_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := NewRuntime(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestNewRuntime_InvalidRedisURL(t *testing.T) {
	cfg := memoryConfig()
	cfg.DraftStoreBackend = config.BackendRedis
	cfg.RedisURL = "not-a-redis-url"
	if _, err := NewRuntime(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for invalid redis url")
	}
}

func TestNewRuntime_ShortCSRFKey(t *testing.T) {
	cfg := memoryConfig()
	cfg.CSRFAuthKey = "short"
	if _, err := NewRuntime(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for short csrf key")
	}
}

func TestRuntimeClose_RunsClosersInReverse(t *testing.T) {
	var order []int
	rt := &Runtime{closers: []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return io.ErrClosedPipe },
	}}

	if err := rt.Close(); err == nil {
		t.Fatalf("expected closer error to be returned")
	}
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Fatalf("unexpected close order: %v", order)
	}
	if err := rt.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
}
