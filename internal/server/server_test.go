package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsidebar/internal/metrics"
	"git.home.luguber.info/inful/docsidebar/internal/sidebar"
)

func serve(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func sampleMap() sidebar.Map {
	return sidebar.Map{
		"/guide/": {sidebar.NewLeaf("index", "Guide", "guide/index.md")},
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := New(":0", Options{})
	w := serve(t, s, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestSidebarEndpoint_NotReady(t *testing.T) {
	s := New(":0", Options{})
	w := serve(t, s, http.MethodGet, "/sidebar")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestSidebarEndpoint(t *testing.T) {
	store := NewStore()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.Set(sampleMap(), at)
	s := New(":0", Options{Store: store})

	t.Run("json by default", func(t *testing.T) {
		w := serve(t, s, http.MethodGet, "/sidebar")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, at.Format(http.TimeFormat), w.Header().Get("Last-Modified"))
		assert.JSONEq(t, `{"/guide/":[{"text":"Guide","link":"/guide/index"}]}`, w.Body.String())
	})

	t.Run("yaml on request", func(t *testing.T) {
		w := serve(t, s, http.MethodGet, "/sidebar?format=yaml")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "link: /guide/index")
	})

	t.Run("tree is rejected", func(t *testing.T) {
		w := serve(t, s, http.MethodGet, "/sidebar?format=tree")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	rec.IncCoalescerFire(metrics.EdgeLeading)

	s := New(":0", Options{Registry: reg})
	w := serve(t, s, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "docsidebar_reload_triggers_total")
}

func TestRescanEndpoint(t *testing.T) {
	var calls atomic.Int32
	s := New(":0", Options{Rescan: func() { calls.Add(1) }})

	w := serve(t, s, http.MethodPost, "/rescan")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	w = serve(t, s, http.MethodGet, "/rescan")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRescanEndpoint_DoesNotWaitForRescan(t *testing.T) {
	release := make(chan struct{})
	done := make(chan struct{})
	s := New(":0", Options{Rescan: func() {
		<-release
		close(done)
	}})

	w := serve(t, s, http.MethodPost, "/rescan")
	assert.Equal(t, http.StatusAccepted, w.Code)

	close(release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("rescan never ran")
	}
}

func TestRescanEndpoint_Disabled(t *testing.T) {
	s := New(":0", Options{})
	w := serve(t, s, http.MethodPost, "/rescan")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_StartAndShutdown(t *testing.T) {
	s := New("127.0.0.1:0", Options{})
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
}

func TestStore(t *testing.T) {
	store := NewStore()
	_, ok := store.Get()
	assert.False(t, ok)

	at := time.Now()
	store.Set(sampleMap(), at)
	snap, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, at, snap.GeneratedAt)
	assert.Len(t, snap.Map, 1)
}
