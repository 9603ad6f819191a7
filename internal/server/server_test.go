package server

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/valter-silva-au/sentinel/internal/observability"
	"github.com/valter-silva-au/sentinel/pkg/models"
)

type fakeEngine struct {
	mu     sync.Mutex
	snap   models.DashboardSnapshot
	resets int
}

func (f *fakeEngine) Snapshot() models.DashboardSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeEngine) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	f.snap.CurrentLoad = 42
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{snap: models.DashboardSnapshot{
		Running:     true,
		Samples:     []float64{40, 60, 50},
		CurrentLoad: 50,
		Services:    models.DefaultServices(),
		Logs: []models.LogEntry{
			{ID: 1, Timestamp: "12:00:00", Message: "Cache invalidated", Severity: models.SeveritySuccess},
		},
	}}
}

func newTestServer(t *testing.T, engine Engine, opts Options) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(engine, opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	// Disable transparent decompression so encoding can be asserted.
	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestSnapshotEndpoint(t *testing.T) {
	ts := newTestServer(t, newFakeEngine(), Options{})
	resp := get(t, ts.URL+"/api/snapshot", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var snap models.DashboardSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if snap.CurrentLoad != 50 || len(snap.Samples) != 3 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestChartEndpoint(t *testing.T) {
	ts := newTestServer(t, newFakeEngine(), Options{})
	resp := get(t, ts.URL+"/chart.svg", nil)

	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `d="M 0 60 L 25 50 Q 50 40, 75 45 L 100 50"`) {
		t.Errorf("chart missing stroke path:\n%s", body)
	}
}

func TestIndexEndpoint(t *testing.T) {
	ts := newTestServer(t, newFakeEngine(), Options{})
	resp := get(t, ts.URL+"/", nil)
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"Sentinel", "50%", "Normal", "API Gateway: 24ms", "Cache invalidated", "-60s", "/ws"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("index missing %q", want)
		}
	}

	if resp := get(t, ts.URL+"/missing", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", resp.StatusCode)
	}
}

func TestGzipCompression(t *testing.T) {
	ts := newTestServer(t, newFakeEngine(), Options{})
	resp := get(t, ts.URL+"/", map[string]string{"Accept-Encoding": "gzip"})

	if enc := resp.Header.Get("Content-Encoding"); enc != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", enc)
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	body, _ := io.ReadAll(zr)
	if !strings.Contains(string(body), "Live Stream") {
		t.Error("decompressed index missing content")
	}
}

func TestResetEndpoint(t *testing.T) {
	engine := newFakeEngine()
	ts := newTestServer(t, engine, Options{})

	resp, err := http.Post(ts.URL+"/api/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("POST reset: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if engine.resets != 1 {
		t.Errorf("resets = %d, want 1", engine.resets)
	}
	if r := get(t, ts.URL+"/api/reset", nil); r.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET reset status = %d, want 405", r.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, newFakeEngine(), Options{})
	resp := get(t, ts.URL+"/health", nil)
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding health: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := observability.NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	collector.ObserveLoad(61)

	ts := newTestServer(t, newFakeEngine(), Options{Metrics: collector.Handler()})
	body, _ := io.ReadAll(get(t, ts.URL+"/metrics", nil).Body)
	if !strings.Contains(string(body), "sentinel_load 61") {
		t.Errorf("metrics missing sentinel_load:\n%s", body)
	}

	noMetrics := newTestServer(t, newFakeEngine(), Options{})
	if resp := get(t, noMetrics.URL+"/metrics", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("metrics without collector status = %d, want 404", resp.StatusCode)
	}
}

func TestWebsocketPushesSnapshots(t *testing.T) {
	ts := newTestServer(t, newFakeEngine(), Options{PushInterval: 10 * time.Millisecond})
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 3; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var snap models.DashboardSnapshot
		if err := conn.ReadJSON(&snap); err != nil {
			t.Fatalf("reading push %d: %v", i, err)
		}
		if snap.CurrentLoad != 50 {
			t.Errorf("push %d current load = %d, want 50", i, snap.CurrentLoad)
		}
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := New(newFakeEngine(), Options{PushInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "ws://" + ln.Addr().String() + "/ws"
	var conn *websocket.Conn
	deadline := time.Now().Add(2 * time.Second)
	for {
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	// The stream ends with a close frame or a dropped connection.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
