package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/leveling/pkg/cache"
	"github.com/matzehuels/leveling/pkg/graph"
	"github.com/matzehuels/leveling/pkg/observability"
	"github.com/matzehuels/leveling/pkg/pipeline"
)

const sampleBody = `{
	"graph": {"nodes": [
		{"id": "app", "label": "Application", "successors": ["lib", "log"]},
		{"id": "lib", "successors": ["log"]},
		{"id": "log", "successors": ["app"]}
	]},
	"options": {"style": "simple"}
}`

func newTestServer(t *testing.T, c cache.Cache) (*Server, *httptest.Server) {
	t.Helper()
	s := New(pipeline.NewRunner(c, nil, nil), log.New(io.Discard))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
}

func TestRequestIDEchoed(t *testing.T) {
	_, ts := newTestServer(t, nil)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestLayout(t *testing.T) {
	_, ts := newTestServer(t, cache.NewNullCache())

	resp := post(t, ts.URL+"/v1/layout", sampleBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body layoutResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, resp.Header.Get(RequestIDHeader), body.ID)
	require.False(t, body.Cached)
	require.Equal(t, [][]string{{"app"}, {"lib"}, {"log"}}, body.Layout.Levels)
	require.Equal(t, []graph.Edge{{From: "log", To: "app"}}, body.Layout.Feedback)
	require.Equal(t, "simple", body.Layout.Style)
	require.Equal(t, 3, body.Stats.Nodes)
	require.Equal(t, 4, body.Stats.Edges)
	require.Equal(t, "Application", body.Layout.Boxes[0].Label)
}

func TestLayout_Cached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	_, ts := newTestServer(t, fc)

	var first, second layoutResponse
	require.NoError(t, json.NewDecoder(post(t, ts.URL+"/v1/layout", sampleBody).Body).Decode(&first))
	require.NoError(t, json.NewDecoder(post(t, ts.URL+"/v1/layout", sampleBody).Body).Decode(&second))
	require.False(t, first.Cached)
	require.True(t, second.Cached)
	require.Equal(t, first.Layout, second.Layout)
}

func TestRender(t *testing.T) {
	_, ts := newTestServer(t, nil)

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"dot", "text/vnd.graphviz; charset=utf-8", "rank=same"},
		{"json", "application/json", `"viz_type": "levels"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/render/"+tt.format, sampleBody)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
			require.Equal(t, "3", resp.Header.Get("X-Layout-Levels"))
			require.NotEmpty(t, resp.Header.Get("X-Run-ID"))

			data, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.Contains(t, string(data), tt.contains)
		})
	}
}

func TestVisualize(t *testing.T) {
	_, ts := newTestServer(t, nil)

	var lr layoutResponse
	require.NoError(t, json.NewDecoder(post(t, ts.URL+"/v1/layout", sampleBody).Body).Decode(&lr))

	body, err := json.Marshal(layoutRequest{Layout: lr.Layout, Options: pipeline.Options{ShowPlaceholders: true}})
	require.NoError(t, err)
	resp := post(t, ts.URL+"/v1/visualize/svg", string(body))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(data), `class="placeholder"`)
	require.NotContains(t, string(data), `rx="6"`, "style comes from the layout")
}

func TestErrors(t *testing.T) {
	_, ts := newTestServer(t, nil)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown format", "/v1/render/gif", sampleBody, http.StatusBadRequest, "INVALID_FORMAT"},
		{"malformed body", "/v1/layout", `{"graph":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", "/v1/layout", `{"graf": {}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad style", "/v1/layout", `{"graph": {}, "options": {"style": "fancy"}}`, http.StatusBadRequest, "INVALID_STYLE"},
		{"bad sizing", "/v1/layout", `{"graph": {}, "options": {"sizing": "huge"}}`, http.StatusBadRequest, "INVALID_OPTION"},
		{"negative spacing", "/v1/layout", `{"graph": {"nodes": [{"id": "a"}]}, "options": {"spacing": -4}}`, http.StatusBadRequest, "INVALID_OPTION"},
		{"empty id", "/v1/layout", `{"graph": {"nodes": [{"id": ""}]}}`, http.StatusBadRequest, "INVALID_LABEL"},
		{"duplicate id", "/v1/layout", `{"graph": {"nodes": [{"id": "a"}, {"id": "a"}]}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"nodelink without dot", "/v1/visualize/svg", `{"layout": {"viz_type": "nodelink"}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"no route", "/v1/nope", `{}`, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, tt.body)
			require.Equal(t, tt.status, resp.StatusCode)
			e := decodeError(t, resp)
			require.Equal(t, tt.code, e.Error.Code, "message: %s", e.Error.Message)
			require.Equal(t, resp.Header.Get(RequestIDHeader), e.RequestID)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/v1/layout")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestBodyTooLarge(t *testing.T) {
	s, ts := newTestServer(t, nil)
	s.maxBodyBytes = 16

	resp := post(t, ts.URL+"/v1/layout", sampleBody)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, decodeError(t, resp).Error.Message, "exceeds 16 bytes")
}

func TestGraphLimits(t *testing.T) {
	tests := []struct {
		name               string
		maxNodes, maxEdges int
		path               string
		message            string
	}{
		{"nodes", 2, 0, "/v1/layout", "3 nodes, limit is 2"},
		{"edges", 0, 3, "/v1/render/svg", "4 edges, limit is 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ts := newTestServer(t, nil)
			s.SetGraphLimits(tt.maxNodes, tt.maxEdges)

			resp := post(t, ts.URL+tt.path, sampleBody)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			e := decodeError(t, resp)
			require.Equal(t, "INVALID_INPUT", e.Error.Code)
			require.Contains(t, e.Error.Message, tt.message)
		})
	}
}

func TestGraphLimits_NotSettableByRequest(t *testing.T) {
	s, ts := newTestServer(t, nil)
	s.SetGraphLimits(2, 0)

	body := `{"graph": {"nodes": [{"id": "a"}]}, "options": {"max_nodes": 100000}}`
	resp := post(t, ts.URL+"/v1/layout", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "INVALID_INPUT", decodeError(t, resp).Error.Code)
}

type recordingHooks struct {
	observability.NoopServerHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, method+" "+route)
	h.status = append(h.status, status)
}

func TestServerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetServerHooks(hooks)
	t.Cleanup(observability.Reset)

	_, ts := newTestServer(t, nil)
	post(t, ts.URL+"/v1/render/svg", sampleBody)
	post(t, ts.URL+"/v1/render/gif", sampleBody)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	require.Equal(t, []string{"POST /v1/render/{format}", "POST /v1/render/{format}", "GET /healthz"}, hooks.routes)
	require.Equal(t, []int{200, 400, 200}, hooks.status)
}

func TestRequestBodyRoundTrip(t *testing.T) {
	var req graphRequest
	dec := json.NewDecoder(bytes.NewReader([]byte(sampleBody)))
	dec.DisallowUnknownFields()
	require.NoError(t, dec.Decode(&req))
	require.Len(t, req.Graph.Nodes, 3)
	require.Equal(t, "simple", req.Options.Style)
}
