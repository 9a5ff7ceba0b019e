package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/leveling/pkg/buildinfo"
	lverrors "github.com/matzehuels/leveling/pkg/errors"
	"github.com/matzehuels/leveling/pkg/graph"
	"github.com/matzehuels/leveling/pkg/pipeline"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// graphRequest is the body of the layout and render endpoints.
type graphRequest struct {
	Graph   graph.Graph      `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// layoutRequest is the body of the visualize endpoint.
type layoutRequest struct {
	Layout  graph.Layout     `json:"layout"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse is returned by the layout endpoint.
type layoutResponse struct {
	ID     string       `json:"id"`
	Cached bool         `json:"cached"`
	Stats  statsBody    `json:"stats"`
	Layout graph.Layout `json:"layout"`
}

type statsBody struct {
	Nodes      int     `json:"nodes"`
	Edges      int     `json:"edges"`
	Levels     int     `json:"levels"`
	Crossings  int     `json:"crossings"`
	DurationMS float64 `json:"duration_ms"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
	return nil
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) error {
	var req graphRequest
	if err := s.decode(w, r, &req); err != nil {
		return err
	}
	s.prepare(&req.Options)

	start := time.Now()
	doc, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), req.Graph, req.Options)
	if err != nil {
		return err
	}
	stats := pipeline.LayoutStats(req.Graph, doc)

	writeJSON(w, http.StatusOK, layoutResponse{
		ID:     RequestIDFromContext(r.Context()),
		Cached: hit,
		Stats: statsBody{
			Nodes:      stats.NodeCount,
			Edges:      stats.EdgeCount,
			Levels:     stats.LevelCount,
			Crossings:  stats.Crossings,
			DurationMS: float64(time.Since(start).Microseconds()) / 1000,
		},
		Layout: doc,
	})
	return nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) error {
	format, err := formatParam(r)
	if err != nil {
		return err
	}
	var req graphRequest
	if err := s.decode(w, r, &req); err != nil {
		return err
	}
	req.Options.Formats = []string{format}
	s.prepare(&req.Options)

	result, err := s.runner.Execute(r.Context(), req.Graph, req.Options)
	if err != nil {
		return err
	}

	h := w.Header()
	h.Set("X-Run-ID", result.ID)
	h.Set("X-Layout-Levels", strconv.Itoa(result.Stats.LevelCount))
	h.Set("X-Layout-Crossings", strconv.Itoa(result.Stats.Crossings))
	writeArtifact(w, format, result.Artifacts[format], result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

func (s *Server) visualize(w http.ResponseWriter, r *http.Request) error {
	format, err := formatParam(r)
	if err != nil {
		return err
	}
	var req layoutRequest
	if err := s.decode(w, r, &req); err != nil {
		return err
	}
	// Round trip through the validating decoder, which also defaults the type.
	data, err := graph.MarshalLayout(req.Layout)
	if err != nil {
		return lverrors.Wrap(lverrors.ErrCodeInvalidInput, err, "encode layout")
	}
	doc, err := graph.UnmarshalLayout(data)
	if err != nil {
		return lverrors.Wrap(lverrors.ErrCodeInvalidInput, err, "invalid layout")
	}

	req.Options.VizType = doc.VizType
	req.Options.Formats = []string{format}
	s.prepare(&req.Options)

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), doc, req.Options)
	if err != nil {
		return err
	}
	writeArtifact(w, format, artifacts[format], hit)
	return nil
}

// decode reads a JSON body, rejecting unknown fields and oversized bodies.
// prepare applies the server's settings over whatever the request sent.
func (s *Server) prepare(opts *pipeline.Options) {
	opts.Logger = s.logger
	opts.MaxNodes, opts.MaxEdges = s.maxNodes, s.maxEdges
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return lverrors.New(lverrors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return lverrors.Wrap(lverrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func formatParam(r *http.Request) (string, error) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

func writeArtifact(w http.ResponseWriter, format string, data []byte, cached bool) {
	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("Content-Length", strconv.Itoa(len(data)))
	if cached {
		h.Set("X-Cache", "hit")
	} else {
		h.Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
