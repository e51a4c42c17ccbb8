package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/convoyhq/convoy/pkg/errors"
	"github.com/convoyhq/convoy/pkg/graph"
	"github.com/convoyhq/convoy/pkg/plan"
	"github.com/convoyhq/convoy/pkg/render"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePlan computes (or serves from cache) the current publish plan.
// ?refresh=1 bypasses the cache. A workspace whose production cycles
// prevent ordering yields 422 with the analysis report, which names the
// cycle members.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	opts := plan.Options{
		MaxIterations: s.opts.MaxIterations,
		CacheTTL:      s.opts.CacheTTL,
		Refresh:       r.URL.Query().Get("refresh") == "1",
	}

	p, err := s.runner.Execute(r.Context(), s.loader, opts)
	if err != nil {
		var oerr *graph.OrderingError
		if stderrors.As(err, &oerr) && p != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":      oerr.Error(),
				"unresolved": oerr.Unresolved,
				"report":     p.Report,
			})
			return
		}
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleGraph serves the graph snapshot. ?format=dot and ?format=svg
// render it; the default is JSON.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.buildGraph(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	detailed := r.URL.Query().Get("detailed") == "1"
	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, g.Snapshot())
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(render.ToDOT(g.Snapshot(), render.Options{Detailed: detailed})))
	case "svg":
		svg, err := render.RenderSVG(r.Context(), render.ToDOT(g.Snapshot(), render.Options{Detailed: detailed}))
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	default:
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "unknown graph format: %s", r.URL.Query().Get("format")))
	}
}

// handleReport serves the analysis report for the current workspace.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	g, err := s.buildGraph(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.Analyze())
}

func (s *Server) handlePlansList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "plan archive is not configured"))
		return
	}
	summaries, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handlePlansGet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "plan archive is not configured"))
		return
	}
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePlansDelete(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "plan archive is not configured"))
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// buildGraph loads the manifests once and builds the graph. Unlike
// handlePlan this does not iterate: snapshot and report endpoints show
// the workspace as-is.
func (s *Server) buildGraph(r *http.Request) (*graph.Graph, error) {
	manifests, err := s.loader.Load(r.Context())
	if err != nil {
		return nil, err
	}
	return graph.New(manifests), nil
}

// writeError maps error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodePlanNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidManifest, errors.ErrCodeInvalidPackage,
		errors.ErrCodeInvalidPath, errors.ErrCodeDuplicatePackage:
		status = http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
