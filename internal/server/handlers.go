package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vipuljat/ProjectBasedLearning/pkg/buildinfo"
	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
	"github.com/vipuljat/ProjectBasedLearning/pkg/pipeline"
	"github.com/vipuljat/ProjectBasedLearning/pkg/store"
)

// =============================================================================
// Health
// =============================================================================

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
		Uptime:  time.Since(startedAt).Round(time.Second).String(),
	})
}

// =============================================================================
// Render
// =============================================================================

type renderRequest struct {
	Kind    string           `json:"kind"`
	Format  string           `json:"format"`
	Payload json.RawMessage  `json:"payload"`
	Options pipeline.Options `json:"options"`
	Refresh bool             `json:"refresh"`
}

// renderResponse carries text output verbatim and binary output base64
// encoded, flagged by Encoding.
type renderResponse struct {
	Kind        diagram.Kind         `json:"kind"`
	Format      string               `json:"format"`
	Output      string               `json:"output"`
	Encoding    string               `json:"encoding,omitempty"`
	Diagnostics []diagram.Diagnostic `json:"diagnostics"`
	Cached      bool                 `json:"cached"`
}

func newRenderResponse(res *pipeline.Result) renderResponse {
	out := renderResponse{
		Kind:        res.Kind,
		Format:      res.Format,
		Diagnostics: res.Diagnostics,
		Cached:      res.Cached,
	}
	if out.Diagnostics == nil {
		out.Diagnostics = []diagram.Diagnostic{}
	}
	if pipeline.IsBinary(res.Format) {
		out.Output = base64.StdEncoding.EncodeToString(res.Data)
		out.Encoding = "base64"
	} else {
		out.Output = string(res.Data)
	}
	return out
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, decodeErr(err))
		return
	}
	if req.Kind == "" {
		s.fail(w, r, apperrors.New(apperrors.ErrCodeInvalidKind, "kind is required"))
		return
	}
	if len(req.Payload) == 0 {
		s.fail(w, r, apperrors.New(apperrors.ErrCodeInvalidPayload, "payload is required"))
		return
	}

	kind, _ := diagram.ParseKind(req.Kind)
	res, err := s.runner.Render(r.Context(), pipeline.Request{
		Kind:    kind,
		Payload: req.Payload,
		Format:  req.Format,
		Options: req.Options,
		Refresh: req.Refresh,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newRenderResponse(res))
}

// =============================================================================
// Stored Diagrams
// =============================================================================

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"diagrams": list})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	title, err := projectParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	set, _, err := diagram.ReadSet(r.Body)
	if err != nil {
		s.fail(w, r, decodeErr(err))
		return
	}

	doc := &diagram.Document{ProjectTitle: title, Diagrams: set}
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("stored diagrams", "project", title, "kinds", set.Kinds())
	writeJSON(w, http.StatusCreated, store.Summarize(doc))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	title, err := projectParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	doc, err := s.store.Get(r.Context(), title)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	title, err := projectParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), title); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderStored renders one diagram of a stored project. With ?raw=true
// the artifact bytes are written directly with their content type.
func (s *Server) handleRenderStored(w http.ResponseWriter, r *http.Request) {
	title, err := projectParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	kind, ok := diagram.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		s.fail(w, r, apperrors.New(apperrors.ErrCodeInvalidKind, "unknown diagram kind %q", chi.URLParam(r, "kind")))
		return
	}

	doc, err := s.store.Get(r.Context(), title)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	payload, ok := doc.Diagrams.Payload(kind)
	if !ok {
		s.fail(w, r, apperrors.New(apperrors.ErrCodeNotFound, "project %q has no %s diagram", title, kind))
		return
	}

	q := r.URL.Query()
	res, err := s.runner.Render(r.Context(), pipeline.Request{
		Kind:    kind,
		Payload: payload,
		Format:  q.Get("format"),
		Options: pipeline.Options{ChainSequential: q.Get("chain") == "true"},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if raw, _ := strconv.ParseBool(q.Get("raw")); raw {
		w.Header().Set("Content-Type", pipeline.ContentType(res.Format))
		w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Data)
		return
	}
	writeJSON(w, http.StatusOK, newRenderResponse(res))
}

func projectParam(r *http.Request) (string, error) {
	title, err := url.PathUnescape(chi.URLParam(r, "project"))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidProject, err, "project title is not valid path encoding")
	}
	if err := apperrors.ValidateProjectTitle(title); err != nil {
		return "", err
	}
	return title, nil
}

// decodeErr keeps size-limit and coded errors and marks anything else as
// an invalid payload.
func decodeErr(err error) error {
	var tooLarge *http.MaxBytesError
	if apperrors.GetCode(err) != "" || errors.As(err, &tooLarge) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrCodeInvalidPayload, err, "invalid request body")
}
