package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/textvary/pkg/buildinfo"
	"github.com/matzehuels/textvary/pkg/errors"
	"github.com/matzehuels/textvary/pkg/pipeline"
	"github.com/matzehuels/textvary/pkg/store"
	"github.com/matzehuels/textvary/pkg/variation"
	"github.com/matzehuels/textvary/pkg/variation/tables"
)

// maxListLimit caps GET /runs?limit.
const maxListLimit = 100

// variationRequest is the body of POST /api/v1/variations.
// Omitted levels use the defaults; omitted count uses the default count.
type variationRequest struct {
	Post     string                 `json:"post"`
	Comments []variation.Comment    `json:"comments"`
	Count    int                    `json:"count"`
	Levels   *variation.Intensities `json:"levels"`
	Seed     uint64                 `json:"seed"`
	Save     bool                   `json:"save"`
}

type variationResponse struct {
	RunID      string             `json:"run_id,omitempty"`
	Seed       uint64             `json:"seed"`
	Variations []variation.Result `json:"variations"`
	Cached     bool               `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req variationRequest
	if err := decodeJSON(r, &req); err != nil {
		if statusFor(err) == http.StatusRequestEntityTooLarge {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}

	if req.Save && s.store == nil {
		writeError(w, http.StatusNotImplemented, "run storage is disabled")
		return
	}

	opts := pipeline.DefaultOptions()
	opts.Post = req.Post
	opts.Comments = req.Comments
	opts.Count = req.Count
	opts.Seed = req.Seed
	opts.MaxTextRunes = s.cfg.MaxTextRunes
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))
	if req.Levels != nil {
		opts.Levels = *req.Levels
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeErr(w, r, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	resp := variationResponse{
		Seed:       result.Seed,
		Variations: result.Variations,
		Cached:     result.CacheInfo.Hit,
	}

	if req.Save {
		run := store.NewRun(opts.Dialogue(), opts.Count, opts.Levels, result.Seed, result.Variations)
		if err := s.store.Save(r.Context(), run); err != nil {
			s.writeErr(w, r, err)
			return
		}
		resp.RunID = run.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeNotFound(w, "run storage is disabled")
		return
	}

	limit := store.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = min(n, maxListLimit)
	}

	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, ok := s.runID(w, r)
	if !ok {
		return
	}
	run, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id, ok := s.runID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// runID extracts and validates the {id} URL parameter. It writes the error
// response and returns false when the request cannot proceed.
func (s *Server) runID(w http.ResponseWriter, r *http.Request) (string, bool) {
	if s.store == nil {
		writeNotFound(w, "run storage is disabled")
		return "", false
	}
	id := chi.URLParam(r, "id")
	if err := errors.ValidateRunID(id); err != nil {
		s.writeErr(w, r, err)
		return "", false
	}
	return id, true
}

func (s *Server) handleTables(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sizes":          tables.Summary(),
		"passes":         variation.PassOrder(),
		"default_levels": variation.DefaultIntensities(),
		"count": map[string]int{
			"min":     variation.MinCount,
			"max":     variation.MaxCount,
			"default": variation.DefaultCount,
		},
	})
}
