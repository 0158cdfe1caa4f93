package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sqlc-dev/caseprose/internal/cache"
	"github.com/sqlc-dev/caseprose/internal/render"
	"github.com/sqlc-dev/caseprose/internal/store"
	"github.com/sqlc-dev/caseprose/internal/translate"
	"github.com/sqlc-dev/caseprose/parser"
)

type translateRequest struct {
	SQL    string `json:"sql"`
	Format string `json:"format"`
	All    bool   `json:"all"`
}

type translateResponse struct {
	ID     string        `json:"id,omitempty"`
	Format render.Format `json:"format"`
	Output string        `json:"output"`
	Cached bool          `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.server.MaxBodyBytes)

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.SQL) == "" {
		respondError(w, http.StatusBadRequest, "sql is required")
		return
	}
	if req.Format == "" {
		req.Format = s.translate.Format
	}
	format, err := render.ParseFormat(req.Format)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	key := cache.Key(req.SQL, cache.KeyOptions{
		Format:   string(format),
		Indent:   s.translate.Indent,
		MaxDepth: s.translate.MaxDepth,
		All:      req.All,
	})

	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn("cache get failed", "error", err)
		} else if ok {
			var resp translateResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				resp.Cached = true
				respondJSON(w, http.StatusOK, resp)
				return
			}
		}
	}

	opts := translate.Options{
		MaxDepth: s.translate.MaxDepth,
		Indent:   s.translate.Indent,
		Logger:   s.logger,
	}
	var reports []*translate.Report
	if req.All {
		reports, err = translate.TranslateAllSQL(ctx, req.SQL, opts)
	} else {
		var report *translate.Report
		report, err = translate.TranslateSQL(ctx, req.SQL, opts)
		reports = []*translate.Report{report}
	}
	if err != nil {
		s.respondTranslateError(w, err)
		return
	}

	out, err := s.renderer.Render(reports, format)
	if err != nil {
		s.logger.Error("render failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	resp := translateResponse{Format: format, Output: string(out)}

	if s.archive != nil {
		t := &store.Translation{
			Query:       req.SQL,
			Alias:       reports[0].Alias,
			Format:      string(format),
			Explanation: resp.Output,
		}
		if err := s.archive.Save(ctx, t); err != nil {
			s.logger.Error("archive save failed", "error", err)
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		resp.ID = t.ID.String()
	}

	if s.cache != nil {
		data, _ := json.Marshal(resp)
		if err := s.cache.Set(ctx, key, data); err != nil {
			s.logger.Warn("cache set failed", "error", err)
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondTranslateError(w http.ResponseWriter, err error) {
	var perr *parser.ParseError
	switch {
	case errors.As(err, &perr):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, translate.ErrNoConditionalExpression):
		respondError(w, http.StatusUnprocessableEntity, "no CASE expression found")
	case errors.Is(err, translate.ErrTooDeep):
		respondError(w, http.StatusUnprocessableEntity, "expression nested too deeply")
	default:
		s.logger.Error("translate failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleGetTranslation(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		respondError(w, http.StatusNotImplemented, "archive not configured")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	t, err := s.archive.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "translation not found")
		return
	}
	if err != nil {
		s.logger.Error("archive get failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		respondError(w, http.StatusNotImplemented, "archive not configured")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	list, err := s.archive.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("archive list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if list == nil {
		list = []store.Translation{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"translations": list})
}
