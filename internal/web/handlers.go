package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/prasitlab/disaster-lens/internal/export"
	"github.com/prasitlab/disaster-lens/internal/model"
	"github.com/prasitlab/disaster-lens/internal/pipeline"
)

type analyzeResponse struct {
	ID string `json:"id,omitempty"`
	*pipeline.Result
	RawText string `json:"raw_text"`
	CSV     string `json:"csv"`
}

type geoResponse struct {
	*pipeline.GeoResult
	RawText string `json:"raw_text"`
	CSV     string `json:"csv"`
}

// errorResponse is the API shape of a failed run. RawText lets the operator
// inspect exactly what the provider returned.
type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	RawText string `json:"raw_text,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "bad_request", Message: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.EventType) == "" || strings.TrimSpace(req.Location) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "bad_request",
			Message: "event_type and location are required"})
		return
	}

	result, err := s.Analyzer.Run(r.Context(), req)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	csvText, err := export.EventsCSV(result.Events)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "internal", Message: err.Error()})
		return
	}

	resp := analyzeResponse{Result: result, RawText: result.RawText, CSV: csvText}

	if s.Store != nil {
		a := &model.Analysis{
			ID:          uuid.NewString(),
			EventType:   req.EventType,
			Location:    req.Location,
			EventTypeEN: result.EventTypeEN,
			LocationEN:  result.LocationEN,
			Model:       s.Model,
			Events:      result.Events,
			ParsedCount: result.ParsedCount,
			RawText:     result.RawText,
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.Store.SaveAnalysis(a); err != nil {
			s.Logger.Warn("saving analysis failed", "error", err)
		} else {
			resp.ID = a.ID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGeoExtract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Narrative string `json:"narrative"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "bad_request", Message: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Narrative) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "bad_request", Message: "narrative is required"})
		return
	}

	result, err := s.Analyzer.ExtractGeo(r.Context(), req.Narrative)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	csvText, err := export.GeoCSV(result.Records)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "internal", Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, geoResponse{GeoResult: result, RawText: result.RawText, CSV: csvText})
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeJSON(w, http.StatusOK, []model.Analysis{})
		return
	}

	list, err := s.Store.ListAnalyses()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "internal", Message: err.Error()})
		return
	}
	if list == nil {
		list = []model.Analysis{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleReadAnalysis(w http.ResponseWriter, r *http.Request) {
	a, ok := s.readAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleAnalysisCSV(w http.ResponseWriter, r *http.Request) {
	a, ok := s.readAnalysis(w, r)
	if !ok {
		return
	}

	csvText, err := export.EventsCSV(a.Events)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "internal", Message: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "analysis-"+a.ID+".csv"))
	_, _ = w.Write([]byte(csvText))
}

func (s *Server) handleInspectSources(w http.ResponseWriter, r *http.Request) {
	if s.Inspector == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Kind: "disabled", Message: "source inspection is disabled"})
		return
	}

	var req struct {
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "bad_request", Message: "invalid JSON body"})
		return
	}

	writeJSON(w, http.StatusOK, s.Inspector.Inspect(r.Context(), req.Source))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readAnalysis(w http.ResponseWriter, r *http.Request) (*model.Analysis, bool) {
	if s.Store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Kind: "disabled", Message: "history is disabled"})
		return nil, false
	}

	a, err := s.Store.ReadAnalysis(chi.URLParam(r, "id"))
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusNotFound, errorResponse{Kind: "not_found", Message: "no such analysis"})
		return nil, false
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "internal", Message: err.Error()})
		return nil, false
	}

	return a, true
}

// writePipelineError maps the error taxonomy onto HTTP statuses, preserving
// the raw provider text on every path that has one.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	var perr *pipeline.Error
	if !errors.As(err, &perr) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "internal", Message: err.Error()})
		return
	}

	status := http.StatusBadGateway // provider failed or lied about the format
	switch perr.Kind {
	case pipeline.KindTranslation:
		status = http.StatusBadRequest
	case pipeline.KindNoData, pipeline.KindTooFew, pipeline.KindTooMany:
		status = http.StatusUnprocessableEntity
	}

	s.Logger.Warn("pipeline request failed", "kind", perr.Kind, "stage", perr.Stage, "error", perr.Err)
	writeJSON(w, status, errorResponse{
		Kind:    string(perr.Kind),
		Message: perr.Err.Error(),
		RawText: perr.RawText,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
