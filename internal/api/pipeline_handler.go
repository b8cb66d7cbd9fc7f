package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"ats-pipeline/internal/board"
	"ats-pipeline/internal/exporter"
	"ats-pipeline/internal/pipeline"
)

// PipelineResponse is a job's board. Status is "ok", or "empty" when
// no candidate matched.
type PipelineResponse struct {
	Status string `json:"status"`
	*board.View
}

// MoveRequest asks to move a candidate between two stages.
type MoveRequest struct {
	CandidateID string `json:"candidate_id"`
	FromStageID string `json:"from_stage_id"`
	ToStageID   string `json:"to_stage_id"`
}

// MoveResponse reports whether the move happened and where the candidate is now.
type MoveResponse struct {
	Moved       bool   `json:"moved"`
	CandidateID string `json:"candidate_id"`
	StageID     string `json:"stage_id,omitempty"`
}

// filterFromQuery reads q, source and min_rating.
func filterFromQuery(r *http.Request) (pipeline.Filter, error) {
	q := r.URL.Query()
	f := pipeline.Filter{
		Query:  strings.TrimSpace(q.Get("q")),
		Source: strings.TrimSpace(q.Get("source")),
	}
	if v := q.Get("min_rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 5 {
			return f, fmt.Errorf("min_rating must be an integer between 0 and 5")
		}
		f.MinRating = n
	}
	return f, nil
}

func pipelineResponse(v *board.View) PipelineResponse {
	status := "ok"
	if v.Total == 0 && len(v.Unassigned) == 0 {
		status = "empty"
	}
	return PipelineResponse{Status: status, View: v}
}

// PipelineHandler returns the job's board
// @Summary Get pipeline board
// @Description Candidates grouped by stage in rank order, optionally filtered
// @Tags pipeline
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param jobID path string true "Job ID"
// @Param q query string false "Name, email or skill"
// @Param source query string false "Source channel (all = no filter)"
// @Param min_rating query int false "Minimum rating (0-5)"
// @Success 200 {object} PipelineResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} ErrorResponse
// @Router /jobs/{jobID}/pipeline [get]
func (a *API) PipelineHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v, err := a.board.View(r.Context(), r.PathValue("jobID"), f)
	if err != nil {
		writeLoadError(w, "pipeline", err)
		return
	}
	writeJSON(w, http.StatusOK, pipelineResponse(v))
}

// MoveHandler moves a candidate to another stage
// @Summary Move candidate
// @Description Same-stage, unknown-stage or stale moves are ignored and reported with moved=false
// @Tags pipeline
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param X-User-ID header string false "Acting user"
// @Param jobID path string true "Job ID"
// @Param move body MoveRequest true "Move"
// @Success 200 {object} MoveResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} ErrorResponse
// @Router /jobs/{jobID}/pipeline/move [post]
func (a *API) MoveHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.CandidateID == "" || req.ToStageID == "" {
		http.Error(w, "candidate_id and to_stage_id are required", http.StatusBadRequest)
		return
	}

	jobID := r.PathValue("jobID")
	moved, err := a.board.Move(r.Context(), jobID, req.CandidateID, req.FromStageID, req.ToStageID)
	if err != nil {
		writeLoadError(w, "pipeline", err)
		return
	}

	resp := MoveResponse{Moved: moved, CandidateID: req.CandidateID}
	if p, _, err := a.board.Pipeline(r.Context(), jobID, pipeline.Filter{}); err == nil {
		if c, ok := p.Candidate(req.CandidateID); ok {
			resp.StageID = c.StageID
		}
	}
	if !moved {
		log.Printf("[API] Ignored move of candidate %s (%s -> %s) on job %s",
			req.CandidateID, req.FromStageID, req.ToStageID, jobID)
	}
	writeJSON(w, http.StatusOK, resp)
}

// AnalyticsHandler returns stage counts and conversion ratios
// @Summary Pipeline analytics
// @Description SnapshotConversion is next/(current+next) over the current assignment, not a cohort rate
// @Tags pipeline
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param jobID path string true "Job ID"
// @Param q query string false "Name, email or skill"
// @Param source query string false "Source channel"
// @Param min_rating query int false "Minimum rating (0-5)"
// @Success 200 {object} pipeline.Analytics
// @Failure 404 {object} map[string]string
// @Failure 502 {object} ErrorResponse
// @Router /jobs/{jobID}/pipeline/analytics [get]
func (a *API) AnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	analytics, err := a.board.Analytics(r.Context(), r.PathValue("jobID"), f)
	if err != nil {
		writeLoadError(w, "pipeline", err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

// ExportHandler downloads the board as CSV
// @Summary Export pipeline
// @Tags pipeline
// @Produce text/csv
// @Param X-Tenant-ID header string true "Tenant"
// @Param jobID path string true "Job ID"
// @Param report query string false "candidates (default) or analytics"
// @Success 200 {string} string "CSV file"
// @Failure 404 {object} map[string]string
// @Failure 502 {object} ErrorResponse
// @Router /jobs/{jobID}/pipeline/export [get]
func (a *API) ExportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	f, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	jobID := r.PathValue("jobID")
	p, _, err := a.board.Pipeline(r.Context(), jobID, f)
	if err != nil {
		writeLoadError(w, "pipeline", err)
		return
	}

	report := r.URL.Query().Get("report")
	var buf bytes.Buffer
	switch report {
	case "", "candidates":
		report = "candidates"
		err = exporter.WritePipelineCSV(&buf, p)
	case "analytics":
		err = exporter.WriteAnalyticsCSV(&buf, pipeline.ComputeAnalytics(p))
	default:
		http.Error(w, "report must be candidates or analytics", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("[API] export job %s: %v", jobID, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="pipeline_%s_%s.csv"`, jobID, report))
	w.Write(buf.Bytes())
}

// ReloadHandler discards the cached board and reads it again
// @Summary Reload pipeline
// @Tags pipeline
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param jobID path string true "Job ID"
// @Success 200 {object} PipelineResponse
// @Failure 404 {object} map[string]string
// @Failure 502 {object} ErrorResponse
// @Router /jobs/{jobID}/pipeline/reload [post]
func (a *API) ReloadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	v, err := a.board.Reload(r.Context(), r.PathValue("jobID"))
	if err != nil {
		writeLoadError(w, "pipeline", err)
		return
	}
	writeJSON(w, http.StatusOK, pipelineResponse(v))
}
