package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"ats-pipeline/internal/pipeline"
	"ats-pipeline/internal/storage"
)

// CreateCandidateRequest adds a candidate to a job. An empty stage_id
// places the candidate in the job's first stage.
type CreateCandidateRequest struct {
	JobID             string   `json:"job_id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Location          string   `json:"location"`
	Position          string   `json:"position"`
	StageID           string   `json:"stage_id"`
	Rating            int      `json:"rating"`
	AppliedDate       string   `json:"applied_date"`
	Source            string   `json:"source"`
	Experience        string   `json:"experience"`
	SalaryExpectation *float64 `json:"salary_expectation"`
	Skills            []string `json:"skills"`
	Status            string   `json:"status"`
}

// CreateCandidateHandler creates a candidate
// @Summary Create candidate
// @Tags candidates
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param candidate body CreateCandidateRequest true "Candidate"
// @Success 201 {object} storage.CandidateRecord
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /candidates [post]
func (a *API) CreateCandidateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.JobID == "" || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		http.Error(w, "job_id, name and email are required", http.StatusBadRequest)
		return
	}
	status := pipeline.Status(req.Status)
	if status == "" {
		status = pipeline.StatusActive
	}
	if !status.Valid() {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	tenant := tenantID(r)
	job, err := a.db.GetJob(r.Context(), tenant, req.JobID)
	if err != nil {
		writeLoadError(w, "job", err)
		return
	}

	jobStages := a.board.Stages(job.JobType)
	stageID := req.StageID
	if stageID == "" {
		stageID = jobStages[0].ID
	} else if !hasStage(jobStages, stageID) {
		http.Error(w, "unknown stage_id for this job", http.StatusBadRequest)
		return
	}

	applied := storage.ParseISO(req.AppliedDate)
	if applied.IsZero() {
		applied = time.Now().UTC()
	}

	rec := &storage.CandidateRecord{
		Candidate: pipeline.Candidate{
			Name:              strings.TrimSpace(req.Name),
			Email:             strings.TrimSpace(req.Email),
			Phone:             req.Phone,
			Location:          req.Location,
			Position:          req.Position,
			StageID:           stageID,
			Rating:            req.Rating,
			AppliedDate:       applied,
			LastActivity:      applied,
			Source:            req.Source,
			Experience:        req.Experience,
			SalaryExpectation: req.SalaryExpectation,
			Skills:            req.Skills,
			Status:            status,
		},
		TenantID: tenant,
		JobID:    job.ID,
	}
	if err := a.db.SaveCandidate(r.Context(), rec); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			http.Error(w, "a candidate with this email already applied to the job", http.StatusConflict)
			return
		}
		log.Printf("[API] save candidate: %v", err)
		http.Error(w, "failed to save candidate", http.StatusInternalServerError)
		return
	}
	a.board.Invalidate(tenant, job.ID)

	log.Printf("[API] Candidate %s added to job %s in stage %s", rec.ID, job.ID, stageID)
	writeJSON(w, http.StatusCreated, rec)
}

func hasStage(list []pipeline.Stage, id string) bool {
	for _, s := range list {
		if s.ID == id {
			return true
		}
	}
	return false
}

// TransitionsHandler returns a candidate's stage history
// @Summary Candidate stage history
// @Tags candidates
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param id path string true "Candidate ID"
// @Success 200 {array} storage.StageTransition
// @Failure 502 {object} ErrorResponse
// @Router /candidates/{id}/transitions [get]
func (a *API) TransitionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	transitions, err := a.db.ListStageTransitions(r.Context(), tenantID(r), r.PathValue("id"))
	if err != nil {
		writeLoadError(w, "transitions", err)
		return
	}
	writeJSON(w, http.StatusOK, transitions)
}
