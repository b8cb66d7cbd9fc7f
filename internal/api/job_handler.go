package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"ats-pipeline/internal/stages"
	"ats-pipeline/internal/storage"
)

// CreateJobRequest opens a requisition.
type CreateJobRequest struct {
	Title   string `json:"title"`
	JobType string `json:"job_type"`
}

// JobsHandler lists or creates the tenant's jobs
// @Summary List or create jobs
// @Tags jobs
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param job body CreateJobRequest false "Job (POST only)"
// @Success 200 {array} storage.Job
// @Success 201 {object} storage.Job
// @Failure 400 {object} map[string]string
// @Router /jobs [get]
// @Router /jobs [post]
func (a *API) JobsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jobs, err := a.db.ListJobs(r.Context(), tenantID(r))
		if err != nil {
			writeLoadError(w, "jobs", err)
			return
		}
		if jobs == nil {
			jobs = []storage.Job{}
		}
		writeJSON(w, http.StatusOK, jobs)

	case http.MethodPost:
		var req CreateJobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			http.Error(w, "title is required", http.StatusBadRequest)
			return
		}
		job := &storage.Job{
			TenantID: tenantID(r),
			Title:    strings.TrimSpace(req.Title),
			JobType:  strings.TrimSpace(req.JobType),
		}
		if job.JobType == "" {
			job.JobType = stages.DefaultJobType
		}
		if err := a.db.SaveJob(r.Context(), job); err != nil {
			log.Printf("[API] save job: %v", err)
			http.Error(w, "failed to save job", http.StatusInternalServerError)
			return
		}
		log.Printf("[API] Job %s created (tenant %s, type %s)", job.ID, job.TenantID, job.JobType)
		writeJSON(w, http.StatusCreated, job)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// JobStagesHandler returns the stages configured for the job's type
// @Summary Job stages
// @Tags jobs
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param jobID path string true "Job ID"
// @Success 200 {array} pipeline.Stage
// @Failure 404 {object} map[string]string
// @Router /jobs/{jobID}/stages [get]
func (a *API) JobStagesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	job, err := a.db.GetJob(r.Context(), tenantID(r), r.PathValue("jobID"))
	if err != nil {
		writeLoadError(w, "job", err)
		return
	}
	writeJSON(w, http.StatusOK, a.board.Stages(job.JobType))
}
