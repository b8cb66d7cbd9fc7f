package storage

import (
	"errors"
	"time"

	"ats-pipeline/internal/pipeline"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("storage: not found")

// ErrDuplicate is returned when a write collides with a unique key, such as a
// second candidate with the same email on a job.
var ErrDuplicate = errors.New("storage: already exists")

// FetchError marks a failed read of board data. Callers must show an
// error state for it rather than substitute placeholder records.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return "fetch " + e.Op + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// Job is a requisition whose candidates share one pipeline.
type Job struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Title     string    `json:"title"`
	JobType   string    `json:"job_type"`
	CreatedAt time.Time `json:"created_at"`
}

// CandidateRecord is a candidate as persisted for one tenant and job.
type CandidateRecord struct {
	pipeline.Candidate
	TenantID       string    `json:"tenant_id"`
	JobID          string    `json:"job_id"`
	ResumeFilePath string    `json:"resume_file_path,omitempty"`
	StageEnteredAt time.Time `json:"stage_entered_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// Criteria used to search for candidates.
type Criteria struct {
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Skills   []string `json:"skills"`
	JobID    string   `json:"job_id,omitempty"`
}

// StageTransition is one persisted stage move.
type StageTransition struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	JobID       string    `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	FromStageID string    `json:"from_stage_id"`
	ToStageID   string    `json:"to_stage_id"`
	MovedBy     string    `json:"moved_by,omitempty"`
	MovedAt     time.Time `json:"moved_at"`
}
