package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"ats-pipeline/internal/cv"
)

// ResumeUploadResponse summarises a parsed resume.
type ResumeUploadResponse struct {
	CandidateID      string   `json:"candidate_id"`
	Filename         string   `json:"filename"`
	FileType         string   `json:"file_type"`
	FileSize         int64    `json:"file_size"`
	TextLength       int      `json:"text_length"`
	SkillsFound      []string `json:"skills_found"`
	Skills           []string `json:"skills"`
	ProcessingTimeMs int64    `json:"processing_time_ms"`
}

// ResumeUploadHandler attaches a resume to a candidate
// @Summary Upload resume
// @Description Upload a resume (PDF/DOCX/TXT), extract its text and merge detected skills into the candidate
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param id path string true "Candidate ID"
// @Param file formData file true "Resume file"
// @Success 200 {object} ResumeUploadResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /candidates/{id}/resume [post]
func (a *API) ResumeUploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	startTime := time.Now()
	tenant := tenantID(r)

	candidate, err := a.db.GetCandidate(r.Context(), tenant, r.PathValue("id"))
	if err != nil {
		writeLoadError(w, "candidate", err)
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "file too large or invalid (max 10MB)", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !cv.SupportedType(header.Filename) {
		http.Error(w, "invalid file type (supported: PDF, DOCX, DOC, RTF, ODT, TXT)", http.StatusBadRequest)
		return
	}

	// stored per candidate so re-uploads replace the previous file
	storedName := candidate.ID + "_" + header.Filename
	parsedCV, err := a.cvParser.ParseFile(storedName, file)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to parse resume: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("[API] Resume parsed for candidate %s: %s (%d bytes text, %d skills)",
		candidate.ID, parsedCV.Filename, len(parsedCV.FullText), len(parsedCV.Skills))

	skills := cv.MergeSkills(candidate.Skills, parsedCV.Skills)
	if err := a.db.UpdateCandidateResume(r.Context(), tenant, candidate.ID, parsedCV.FilePath, skills); err != nil {
		log.Printf("[API] Failed to save resume for candidate %s: %v", candidate.ID, err)
		http.Error(w, "failed to save resume", http.StatusInternalServerError)
		return
	}
	a.board.Invalidate(tenant, candidate.JobID)

	writeJSON(w, http.StatusOK, ResumeUploadResponse{
		CandidateID:      candidate.ID,
		Filename:         parsedCV.Filename,
		FileType:         parsedCV.FileType,
		FileSize:         parsedCV.FileSize,
		TextLength:       len(parsedCV.FullText),
		SkillsFound:      parsedCV.Skills,
		Skills:           skills,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}
