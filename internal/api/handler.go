package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ats-pipeline/internal/board"
	"ats-pipeline/internal/cv"
	"ats-pipeline/internal/session"
	"ats-pipeline/internal/storage"
)

// API serves the HTTP handlers. Board reads and moves go through board;
// jobs, candidates and search go to db directly.
type API struct {
	db       *storage.DB
	board    *board.Board
	cvParser *cv.CVParser
}

func NewAPI(db *storage.DB, b *board.Board, cvParser *cv.CVParser) *API {
	return &API{
		db:       db,
		board:    b,
		cvParser: cvParser,
	}
}

// ErrorResponse is the body of a failed board read.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: Failed to encode JSON response: %v", err)
	}
}

// writeLoadError maps board and storage errors to a response. A failed
// fetch is reported as an error state, never as an empty board.
func writeLoadError(w http.ResponseWriter, what string, err error) {
	var fetchErr *storage.FetchError
	switch {
	case errors.Is(err, board.ErrNoSession):
		http.Error(w, "missing "+session.TenantHeader+" header", http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, what+" not found", http.StatusNotFound)
	case errors.As(err, &fetchErr):
		log.Printf("[API] %s unavailable: %v", what, err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Status: "error", Error: what + " unavailable"})
	default:
		log.Printf("[API] %s: %v", what, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func tenantID(r *http.Request) string {
	s, _ := session.FromContext(r.Context())
	return s.TenantID
}

// SearchHandler searches the tenant's candidates
// @Summary Search candidates
// @Description Search for candidates based on criteria (name, location, skills, job)
// @Tags candidates
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant"
// @Param criteria body storage.Criteria true "Search criteria"
// @Success 200 {array} storage.CandidateRecord
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /search [post]
func (a *API) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var crit storage.Criteria
	if err := json.NewDecoder(r.Body).Decode(&crit); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	candidates, err := a.db.SearchCandidates(r.Context(), tenantID(r), &crit)
	if err != nil {
		log.Printf("[API] search: %v", err)
		http.Error(w, "search error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}
