package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"ats-pipeline/internal/session"
)

func NewRouter(a *API, swaggerURL string) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL(swaggerURL),
	))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Jobs
	mux.HandleFunc("/api/jobs", a.JobsHandler)
	mux.HandleFunc("/api/jobs/{jobID}/stages", a.JobStagesHandler)

	// Pipeline board
	mux.HandleFunc("/api/jobs/{jobID}/pipeline", a.PipelineHandler)
	mux.HandleFunc("/api/jobs/{jobID}/pipeline/move", a.MoveHandler)
	mux.HandleFunc("/api/jobs/{jobID}/pipeline/analytics", a.AnalyticsHandler)
	mux.HandleFunc("/api/jobs/{jobID}/pipeline/export", a.ExportHandler)
	mux.HandleFunc("/api/jobs/{jobID}/pipeline/reload", a.ReloadHandler)

	// Candidates
	mux.HandleFunc("/api/candidates", a.CreateCandidateHandler)
	mux.HandleFunc("/api/candidates/{id}/transitions", a.TransitionsHandler)
	mux.HandleFunc("/api/candidates/{id}/resume", a.ResumeUploadHandler)
	mux.HandleFunc("/api/search", a.SearchHandler)

	return session.Middleware(mux)
}
