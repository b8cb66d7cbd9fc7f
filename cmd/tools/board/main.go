package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"ats-pipeline/internal/board"
	"ats-pipeline/internal/config"
	"ats-pipeline/internal/pipeline"
	"ats-pipeline/internal/render"
	"ats-pipeline/internal/session"
	"ats-pipeline/internal/stages"
	"ats-pipeline/internal/storage"
)

func main() {
	var (
		tenantID  = flag.String("tenant", "", "tenant id (required)")
		jobID     = flag.String("job", "", "job id (required)")
		width     = flag.Int("width", 120, "terminal width")
		query     = flag.String("q", "", "filter by name, email or skill")
		source    = flag.String("source", "", "filter by source")
		minRating = flag.Int("min-rating", 0, "minimum rating")
		stats     = flag.Bool("analytics", false, "print stage counts and conversions below the board")
	)
	flag.Parse()

	if *tenantID == "" || *jobID == "" {
		log.Fatal("-tenant and -job are required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	catalog, err := stages.Load(cfg.StagesFile)
	if err != nil {
		log.Fatalf("stages: %v", err)
	}
	db, err := storage.NewDB(cfg.StorageDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	b := board.New(db, catalog, board.Options{})
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = session.WithSession(ctx, session.Session{TenantID: *tenantID})

	f := pipeline.Filter{Query: *query, Source: *source, MinRating: *minRating}
	p, job, err := b.Pipeline(ctx, *jobID, f)
	if err != nil {
		log.Fatalf("load pipeline: %v", err)
	}

	fmt.Printf("%s (%s)\n\n", job.Title, job.ID)
	fmt.Println(render.Board(p, *width))

	if *stats {
		a := pipeline.ComputeAnalytics(p)
		fmt.Printf("\n%d candidates, average rating %.2f\n", a.Total, a.AverageRating)
		for _, c := range a.Conversions {
			fmt.Printf("  %s -> %s: %d/%d (snapshot %.1f%%)\n",
				c.FromStageID, c.ToStageID, c.ToCount, c.FromCount+c.ToCount, c.SnapshotConversion*100)
		}
	}
}
