package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"ats-pipeline/internal/config"
	"ats-pipeline/internal/pipeline"
	"ats-pipeline/internal/stages"
	"ats-pipeline/internal/storage"
)

const actor = "backfill_stages"

type reassignment struct {
	CandidateID string
	Name        string
	FromStageID string
	ToStageID   string
}

func main() {
	var (
		dryRun   bool
		limit    int
		tenantID string
		jobID    string
		mapping  string
	)
	flag.BoolVar(&dryRun, "dry-run", true, "If true, do not persist updates; just print changes")
	flag.IntVar(&limit, "limit", 200, "Max number of candidates to reassign in one run")
	flag.StringVar(&tenantID, "tenant", "", "Only process this tenant (default: all)")
	flag.StringVar(&jobID, "job", "", "Only process this job")
	flag.StringVar(&mapping, "map", "", "Renamed stages as old=new pairs, comma separated (e.g. phone_screen=screening)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	renames, err := parseMapping(mapping)
	if err != nil {
		log.Fatalf("-map: %v", err)
	}

	catalog, err := stages.Load(cfg.StagesFile)
	if err != nil {
		log.Fatalf("stages: %v", err)
	}

	log.Printf("Connecting to DB...")
	db, err := storage.NewDB(cfg.StorageDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	jobs, err := db.ListJobs(ctx, tenantID)
	if err != nil {
		log.Fatalf("list jobs failed: %v", err)
	}

	total := 0
	for _, job := range jobs {
		if jobID != "" && job.ID != jobID {
			continue
		}
		if total >= limit {
			log.Printf("Limit %d reached, stopping", limit)
			break
		}

		records, err := db.ListCandidatesByJob(ctx, job.TenantID, job.ID)
		if err != nil {
			log.Printf("failed to load candidates for job %s: %v", job.ID, err)
			continue
		}

		plan := planReassignments(catalog.For(job.JobType), records, renames)
		if len(plan) == 0 {
			continue
		}
		log.Printf("Job %s (%s, tenant %s): %d candidate(s) on unknown stages", job.ID, job.Title, job.TenantID, len(plan))

		for _, r := range plan {
			if total >= limit {
				break
			}
			total++

			if dryRun {
				log.Printf("[dry-run] Would move %s (%s): %q -> %q", r.Name, r.CandidateID, r.FromStageID, r.ToStageID)
				continue
			}

			t := &storage.StageTransition{
				TenantID:    job.TenantID,
				JobID:       job.ID,
				CandidateID: r.CandidateID,
				FromStageID: r.FromStageID,
				ToStageID:   r.ToStageID,
				MovedBy:     actor,
				MovedAt:     time.Now(),
			}
			if err := db.MoveCandidateStage(ctx, t); err != nil {
				log.Printf("failed to reassign candidate %s: %v", r.CandidateID, err)
				continue
			}
			log.Printf("Moved %s (%s): %q -> %q", r.Name, r.CandidateID, r.FromStageID, r.ToStageID)
		}
	}

	log.Printf("Done. %d candidate(s) processed (dry-run=%v)", total, dryRun)
}

// planReassignments picks a target for every candidate whose stage is not
// configured: the renamed stage when mapped to a known one, otherwise the
// first stage.
func planReassignments(jobStages []pipeline.Stage, records []storage.CandidateRecord, renames map[string]string) []reassignment {
	if len(jobStages) == 0 {
		return nil
	}
	known := make(map[string]bool, len(jobStages))
	for _, s := range jobStages {
		known[s.ID] = true
	}

	var plan []reassignment
	for _, rec := range records {
		if known[rec.StageID] {
			continue
		}
		target := jobStages[0].ID
		if to, ok := renames[rec.StageID]; ok && known[to] {
			target = to
		}
		plan = append(plan, reassignment{
			CandidateID: rec.ID,
			Name:        rec.Name,
			FromStageID: rec.StageID,
			ToStageID:   target,
		})
	}
	return plan
}

func parseMapping(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		from, to, ok := strings.Cut(pair, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("invalid pair %q (want old=new)", pair)
		}
		out[from] = to
	}
	return out, nil
}
