package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/andybalholm/brotli"

	"ats-pipeline/internal/board"
	"ats-pipeline/internal/config"
	"ats-pipeline/internal/exporter"
	"ats-pipeline/internal/pipeline"
	"ats-pipeline/internal/session"
	"ats-pipeline/internal/sftpclient"
	"ats-pipeline/internal/stages"
	"ats-pipeline/internal/storage"
)

func main() {
	var (
		tenantID   = flag.String("tenant", "", "tenant id (required)")
		jobID      = flag.String("job", "", "job id (required)")
		outPath    = flag.String("out", "", "output path (default pipeline_<job>_<report>.csv)")
		report     = flag.String("report", "candidates", "candidates or analytics")
		source     = flag.String("source", "", "only export candidates from this source")
		minRating  = flag.Int("min-rating", 0, "only export candidates rated at least this")
		compress   = flag.Bool("brotli", false, "brotli-compress the output (.br suffix)")
		uploadSFTP = flag.Bool("sftp", false, "upload the generated file via SFTP")
	)
	flag.Parse()

	if *tenantID == "" || *jobID == "" {
		log.Fatal("-tenant and -job are required")
	}
	if err := checkReport(*report); err != nil {
		log.Fatal(err)
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

	rootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx := session.WithSession(rootCtx, session.Session{TenantID: *tenantID, UserID: "export_pipeline"})

	p, job, err := b.Pipeline(ctx, *jobID, pipeline.Filter{Source: *source, MinRating: *minRating})
	if err != nil {
		log.Fatalf("load pipeline: %v", err)
	}

	path := *outPath
	if path == "" {
		path = fmt.Sprintf("pipeline_%s_%s.csv", job.ID, *report)
	}
	if *compress {
		path += ".br"
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal(err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	if err := writeReport(f, p, *report, *compress); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s report for job %s (%d candidates) to %s", *report, job.ID, p.Len(), path)

	if *uploadSFTP {
		remoteName := filepath.Base(path)
		upCfg := sftpclient.Config{
			Host:                  cfg.SFTPHost,
			Port:                  cfg.SFTPPort,
			User:                  cfg.SFTPUser,
			Pass:                  cfg.SFTPPass,
			RemoteDir:             cfg.SFTPDir,
			KnownHostsFile:        cfg.SFTPKnownHosts,
			InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
		}

		upCtx, upCancel := context.WithTimeout(rootCtx, 5*time.Minute)
		defer upCancel()

		if err := sftpclient.UploadFile(upCtx, upCfg, path, remoteName); err != nil {
			log.Fatal(err)
		}
		log.Printf("uploaded to sftp://%s:%d%s/%s", upCfg.Host, upCfg.Port, upCfg.RemoteDir, remoteName)
	}
}

func checkReport(report string) error {
	switch report {
	case "candidates", "analytics":
		return nil
	}
	return fmt.Errorf("unknown report %q (candidates|analytics)", report)
}

// writeReport writes the chosen CSV report, brotli-compressed if asked.
func writeReport(w io.Writer, p *pipeline.Pipeline, report string, compress bool) error {
	if err := checkReport(report); err != nil {
		return err
	}

	var bw *brotli.Writer
	if compress {
		bw = brotli.NewWriterLevel(w, brotli.BestCompression)
		w = bw
	}

	var err error
	if report == "analytics" {
		err = exporter.WriteAnalyticsCSV(w, pipeline.ComputeAnalytics(p))
	} else {
		err = exporter.WritePipelineCSV(w, p)
	}
	if err != nil {
		return err
	}

	if bw != nil {
		return bw.Close()
	}
	return nil
}
