package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ayodele/xtractor/internal/engine"
	"github.com/ayodele/xtractor/internal/hierarchy"
	"github.com/ayodele/xtractor/internal/pagesource"
	"github.com/ayodele/xtractor/internal/runstats"
	"github.com/ayodele/xtractor/internal/store"
)

// Worker processes a single extraction job.
type Worker struct {
	store     *store.Store
	stats     *runstats.Tracker
	log       *slog.Logger
	engineCfg engine.Config
	exportDir string
}

func NewWorker(st *store.Store, stats *runstats.Tracker, log *slog.Logger, engineCfg engine.Config, exportDir string) *Worker {
	return &Worker{
		store:     st,
		stats:     stats,
		log:       log,
		engineCfg: engineCfg,
		exportDir: exportDir,
	}
}

// Process runs the full extraction pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	// Phase 1: Read pages
	job.SetStatus(StatusReading, "reading")
	reader, err := pagesource.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "reading")
		return
	}

	data := job.FileData()
	job.SetContentHash(ContentHashHex(data))

	pages, err := reader.Read(bytes.NewReader(data), job.Filename)
	if err != nil {
		log.Error("read failed", "error", err)
		job.AddError(fmt.Sprintf("read: %s", err))
		job.SetStatus(StatusFailed, "reading")
		return
	}
	job.SetTotalPages(len(pages))
	log.Info("document read", "pages", len(pages))

	// Phase 2: Extract hierarchy
	job.SetStatus(StatusExtracting, "extracting")
	enginePages := make([]engine.Page, 0, len(pages))
	for _, p := range pages {
		enginePages = append(enginePages, p)
	}

	eng := engine.New(w.engineCfg, w.log)
	doc, docStats, err := eng.Extract(ctx, enginePages)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	job.SetCounts(docStats.StateCount, docStats.LGACount, docStats.WardCount)
	log.Info("extraction complete",
		"states", docStats.StateCount,
		"lgas", docStats.LGACount,
		"wards", docStats.WardCount)

	hadErrors := false
	if docStats.LGACount == 0 {
		log.Warn("no boundary records found in document")
		job.AddError("no boundary records found")
		hadErrors = true
	}

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	logRec, err := w.store.SaveDocument(doc, job.Filename)
	if err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	log.Info("storage complete",
		"lgas_created", logRec.LGAsExtracted,
		"wards_created", logRec.WardsExtracted)

	// Phase 4: Optional JSON export
	if w.exportDir != "" {
		if err := w.exportDocument(job.ID, doc); err != nil {
			log.Error("export write failed", "error", err)
			job.AddError(fmt.Sprintf("export: %s", err))
			hadErrors = true
		}
	}

	w.stats.Record(time.Since(start), len(pages), docStats.LGACount, docStats.WardCount)

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

// exportDocument writes the extracted hierarchy as a JSON file named after the job.
func (w *Worker) exportDocument(jobID string, doc *hierarchy.Document) error {
	if err := os.MkdirAll(w.exportDir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	path := filepath.Join(w.exportDir, jobID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
