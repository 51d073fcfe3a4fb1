// Package pipeline orchestrates parallel file processing: bounded worker
// concurrency, mmap input, restart-log bookkeeping, and stats collection
// around the Dialog State Machine (spec.md §4.7).
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"

	"github.com/seamscan/seamscan/internal/auxfile"
	"github.com/seamscan/seamscan/internal/restartlog"
	"github.com/seamscan/seamscan/internal/seam/detect"
	"github.com/seamscan/seamscan/internal/seam/normalize"
	"github.com/seamscan/seamscan/internal/sourcefile"
	"github.com/seamscan/seamscan/internal/stats"
)

// ErrorPolicy selects how a per-file error is handled at the run level
// (spec.md §4.7, "Error policy").
type ErrorPolicy int

const (
	// Resilient logs each file's error, counts it as failed, and keeps
	// processing the rest of the run.
	Resilient ErrorPolicy = iota
	// FailFast aborts the run on the first error; in-flight tasks finish
	// their current file and then exit.
	FailFast
)

// Config controls one run of the pipeline.
type Config struct {
	// Workers bounds concurrency. Zero or negative defaults to
	// runtime.NumCPU().
	Workers int
	Policy  ErrorPolicy
	// Overwrite reprocesses files even if the restart log marks them
	// complete.
	Overwrite bool
	// SentenceLengthStats records each sentence's normalized rune length
	// so the run's stats document can report a length distribution.
	SentenceLengthStats bool
}

// Runner wires the per-file Dialog State Machine to the shared restart log
// and stats aggregator across a bounded worker pool.
type Runner struct {
	cfg        Config
	detector   *detect.Detector
	restartLog *restartlog.Log
	statsAgg   *stats.Aggregator
	completed  map[string]struct{}
}

// NewRunner constructs a Runner. completed is the set of source paths the
// restart log already marks done (from restartlog.ReadCompleted), consulted
// once per file unless cfg.Overwrite is set.
func NewRunner(cfg Config, d *detect.Detector, rl *restartlog.Log, agg *stats.Aggregator, completed map[string]struct{}) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if completed == nil {
		completed = map[string]struct{}{}
	}
	return &Runner{cfg: cfg, detector: d, restartLog: rl, statsAgg: agg, completed: completed}
}

// Run processes every path, blocking until the whole batch is done (or
// the run is aborted in FailFast mode). The returned error is nil or a
// *multierror.Error aggregating every failed file.
func (r *Runner) Run(ctx context.Context, paths []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string)
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result error
	)

	recordErr := func(path string, err error) {
		mu.Lock()
		defer mu.Unlock()
		result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
		if r.cfg.Policy == FailFast {
			cancel()
		}
	}

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case path, ok := <-jobs:
				if !ok {
					return
				}
				if err := r.processOne(path); err != nil {
					recordErr(path, err)
				}
			}
		}
	}

	wg.Add(r.cfg.Workers)
	for i := 0; i < r.cfg.Workers; i++ {
		go worker()
	}

feed:
	for _, p := range paths {
		select {
		case jobs <- p:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return result
}

// processOne runs the full per-file lifecycle of spec.md §4.7: skip check,
// mmap, detect, aux write, restart-log append, stats update.
func (r *Runner) processOne(path string) error {
	start := time.Now()

	if !r.cfg.Overwrite {
		_, loggedComplete := r.completed[path]
		if loggedComplete || auxfile.IsComplete(auxfile.DestPath(path)) {
			r.statsAgg.Record(stats.FileRecord{Path: path, Status: stats.StatusSkipped})
			return nil
		}
	}

	src, err := sourcefile.Open(path)
	if err != nil {
		r.statsAgg.Record(stats.FileRecord{Path: path, Status: stats.StatusFailed, Error: err.Error()})
		return err
	}
	defer src.Close()

	detectStart := time.Now()
	records, err := r.detector.Detect(src.Data)
	detectMS := float64(time.Since(detectStart)) / float64(time.Millisecond)
	if err != nil {
		r.statsAgg.Record(stats.FileRecord{
			Path: path, Status: stats.StatusFailed, Error: err.Error(),
			SentenceDetectionTimeMS: detectMS,
		})
		return err
	}

	w, err := auxfile.Create(path)
	if err != nil {
		r.statsAgg.Record(stats.FileRecord{Path: path, Status: stats.StatusFailed, Error: err.Error()})
		return err
	}
	for _, rec := range records {
		if err := w.WriteRecord(rec); err != nil {
			w.Abort()
			r.statsAgg.Record(stats.FileRecord{Path: path, Status: stats.StatusFailed, Error: err.Error()})
			return err
		}
	}
	if err := w.Commit(); err != nil {
		r.statsAgg.Record(stats.FileRecord{Path: path, Status: stats.StatusFailed, Error: err.Error()})
		return err
	}

	if err := r.restartLog.Append(path); err != nil {
		r.statsAgg.Record(stats.FileRecord{Path: path, Status: stats.StatusFailed, Error: err.Error()})
		return err
	}

	chars := utf8.RuneCount(src.Data)
	totalMS := float64(time.Since(start)) / float64(time.Millisecond)

	var lengths []int
	if r.cfg.SentenceLengthStats {
		lengths = make([]int, len(records))
		for i, rec := range records {
			lengths[i] = utf8.RuneCountInString(normalize.String(rec.Raw))
		}
	}

	r.statsAgg.Record(stats.FileRecord{
		Path:                    path,
		CharsProcessed:          chars,
		SentencesDetected:       len(records),
		ProcessingTimeMS:        totalMS,
		SentenceDetectionTimeMS: detectMS,
		CharsPerSec:             stats.CharsPerSec(chars, totalMS),
		Status:                  stats.StatusSuccess,
		SentenceLengths:         lengths,
	})
	return nil
}
