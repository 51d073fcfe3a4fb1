// Package stats aggregates per-file and run-level counters and renders
// them as the run's stats document (spec.md §4.9, §6 "Stats document
// schema").
package stats

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Status names the outcome recorded for one file.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// FileRecord is one file's entry in the stats document's per-file array.
type FileRecord struct {
	Path                    string  `yaml:"path"`
	CharsProcessed          int     `yaml:"chars_processed"`
	SentencesDetected       int     `yaml:"sentences_detected"`
	ProcessingTimeMS        float64 `yaml:"processing_time_ms"`
	SentenceDetectionTimeMS float64 `yaml:"sentence_detection_time_ms"`
	CharsPerSec             float64 `yaml:"chars_per_sec"`
	Status                  Status  `yaml:"status"`
	Error                   string  `yaml:"error,omitempty"`

	// SentenceLengths holds one entry per sentence's normalized rune
	// length, populated only when --sentence-length-stats is set. It
	// feeds the document-level distribution in Finish and is never
	// itself serialized (the per-file array would dominate the document).
	SentenceLengths []int `yaml:"-"`
}

// SentenceLengthDistribution summarizes sentence lengths (in runes) across
// every sentence detected in a run.
type SentenceLengthDistribution struct {
	Count int     `yaml:"count"`
	Min   int     `yaml:"min"`
	Max   int     `yaml:"max"`
	Mean  float64 `yaml:"mean"`
}

// Document is the run-level stats document written at the end of a run.
type Document struct {
	RunStart                     time.Time                   `yaml:"run_start"`
	TotalProcessingTimeMS        float64                     `yaml:"total_processing_time_ms"`
	TotalSentenceDetectionTimeMS float64                     `yaml:"total_sentence_detection_time_ms"`
	TotalCharsProcessed          int                         `yaml:"total_chars_processed"`
	TotalSentencesDetected       int                         `yaml:"total_sentences_detected"`
	OverallCharsPerSec           float64                     `yaml:"overall_chars_per_sec"`
	OverallDetectionCharsPerSec  float64                     `yaml:"overall_detection_chars_per_sec"`
	FilesProcessed               int                         `yaml:"files_processed"`
	FilesSkipped                 int                         `yaml:"files_skipped"`
	FilesFailed                  int                         `yaml:"files_failed"`
	SentenceLengths              *SentenceLengthDistribution `yaml:"sentence_lengths,omitempty"`
	Files                        []FileRecord                `yaml:"files"`
}

// Aggregator accumulates FileRecords under a single lock as workers
// finish, in any interleaving (spec.md §5, "Stats Aggregator ... mutated
// under a single-writer discipline").
type Aggregator struct {
	mu       sync.Mutex
	runStart time.Time
	files    []FileRecord
}

// New creates an Aggregator whose run clock starts now.
func New(runStart time.Time) *Aggregator {
	return &Aggregator{runStart: runStart}
}

// Record adds one file's outcome. Safe for concurrent use.
func (a *Aggregator) Record(r FileRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.files = append(a.files, r)
}

// Finish computes the run-level aggregates over every recorded file and
// returns the finished Document. It does not reset the Aggregator.
func (a *Aggregator) Finish() Document {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc := Document{
		RunStart: a.runStart,
		Files:    append([]FileRecord(nil), a.files...),
	}

	var (
		lenCount int
		lenMin   int
		lenMax   int
		lenSum   int
	)
	for _, f := range doc.Files {
		switch f.Status {
		case StatusSuccess:
			doc.FilesProcessed++
		case StatusSkipped:
			doc.FilesSkipped++
		case StatusFailed:
			doc.FilesFailed++
		}
		doc.TotalProcessingTimeMS += f.ProcessingTimeMS
		doc.TotalSentenceDetectionTimeMS += f.SentenceDetectionTimeMS
		doc.TotalCharsProcessed += f.CharsProcessed
		doc.TotalSentencesDetected += f.SentencesDetected

		for _, n := range f.SentenceLengths {
			if lenCount == 0 || n < lenMin {
				lenMin = n
			}
			if n > lenMax {
				lenMax = n
			}
			lenSum += n
			lenCount++
		}
	}

	if doc.TotalProcessingTimeMS > 0 {
		doc.OverallCharsPerSec = float64(doc.TotalCharsProcessed) / (doc.TotalProcessingTimeMS / 1000)
	}
	doc.OverallDetectionCharsPerSec = CharsPerSec(doc.TotalCharsProcessed, doc.TotalSentenceDetectionTimeMS)

	if lenCount > 0 {
		doc.SentenceLengths = &SentenceLengthDistribution{
			Count: lenCount,
			Min:   lenMin,
			Max:   lenMax,
			Mean:  float64(lenSum) / float64(lenCount),
		}
	}

	return doc
}

// CharsPerSec computes a characters-per-second rate over a window of ms
// milliseconds, guarding against a zero duration.
func CharsPerSec(chars int, ms float64) float64 {
	if ms <= 0 {
		return 0
	}
	return float64(chars) / (ms / 1000)
}

// WriteTo renders doc as YAML and writes it to path.
func WriteTo(path string, doc Document) error {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("stats: marshaling document: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("stats: writing %s: %w", path, err)
	}
	return nil
}
