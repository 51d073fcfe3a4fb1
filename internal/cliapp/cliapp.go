// Package cliapp wires the seamscan command-line surface: flag parsing via
// cobra, logging via logrus, and one full run of the pipeline (spec.md §6,
// "CLI surface").
package cliapp

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seamscan/seamscan/internal/corpus"
	"github.com/seamscan/seamscan/internal/pipeline"
	"github.com/seamscan/seamscan/internal/restartlog"
	"github.com/seamscan/seamscan/internal/seam/detect"
	"github.com/seamscan/seamscan/internal/seam/lattice"
	"github.com/seamscan/seamscan/internal/seam/normalize"
	"github.com/seamscan/seamscan/internal/stats"
)

const defaultRestartLogName = ".seamscan-restart.log"
const defaultStatsOutputName = "seamscan-stats.yaml"

var log = logrus.StandardLogger()

type flags struct {
	overwrite          bool
	failFast           bool
	noProgress         bool
	quiet              bool
	statsOutput        string
	clearRestartLog    bool
	maxCPUs            int
	sentenceLengthStat bool
	debugDump          bool
	debugText          string
	debugStdin         bool
}

// Execute builds the root command and runs it against os.Args.
func Execute() error {
	var f flags

	root := &cobra.Command{
		Use:          "seamscan [root|file]",
		Short:        "seamscan",
		Long:         "seamscan detects sentence boundaries across a book corpus, dialog-aware, and writes one sibling aux file of spans per source file.",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			return run(cmd.Context(), target, f)
		},
	}

	root.Flags().BoolVar(&f.overwrite, "overwrite", false, "reprocess files even if already marked complete")
	root.Flags().BoolVar(&f.failFast, "fail-fast", false, "abort the run on the first file error instead of continuing")
	root.Flags().BoolVar(&f.noProgress, "no-progress", false, "suppress progress output")
	root.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "suppress all non-error output")
	root.Flags().StringVar(&f.statsOutput, "stats-output", defaultStatsOutputName, "path to write the run's stats document")
	root.Flags().BoolVar(&f.clearRestartLog, "clear-restart-log", false, "clear the restart log before running")
	root.Flags().IntVar(&f.maxCPUs, "max-cpus", runtime.NumCPU(), "maximum worker concurrency")
	root.Flags().BoolVar(&f.sentenceLengthStat, "sentence-length-stats", false, "include sentence-length distribution in the stats document")
	root.Flags().BoolVar(&f.debugDump, "debug-dump", false, "accepted, but only logs a warning; no _seams-debug.txt file is written")
	root.Flags().StringVar(&f.debugText, "debug-text", "", "run the detector over this literal string and print its records, skipping the pipeline")
	root.Flags().BoolVar(&f.debugStdin, "debug-stdin", false, "run the detector over stdin and print its records, skipping the pipeline")

	return root.Execute()
}

func run(ctx context.Context, target string, f flags) error {
	configureLogging(f)

	if f.debugText != "" || f.debugStdin {
		return runDebug(f)
	}

	if f.maxCPUs < 1 {
		f.maxCPUs = 1
	}

	restartLogPath := filepath.Join(workingDirFor(target), defaultRestartLogName)
	if f.clearRestartLog {
		if err := restartlog.Clear(restartLogPath); err != nil {
			return err
		}
	}

	if f.debugDump {
		log.Warn("seamscan: --debug-dump is accepted but not yet wired to a writer in this build; no _seams-debug.txt files will be produced")
	}

	paths, err := corpus.Discover(target)
	if err != nil {
		return err
	}
	if !f.quiet {
		log.Infof("seamscan: discovered %d source file(s) under %s", len(paths), target)
	}

	l, err := lattice.New()
	if err != nil {
		return fmt.Errorf("cliapp: building lattice: %w", err)
	}

	completed, err := restartlog.ReadCompleted(restartLogPath)
	if err != nil {
		return err
	}

	rl, err := restartlog.Open(restartLogPath)
	if err != nil {
		return err
	}
	defer rl.Close()

	agg := stats.New(time.Now())

	policy := pipeline.Resilient
	if f.failFast {
		policy = pipeline.FailFast
	}
	runner := pipeline.NewRunner(pipeline.Config{
		Workers:             f.maxCPUs,
		Policy:              policy,
		Overwrite:           f.overwrite,
		SentenceLengthStats: f.sentenceLengthStat,
	}, detect.New(l), rl, agg, completed)

	runErr := runner.Run(ctx, paths)

	doc := agg.Finish()
	if err := stats.WriteTo(f.statsOutput, doc); err != nil {
		log.WithError(err).Error("seamscan: failed to write stats document")
	}

	if !f.quiet {
		log.Infof("seamscan: processed=%d skipped=%d failed=%d", doc.FilesProcessed, doc.FilesSkipped, doc.FilesFailed)
	}

	return runErr
}

// runDebug runs the detector directly over a literal string or stdin,
// bypassing corpus discovery and the pipeline entirely. It prints each
// record's span and normalized text to stdout.
func runDebug(f flags) error {
	var src []byte
	if f.debugStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("cliapp: reading stdin: %w", err)
		}
		src = data
	} else {
		src = []byte(f.debugText)
	}

	l, err := lattice.New()
	if err != nil {
		return fmt.Errorf("cliapp: building lattice: %w", err)
	}
	records, err := detect.New(l).Detect(src)
	if err != nil {
		return err
	}
	for _, r := range records {
		fmt.Printf("%d\t%s\t%s\n", r.Index, normalize.String(r.Raw), r.Span.String())
	}
	return nil
}

func configureLogging(f flags) {
	switch {
	case f.quiet:
		log.SetLevel(logrus.ErrorLevel)
	case f.noProgress:
		log.SetLevel(logrus.WarnLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
}

func workingDirFor(target string) string {
	info, err := os.Stat(target)
	if err == nil && !info.IsDir() {
		return filepath.Dir(target)
	}
	return target
}
