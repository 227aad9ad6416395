package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yaklabco/md2docx/pkg/convert"
)

// ErrOutputCollision indicates a source whose document path was already
// claimed by an earlier source in the same run, as with a.md and a.markdown.
var ErrOutputCollision = errors.New("output path already used")

// Converter converts one Markdown file into one document file.
type Converter interface {
	ConvertFile(ctx context.Context, src, dst string) (*convert.Result, error)
}

// Runner orchestrates multi-file conversion using a Converter.
type Runner struct {
	// Converter handles per-file processing.
	Converter Converter

	// OnOutcome, when set, is called for each file in discovery order as
	// soon as that file and every file before it are done.
	OnOutcome func(FileOutcome)
}

// New creates a new Runner with the given converter.
func New(converter Converter) *Runner {
	return &Runner{Converter: converter}
}

// job is one file to convert, with its position in discovery order.
// A job carrying err is reported without being converted.
type job struct {
	index int
	src   string
	dst   string
	err   error
}

// planJobs assigns each source its document path. The first source in
// discovery order keeps a contested path; later ones fail.
func planJobs(files []string, workDir, outputDir string) []job {
	jobs := make([]job, len(files))
	claimed := make(map[string]string, len(files))

	for i, src := range files {
		dst := convert.OutputPath(src, workDir, outputDir)
		jobs[i] = job{index: i, src: src, dst: dst}

		if first, ok := claimed[dst]; ok {
			jobs[i].err = fmt.Errorf("%w: %s is written from %s", ErrOutputCollision, dst, first)
			continue
		}
		claimed[dst] = src
	}
	return jobs
}

type indexedOutcome struct {
	index   int
	outcome FileOutcome
}

// Run discovers files under opts.Paths and converts them.
// A failing file never stops the run; its error is recorded in its outcome.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Converts them one at a time, or with opts.Jobs workers
//   - Aggregates results in discovery order
//   - Respects context cancellation between files
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.effectiveJobs(len(files))

	workCh := make(chan job)
	outCh := make(chan indexedOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for _, item := range planJobs(files, workDir, opts.OutputDir) {
			select {
			case <-ctx.Done():
				return
			case workCh <- item:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers may finish out of order; release outcomes in discovery order.
	pending := make(map[int]FileOutcome, jobs)
	next := 0

	for item := range outCh {
		pending[item.index] = item.outcome
		for {
			outcome, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			result.accumulate(outcome)
			if r.OnOutcome != nil {
				r.OnOutcome(outcome)
			}
		}
	}

	result.Stats.Duration = time.Since(started)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker converts files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan job, outCh chan<- indexedOutcome) {
	for item := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: item.src, Output: item.dst, Error: item.err}

		if item.err == nil {
			res, err := r.Converter.ConvertFile(ctx, item.src, item.dst)
			if err != nil {
				outcome.Error = err
			} else {
				outcome.Result = res
			}
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- indexedOutcome{index: item.index, outcome: outcome}:
		}
	}
}
