package cli

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"faceplate/pkg/errors"
	"faceplate/pkg/pipeline"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	jobs          int    // parallel workers
	template      string // sheet template override for every spec
	overrides     string // measurement notes applied to every spec
	onlyRequested bool
}

// batchCommand creates the batch command: render many specs at once.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{jobs: 4}

	cmd := &cobra.Command{
		Use:   "batch <dir|spec.toml...>",
		Short: "Render many panel specs in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "parallel render workers")
	cmd.Flags().StringVar(&opts.template, "template", "", "sheet template DXF applied to every spec")
	cmd.Flags().StringVar(&opts.overrides, "overrides", "", "measurement notes applied to every spec")
	cmd.Flags().BoolVar(&opts.onlyRequested, "only-requested", false, "keep only dimensions the notes request")

	return cmd
}

// batchJob is one spec queued for rendering.
type batchJob struct {
	ID   string // short uuid, labels the job in logs
	Spec string
}

// batchResult is the outcome of one job.
type batchResult struct {
	Job      batchJob
	Output   string
	Err      error
	Duration time.Duration
}

func (c *CLI) runBatch(ctx context.Context, args []string, opts *batchOpts) error {
	specs, err := collectSpecs(args)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return errors.New(errors.ErrCodeSpecNotFound, "no .toml specs found in %s", strings.Join(args, ", "))
	}

	jobs := make([]batchJob, len(specs))
	for i, s := range specs {
		jobs[i] = batchJob{ID: uuid.NewString()[:8], Spec: s}
	}

	results := make(chan batchResult, len(jobs))
	go c.renderJobs(ctx, jobs, opts, results)

	var failed, done int
	report := func(r batchResult) {
		done++
		if r.Err != nil {
			failed++
		}
	}

	if stderrIsTTY() {
		if err := runBatchUI(len(jobs), results, report); err != nil {
			return err
		}
	} else {
		for range jobs {
			r := <-results
			report(r)
			if r.Err != nil {
				c.Logger.Error("render failed", "job", r.Job.ID, "spec", r.Job.Spec, "err", r.Err)
			} else {
				c.Logger.Info("rendered", "job", r.Job.ID, "spec", r.Job.Spec,
					"output", r.Output, "duration", r.Duration.Round(time.Millisecond))
			}
		}
	}

	if failed > 0 {
		printError("%d of %d specs failed", failed, done)
		return errors.New(errors.ErrCodeRender, "%d of %d specs failed", failed, done)
	}
	printSuccess("Rendered %d specs", done)
	return nil
}

// renderJobs fans the job list out over opts.jobs workers.
func (c *CLI) renderJobs(ctx context.Context, jobs []batchJob, opts *batchOpts, results chan<- batchResult) {
	workers := opts.jobs
	if workers < 1 {
		workers = 1
	}

	queue := make(chan batchJob)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runner := pipeline.NewRunner(nil, c.Logger)
			defer runner.Close()
			for job := range queue {
				start := time.Now()
				out := outputPath("", job.Spec, "dxf")
				_, err := runner.Execute(ctx, pipeline.Options{
					SpecPath:      job.Spec,
					TemplatePath:  opts.template,
					OverridesPath: opts.overrides,
					OnlyRequested: opts.onlyRequested,
					OutputPath:    out,
					Logger:        c.Logger.With("job", job.ID),
				})
				results <- batchResult{Job: job, Output: out, Err: err, Duration: time.Since(start)}
			}
		}()
	}

	for _, job := range jobs {
		select {
		case queue <- job:
		case <-ctx.Done():
			results <- batchResult{Job: job, Err: ctx.Err()}
		}
	}
	close(queue)
	wg.Wait()
}

// collectSpecs expands directory arguments into their .toml files.
func collectSpecs(args []string) ([]string, error) {
	var specs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSpecNotFound, err, "stat %s", arg)
		}
		if !info.IsDir() {
			specs = append(specs, arg)
			continue
		}
		found, err := filepath.Glob(filepath.Join(arg, "*.toml"))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSpecNotFound, err, "glob %s", arg)
		}
		specs = append(specs, found...)
	}
	sort.Strings(specs)
	return specs, nil
}
