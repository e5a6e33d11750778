package convert

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/rs/zerolog/log"
)

// Config holds the settings shared by every conversion in a run.
type Config struct {
	SourceDir string
	OutputDir string
	ThumbSize int // 0 keeps the original size
	Workers   int
}

// Job is one source image, addressed relative to SourceDir.
type Job struct {
	Source string
	Rel    string
}

// Result holds the outcome of converting one image.
type Result struct {
	Source  string
	Output  string
	Success bool
	Error   string
}

// Collect walks sourceDir for convertible images. outputDir is skipped when
// it sits inside sourceDir. When two sources map to the same WebP path only
// the first in walk order is kept.
func Collect(sourceDir, outputDir string) ([]Job, error) {
	absOut, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("convert: resolve %s: %w", outputDir, err)
	}
	seen := make(map[string]string)
	var jobs []Job

	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == sourceDir {
				return nil
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if abs == absOut {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSource(filepath.Ext(d.Name())) {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		out := OutputRel(rel)
		if prev, dup := seen[out]; dup {
			log.Warn().Str("source", rel).Str("kept", prev).Msg("skipping source with duplicate output")
			return nil
		}
		seen[out] = rel
		jobs = append(jobs, Job{Source: path, Rel: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("convert: walk %s: %w", sourceDir, err)
	}

	return jobs, nil
}

// OutputRel swaps the extension of a source path for .webp.
func OutputRel(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ".webp"
}

// Run converts all jobs using a worker pool.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	workers := max(1, cfg.Workers)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info().Int64("done", p).Int("total", total).Msgf("%.1f images/sec", rate)
				}
			}
		}
	}()

	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job Job) Result {
	outPath := filepath.Join(cfg.OutputDir, OutputRel(job.Rel))
	fail := func(format string, args ...any) Result {
		return Result{Source: job.Rel, Output: outPath, Error: fmt.Sprintf(format, args...)}
	}

	img, err := LoadImage(job.Source)
	if err != nil {
		return fail("%v", err)
	}

	img = Fit(img, cfg.ThumbSize)

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fail("%v", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fail("%v", err)
	}

	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fail("WebP encode: %v", err)
	}
	if err := f.Close(); err != nil {
		return fail("%v", err)
	}

	log.Debug().Str("source", job.Rel).Str("output", outPath).Msg("converted")
	return Result{Source: job.Rel, Output: outPath, Success: true}
}
