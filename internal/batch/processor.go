package batch

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"sdkmesh2obj/internal/convert"
	"sdkmesh2obj/internal/logx"
	"sdkmesh2obj/internal/preview"
	"sdkmesh2obj/internal/sdkmesh"
	"sdkmesh2obj/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	InputDir     string
	OutputDir    string
	TexResolver  texture.Resolver
	Preview      bool
	PreviewOpts  preview.Options
	ExtendedWebP bool
	Workers      int
	Progress     io.Writer // periodic progress lines; nil disables them
	Log          *logx.Logger
}

// Job is one mesh file, named relative to the input directory.
type Job struct {
	Rel  string
	Path string
}

// Result holds the outcome of converting one file.
type Result struct {
	Job
	OBJ     string
	MTL     string
	Preview string
	Summary convert.Result
	Success bool
	Error   string
}

// IsMeshFile reports whether name is a container, optionally LZ4 compressed.
func IsMeshFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".sdkmesh") || strings.HasSuffix(lower, ".sdkmesh.lz4")
}

// Find walks dir for mesh files and returns them sorted by relative path.
func Find(dir string) ([]Job, error) {
	var jobs []Job
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsMeshFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		jobs = append(jobs, Job{Rel: rel, Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Rel < jobs[j].Rel })
	return jobs, nil
}

// outputBase strips the container extensions from a relative path.
func outputBase(rel string) string {
	lower := strings.ToLower(rel)
	if strings.HasSuffix(lower, ".lz4") {
		rel = rel[:len(rel)-len(".lz4")]
		lower = lower[:len(lower)-len(".lz4")]
	}
	if strings.HasSuffix(lower, ".sdkmesh") {
		rel = rel[:len(rel)-len(".sdkmesh")]
	}
	return rel
}

// Run converts all jobs using a worker pool. Results are in job order.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	done := make(chan struct{})
	if cfg.Progress != nil {
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
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f files/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

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
	res := Result{Job: job}
	base := filepath.Join(cfg.OutputDir, outputBase(job.Rel))
	res.OBJ = base + ".obj"
	res.MTL = convert.MaterialPath(res.OBJ)

	c, err := sdkmesh.Open(job.Path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if err := os.MkdirAll(filepath.Dir(res.OBJ), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	summary, err := convert.Export(c, res.OBJ, nil, cfg.Log)
	summary.Input = job.Path
	res.Summary = summary
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if summary.Errors > 0 {
		res.Error = fmt.Sprintf("%d subset(s) not exported", summary.Errors)
	}

	if cfg.Preview {
		res.Preview = base + ".webp"
		img := preview.Render(c, cfg.TexResolver, cfg.PreviewOpts, cfg.Log)
		if err := preview.WriteWebP(res.Preview, img, cfg.ExtendedWebP); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	res.Success = res.Error == ""
	return res
}
