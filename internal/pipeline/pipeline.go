// Package pipeline drives a full build run: resolved productions are
// downloaded into the output directory one at a time, and per-item
// failures are collected rather than aborting the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sgilissen/DemoscenePackBuilder/internal/download"
	"github.com/sgilissen/DemoscenePackBuilder/internal/resolver"
	"github.com/sgilissen/DemoscenePackBuilder/pkg/demozoo"
)

// Result records the outcome for a single production.
type Result struct {
	Production demozoo.Production
	Path       string // stored file path on success
	Err        error  // failure cause; nil for successes and skips
}

// Report enumerates per-production outcomes of a run.
type Report struct {
	Downloaded []Result // fetched and stored
	Failed     []Result // at least one link tried, all failed
	Skipped    []Result // no download available
}

// Attempted returns how many productions had at least one download try.
func (r *Report) Attempted() int {
	return len(r.Downloaded) + len(r.Failed)
}

// AllFailed reports whether downloads were attempted and none
// succeeded.
func (r *Report) AllFailed() bool {
	return len(r.Downloaded) == 0 && len(r.Failed) > 0
}

// Pipeline wires the resolver and fetcher into a sequential run.
type Pipeline struct {
	resolver *resolver.Resolver
	fetcher  *download.Fetcher
	delay    time.Duration
	log      *slog.Logger
	onStart  func(i, total int, p demozoo.Production)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDelay sets a politeness pause between productions.
func WithDelay(d time.Duration) Option {
	return func(p *Pipeline) {
		p.delay = d
	}
}

// WithLogger sets a logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) {
		p.log = log.With("component", "pipeline")
	}
}

// WithStartHook registers a callback invoked before each production is
// processed. The CLI uses it for progress output.
func WithStartHook(fn func(i, total int, p demozoo.Production)) Option {
	return func(p *Pipeline) {
		p.onStart = fn
	}
}

// New creates a Pipeline.
func New(r *resolver.Resolver, f *download.Fetcher, opts ...Option) *Pipeline {
	p := &Pipeline{resolver: r, fetcher: f}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes productions in order, downloading each one's best link
// into its own subdirectory of outRoot. One production's failure never
// aborts the run; cancellation stops before the next production. The
// report covers whatever was processed before return.
func (p *Pipeline) Run(ctx context.Context, prods []demozoo.Production, outRoot string) (*Report, error) {
	if err := os.MkdirAll(outRoot, 0755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}

	report := &Report{}
	for i, prod := range prods {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if i > 0 && p.delay > 0 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(p.delay):
			}
		}
		if p.onStart != nil {
			p.onStart(i+1, len(prods), prod)
		}

		links := p.resolver.Eligible(prod)
		if len(links) == 0 {
			if p.log != nil {
				p.log.Info("no download available", "id", prod.ID, "title", prod.Title)
			}
			report.Skipped = append(report.Skipped, Result{Production: prod})
			continue
		}

		destDir := filepath.Join(outRoot, DirName(prod))
		stored, err := p.fetchFirst(ctx, links, destDir)
		if err != nil {
			removeIfEmpty(destDir)
			if ctx.Err() != nil {
				// Interrupted by the user, not a download failure.
				return report, ctx.Err()
			}
			report.Failed = append(report.Failed, Result{Production: prod, Err: err})
			if p.log != nil {
				p.log.Warn("download failed", "id", prod.ID, "title", prod.Title, "error", err)
			}
			continue
		}
		report.Downloaded = append(report.Downloaded, Result{Production: prod, Path: stored})
	}
	return report, nil
}

// fetchFirst tries each link in order and returns the first stored
// path. The last error is returned when every link fails.
func (p *Pipeline) fetchFirst(ctx context.Context, links []demozoo.Link, destDir string) (string, error) {
	var lastErr error
	for _, link := range links {
		stored, err := p.fetcher.FetchAndStore(ctx, link.URL, destDir)
		if err == nil {
			return stored, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if p.log != nil {
			p.log.Debug("link failed, trying next", "url", link.URL, "error", err)
		}
	}
	return "", lastErr
}

// DirName is the deterministic per-production directory name: the
// sanitized title plus the catalog ID to avoid collisions.
func DirName(p demozoo.Production) string {
	title := download.SanitizeFilename(p.Title)
	if title == "" {
		title = "untitled"
	}
	return fmt.Sprintf("%s [%d]", title, p.ID)
}

// removeIfEmpty deletes dir when a failed download left it empty.
func removeIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) == 0 {
		_ = os.Remove(dir)
	}
}
