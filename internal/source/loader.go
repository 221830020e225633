package source

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/theirongolddev/iodda/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// LoadResult holds the output of loading a set of seed files.
type LoadResult struct {
	Budgets     []model.Budget
	TotalFiles  int
	ParsedFiles int
	FileErrors  int
	Duplicates  int
	Errors      []error // one per failed file, in path order
}

// ProgressFunc is called as each file finishes. current counts finished
// files, total is the number of files being loaded.
type ProgressFunc func(current, total int)

// LoadOptions tunes Load. The zero value is usable.
type LoadOptions struct {
	Workers  int // defaults to GOMAXPROCS
	Progress ProgressFunc
	Logger   *zerolog.Logger
}

// Load parses paths in parallel. A file that fails to parse is counted and
// skipped. Budgets keep path order, and a budget whose ID was already seen
// in an earlier file is dropped.
func Load(ctx context.Context, paths []string, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{TotalFiles: len(paths)}
	if len(paths) == 0 {
		return result, nil
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "source").Logger()
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	type parsed struct {
		budgets []model.Budget
		err     error
	}
	results := make([]parsed, len(paths))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			budgets, err := ParseFile(path)
			results[i] = parsed{budgets: budgets, err: err}
			n := done.Add(1)
			if opts.Progress != nil {
				opts.Progress(int(n), len(paths))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading seed files: %w", err)
	}

	seen := make(map[uuid.UUID]struct{})
	for i, pr := range results {
		if pr.err != nil {
			result.FileErrors++
			result.Errors = append(result.Errors, pr.err)
			log.Warn().Err(pr.err).Str("path", paths[i]).Msg("skipping seed file")
			continue
		}
		result.ParsedFiles++
		for _, b := range pr.budgets {
			if _, dup := seen[b.ID]; dup {
				result.Duplicates++
				log.Warn().Str("path", paths[i]).Str("budget_id", b.ID.String()).Msg("dropping duplicate budget")
				continue
			}
			seen[b.ID] = struct{}{}
			result.Budgets = append(result.Budgets, b)
		}
	}
	log.Debug().Int("files", result.TotalFiles).Int("budgets", len(result.Budgets)).Msg("seed files loaded")
	return result, nil
}

// LoadDir scans dir and loads every seed file found there.
func LoadDir(ctx context.Context, dir string, opts LoadOptions) (*LoadResult, error) {
	paths, err := ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return Load(ctx, paths, opts)
}
