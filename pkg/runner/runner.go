// Package runner is the validation driver: it expands target paths to
// files, resolves the effective rule set once per parent directory,
// validates the files in parallel, and renders violations in one of
// two deterministic orders.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/reclint-labs/reclint/pkg/rules"
	"github.com/reclint-labs/reclint/pkg/validate"
)

// SortMode selects the violation output ordering.
type SortMode string

// Output orderings.
const (
	// SortByRule orders by message, then file, line, column.
	SortByRule SortMode = "rule"
	// SortByFile orders by file, then line, column, message.
	SortByFile SortMode = "file"
)

// ParseSortMode converts a CLI flag value to a SortMode.
func ParseSortMode(s string) (SortMode, error) {
	switch s {
	case "", string(SortByRule):
		return SortByRule, nil
	case string(SortByFile):
		return SortByFile, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (valid: rule, file)", s)
	}
}

// Options configures a validation run.
type Options struct {
	Sort SortMode
	// Logger receives debug-level progress. Defaults to slog.Default.
	Logger *slog.Logger
}

// Report is the outcome of one validation run. Error lines precede
// violation lines in the rendered output; both are deterministic for
// identical inputs.
type Report struct {
	// Errors holds scoped per-directory and per-file error lines.
	Errors []string
	// Violations holds formatted violation lines in the requested
	// sort order.
	Violations []string
}

// Lines renders the report as output lines, errors first.
func (r *Report) Lines() []string {
	lines := make([]string, 0, len(r.Errors)+len(r.Violations))
	lines = append(lines, r.Errors...)
	lines = append(lines, r.Violations...)
	return lines
}

// Clean reports whether the run found nothing to complain about.
func (r *Report) Clean() bool {
	return len(r.Errors) == 0 && len(r.Violations) == 0
}

// Run validates every file reachable from paths. Configuration errors
// (no root marker, invalid rule entry) abort with an error; scoped
// directory and file failures are accumulated into the report instead.
func Run(ctx context.Context, paths []string, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Sort == "" {
		opts.Sort = SortByRule
	}

	rootConfig, err := rootConfigForPaths(paths)
	if err != nil {
		return nil, err
	}

	files, err := expandPaths(paths, rootConfig)
	if err != nil {
		return nil, err
	}
	logger.Debug("expanded targets", "paths", len(paths), "files", len(files))

	report := &Report{}
	if len(files) == 0 {
		return report, nil
	}

	cache, err := resolveDirs(files, logger)
	if err != nil {
		return nil, err
	}
	report.Errors = append(report.Errors, cache.errors...)

	// Data-parallel phase. The cache is read-only from here on; each
	// worker writes only its own result slot.
	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			results[i] = validateFile(ctx, file, cache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var violations []fileViolation
	for _, res := range results {
		report.Errors = append(report.Errors, res.errors...)
		violations = append(violations, res.violations...)
	}

	report.Violations = formatViolations(flattenViolations(violations), opts.Sort)
	return report, nil
}

// rootConfigForPaths loads the root config governing the run from the
// first path that resolves. A run without any resolvable root is a
// configuration error.
func rootConfigForPaths(paths []string) (rules.RootConfig, error) {
	var firstErr error
	for _, path := range paths {
		dir := path
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			dir = filepath.Dir(path)
		}
		collected, err := rules.Collect(dir)
		if err == nil {
			return collected.RootConfig, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = rules.ErrNoRoot
	}
	return rules.RootConfig{}, firstErr
}

// dirCache holds the per-directory rule resolution done in the
// single-threaded setup phase.
type dirCache struct {
	rules  map[string]*rules.Collected
	errors []string
}

// resolveDirs resolves the effective rule set once per distinct
// parent directory. Invalid rule entries abort; other resolution
// failures are recorded and the directory's files skipped.
func resolveDirs(files []string, logger *slog.Logger) (*dirCache, error) {
	dirs := make([]string, 0, len(files))
	seen := make(map[string]struct{})
	for _, f := range files {
		dir := filepath.Dir(f)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)

	cache := &dirCache{rules: make(map[string]*rules.Collected)}
	for _, dir := range dirs {
		collected, err := rules.Collect(dir)
		if err != nil {
			var cfgErr *rules.ConfigError
			if errors.As(err, &cfgErr) {
				return nil, err
			}
			cache.errors = append(cache.errors, fmt.Sprintf("%s: %v", dir, err))
			continue
		}
		logger.Debug("resolved rules",
			"dir", dir,
			"required", len(collected.Required),
			"deny", len(collected.Deny))
		cache.rules[dir] = collected
	}
	return cache, nil
}

// fileResult is one worker's output for one file.
type fileResult struct {
	violations []fileViolation
	errors     []string
}

// fileViolation groups one rule's findings on one file.
type fileViolation struct {
	file     string
	rootDir  string
	message  string
	findings []validate.Finding
}

// validateFile applies every applicable rule to one file.
func validateFile(ctx context.Context, file string, cache *dirCache) fileResult {
	var res fileResult

	collected, ok := cache.rules[filepath.Dir(file)]
	if !ok {
		// Resolution failed for this directory; already reported.
		return res
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		res.errors = append(res.errors, fmt.Sprintf("%s: %v", file, err))
		return res
	}
	if !utf8.Valid(raw) {
		res.errors = append(res.errors, fmt.Sprintf("%s: not valid UTF-8 text", file))
		return res
	}

	req := &validate.Request{
		FilePath: file,
		RootDir:  collected.RootDir,
		Content:  string(raw),
	}

	for _, cat := range []rules.Category{rules.CategoryRequired, rules.CategoryDeny} {
		for _, sourced := range collected.Rules(cat) {
			rule := sourced.Rule
			if !ruleApplies(rule, file) {
				continue
			}
			findings, err := validate.Run(ctx, req, rule)
			if err != nil {
				res.errors = append(res.errors, fmt.Sprintf("%s: rule %q: %v", file, rule.Label(), err))
				continue
			}
			if len(findings) > 0 {
				res.violations = append(res.violations, fileViolation{
					file:     file,
					rootDir:  collected.RootDir,
					message:  rule.Message(),
					findings: findings,
				})
			}
		}
	}
	return res
}

// ruleApplies runs the rule's matcher and filters against the file.
func ruleApplies(rule rules.Rule, file string) bool {
	if !rule.Matcher().Matches(file) {
		return false
	}
	if !rule.ExtFilter().Matches(filepath.Base(file)) {
		return false
	}
	return !rule.ExcludeFilter().ShouldExclude(file)
}
