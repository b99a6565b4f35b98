package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/reclint-labs/reclint/internal/cli/output"
	"github.com/reclint-labs/reclint/pkg/runner"
	"github.com/spf13/cobra"
)

// validateOptions holds flags for the validate command.
type validateOptions struct {
	sort  string
	watch bool
}

// debounce window for filesystem events in watch mode.
const watchDebounce = 200 * time.Millisecond

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [PATH...]",
		Short: "Validate files against the rules that apply to them",
		Long: `Validate checks each file against the rules collected from the rule
files between the project root and the file's directory. Paths may be
files or directories; directories are walked recursively. With no path,
the current directory is validated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)

			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}

			sortName := opts.sort
			if sortName == "" {
				sortName = cc.Cfg.Sort
			}
			sortMode, err := runner.ParseSortMode(sortName)
			if err != nil {
				return err
			}

			runOpts := runner.Options{Sort: sortMode, Logger: cc.Logger}

			if opts.watch {
				return watchAndValidate(cmd.Context(), cc, paths, runOpts)
			}

			report, err := runner.Run(cmd.Context(), paths, runOpts)
			if err != nil {
				return err
			}
			renderReport(cc.Renderer, report, string(sortMode), paths)
			if !report.Clean() {
				return fmt.Errorf("validation issues found")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.sort, "sort", "s", "", "Sort order for violations (rule|file)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-run validation when files change")

	_ = cmd.RegisterFlagCompletionFunc("sort", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(runner.SortByRule), string(runner.SortByFile)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// renderReport prints a validation report in the renderer's mode.
func renderReport(r *output.Renderer, report *runner.Report, sort string, paths []string) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(output.NewValidationReport(sort, paths, report.Errors, report.Violations))
		return
	}

	styles := r.Styles()
	for _, line := range report.Errors {
		r.Println(styles.Warning.Render(line))
	}
	for _, line := range report.Violations {
		r.Println(line)
	}
	if report.Clean() {
		r.Success("No issues found")
	}
}

// watchAndValidate runs validation, then re-runs it whenever a file under
// the watched paths changes. It returns when ctx is cancelled; violations
// do not abort the loop.
func watchAndValidate(ctx context.Context, cc *CommandContext, paths []string, opts runner.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range paths {
		if err := watchTree(watcher, path); err != nil {
			return err
		}
	}

	run := func() {
		report, err := runner.Run(ctx, paths, opts)
		if err != nil {
			cc.Renderer.Errorf("%v", err)
			return
		}
		renderReport(cc.Renderer, report, string(opts.Sort), paths)
	}
	run()

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = watchTree(watcher, ev.Name)
				}
			}
			if pending {
				if !timer.Stop() {
					<-timer.C
				}
			}
			timer.Reset(watchDebounce)
			pending = true
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cc.Logger.Warn("watch error", "error", werr)
		case <-timer.C:
			pending = false
			cc.Renderer.Println()
			run()
		}
	}
}

// watchTree registers path and all directories beneath it.
func watchTree(watcher *fsnotify.Watcher, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(abs))
	}
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Directories can vanish mid-walk in watch mode.
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" && p != abs {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}
