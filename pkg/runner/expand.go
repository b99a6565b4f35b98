package runner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/reclint-labs/reclint/pkg/rules"
)

// expandPaths turns the input paths into the sorted list of files to
// validate. Directories are walked recursively without following
// symlinks; .git and root-config excluded directories are pruned, and
// rule files themselves are never validated.
func expandPaths(paths []string, rootConfig rules.RootConfig) ([]string, error) {
	var files []string
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if includeFile(abs, rootConfig) {
				files = append(files, abs)
			}
			continue
		}

		err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if p != abs && (name == ".git" || rootConfig.ShouldExcludeDir(name)) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if includeFile(p, rootConfig) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// includeFile applies the config-file and extension gates.
func includeFile(path string, rootConfig rules.RootConfig) bool {
	name := filepath.Base(path)
	if name == rules.ConfigFileName || name == rules.RootFileName {
		return false
	}
	return rootConfig.ShouldIncludeExtension(filepath.Ext(name))
}
