package rules

import (
	"os"
	"path/filepath"
)

// SourcedRule pairs a rule with the directory whose rule file declared
// it, for provenance in messages.
type SourcedRule struct {
	Rule      Rule
	SourceDir string
}

// SourcedItem pairs a checklist item with its declaring directory.
type SourcedItem struct {
	Item      Item
	SourceDir string
}

// Collected is the effective rule set for a target directory: every
// ancestor rule file between the root and the target, flattened in
// root-to-target order. Inheritance is strictly additive; a child
// directory can only add rules, never remove or shadow inherited ones.
type Collected struct {
	RootDir    string
	RootConfig RootConfig
	Required   []SourcedRule
	Deny       []SourcedRule
	Review     []SourcedItem
	Guideline  []SourcedItem
}

// Rules returns the enforceable rules of one category.
func (c *Collected) Rules(cat Category) []SourcedRule {
	switch cat {
	case CategoryRequired:
		return c.Required
	case CategoryDeny:
		return c.Deny
	default:
		return nil
	}
}

// Items returns the checklist items of one category.
func (c *Collected) Items(cat Category) []SourcedItem {
	switch cat {
	case CategoryReview:
		return c.Review
	case CategoryGuideline:
		return c.Guideline
	default:
		return nil
	}
}

// FindRoot walks strictly upward from start looking for the root
// marker file and returns the first directory carrying it. The search
// is bounded by the depth of the path, not the size of the tree.
// Returns ErrNoRoot when the filesystem root is reached without a
// match.
func FindRoot(start string) (string, error) {
	dir, err := canonicalDir(start)
	if err != nil {
		return "", err
	}
	for {
		if fileExists(filepath.Join(dir, RootFileName)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoRoot
		}
		dir = parent
	}
}

// Collect resolves the effective rule set for targetDir. It walks
// upward loading rule files, stops at (and includes) the first
// directory carrying the root marker, then flattens the collected
// documents in root-to-target order with per-entry provenance.
func Collect(targetDir string) (*Collected, error) {
	dir, err := canonicalDir(targetDir)
	if err != nil {
		return nil, err
	}

	type sourcedDoc struct {
		doc *Document
		dir string
	}
	var docs []sourcedDoc
	var rootDir string
	var rootConfig RootConfig

	for {
		if configPath := filepath.Join(dir, ConfigFileName); fileExists(configPath) {
			doc, err := LoadDocument(configPath)
			if err != nil {
				return nil, err
			}
			docs = append(docs, sourcedDoc{doc: doc, dir: dir})
		}

		if rootPath := filepath.Join(dir, RootFileName); fileExists(rootPath) {
			cfg, err := LoadRootConfig(rootPath)
			if err != nil {
				return nil, err
			}
			rootDir = dir
			rootConfig = cfg
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNoRoot
		}
		dir = parent
	}

	collected := &Collected{RootDir: rootDir, RootConfig: rootConfig}

	// docs were gathered target-to-root; flatten in root-to-target
	// order so ancestor rules precede descendant rules.
	for i := len(docs) - 1; i >= 0; i-- {
		d := docs[i]
		for _, r := range d.doc.Required {
			collected.Required = append(collected.Required, SourcedRule{Rule: r, SourceDir: d.dir})
		}
		for _, r := range d.doc.Deny {
			collected.Deny = append(collected.Deny, SourcedRule{Rule: r, SourceDir: d.dir})
		}
		for _, it := range d.doc.Review {
			collected.Review = append(collected.Review, SourcedItem{Item: it, SourceDir: d.dir})
		}
		for _, it := range d.doc.Guideline {
			collected.Guideline = append(collected.Guideline, SourcedItem{Item: it, SourceDir: d.dir})
		}
	}

	return collected, nil
}

func canonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
