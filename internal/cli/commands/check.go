package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/reclint-labs/reclint/internal/cli/output"
	"github.com/reclint-labs/reclint/pkg/rules"
	"github.com/spf13/cobra"
)

// checkOptions holds flags for the check command.
type checkOptions struct {
	tree bool
}

// ruleDir is a directory under the root that carries a rule file.
type ruleDir struct {
	rel string
	doc *rules.Document
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Inspect the rule files of the current project",
		Long: `Check scans the project for rule files and summarizes them, either as
a flat table (--list) or as a directory tree (--tree).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)

			root, err := rules.FindRoot(".")
			if err != nil {
				return err
			}
			rootCfg, err := rules.LoadRootConfig(filepath.Join(root, rules.RootFileName))
			if err != nil {
				return err
			}
			dirs, err := collectRuleDirs(root, rootCfg)
			if err != nil {
				return err
			}

			if opts.tree {
				renderCheckTree(cc.Renderer, root, dirs)
				return nil
			}
			return renderCheckList(cc.Renderer, dirs)
		},
	}

	// --list is the default view; the flag exists so `check --list` reads
	// naturally next to `check --tree`.
	cmd.Flags().Bool("list", false, "List rule files with per-category counts (default)")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "Render the rule file hierarchy as a tree")
	cmd.MarkFlagsMutuallyExclusive("list", "tree")

	return cmd
}

// collectRuleDirs walks the project and loads every rule file, skipping
// hidden and excluded directories.
func collectRuleDirs(root string, rootCfg rules.RootConfig) ([]ruleDir, error) {
	var dirs []ruleDir
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if p != root && (strings.HasPrefix(name, ".") || rootCfg.ShouldExcludeDir(name)) {
			return filepath.SkipDir
		}
		configPath := filepath.Join(p, rules.ConfigFileName)
		if _, statErr := os.Stat(configPath); statErr != nil {
			return nil
		}
		doc, err := rules.LoadDocument(configPath)
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		dirs = append(dirs, ruleDir{rel: filepath.ToSlash(rel), doc: doc})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].rel < dirs[j].rel })
	return dirs, nil
}

// renderCheckList prints a table of rule files and their category counts.
func renderCheckList(r *output.Renderer, dirs []ruleDir) error {
	if r.EffectiveMode() == output.ModeJSON {
		type entry struct {
			Path      string `json:"path"`
			Required  int    `json:"required"`
			Deny      int    `json:"deny"`
			Review    int    `json:"review"`
			Guideline int    `json:"guideline"`
		}
		entries := make([]entry, 0, len(dirs))
		for _, d := range dirs {
			entries = append(entries, entry{
				Path:      ruleFilePath(d.rel),
				Required:  len(d.doc.Required),
				Deny:      len(d.doc.Deny),
				Review:    len(d.doc.Review),
				Guideline: len(d.doc.Guideline),
			})
		}
		return r.JSON(entries)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"Rule File", "Required", "Deny", "Review", "Guideline"})
	for _, d := range dirs {
		t.AppendRow(table.Row{
			ruleFilePath(d.rel),
			len(d.doc.Required),
			len(d.doc.Deny),
			len(d.doc.Review),
			len(d.doc.Guideline),
		})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.SetStyle(table.StyleLight)
		t.SetAllowedRowLength(r.TerminalWidth(120))
		t.Render()
	}
	return nil
}

// ruleFilePath renders the rule file path for a root-relative directory.
func ruleFilePath(rel string) string {
	if rel == "." {
		return "./" + rules.ConfigFileName
	}
	return rel + "/" + rules.ConfigFileName
}

// checkNode is one directory in the rendered rule hierarchy.
type checkNode struct {
	name     string
	doc      *rules.Document
	children []*checkNode
}

func (n *checkNode) child(name string) *checkNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	c := &checkNode{name: name}
	n.children = append(n.children, c)
	return c
}

// renderCheckTree prints the rule file hierarchy. Directories without a
// rule file anywhere beneath them are omitted because only rule-carrying
// paths are inserted.
func renderCheckTree(r *output.Renderer, root string, dirs []ruleDir) {
	rootNode := &checkNode{name: filepath.Base(root)}
	for _, d := range dirs {
		node := rootNode
		if d.rel != "." {
			for _, part := range strings.Split(d.rel, "/") {
				node = node.child(part)
			}
		}
		node.doc = d.doc
	}

	w := list.NewWriter()
	w.SetStyle(list.StyleConnectedLight)
	appendTreeNode(w, rootNode)
	r.Println(w.Render())
}

func appendTreeNode(w list.Writer, node *checkNode) {
	w.AppendItem(treeLabel(node))
	w.Indent()
	for _, c := range node.children {
		appendTreeNode(w, c)
	}
	w.UnIndent()
}

// treeLabel renders a directory name with the rule kinds it declares.
func treeLabel(node *checkNode) string {
	if node.doc == nil {
		return node.name
	}
	var kinds []string
	for _, r := range node.doc.Required {
		kinds = append(kinds, r.Kind())
	}
	for _, r := range node.doc.Deny {
		kinds = append(kinds, r.Kind())
	}
	if len(node.doc.Review) > 0 {
		kinds = append(kinds, string(rules.CategoryReview))
	}
	if len(node.doc.Guideline) > 0 {
		kinds = append(kinds, string(rules.CategoryGuideline))
	}
	if len(kinds) == 0 {
		return node.name
	}
	return fmt.Sprintf("%s [ %s ]", node.name, strings.Join(kinds, ", "))
}
