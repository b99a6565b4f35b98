package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reclint-labs/reclint/pkg/rules"
	"github.com/spf13/cobra"
)

// rootTemplate is written by `reclint init`. Every key is optional; an
// empty file is a valid root marker.
const rootTemplate = `# Root marker for reclint. Files below this directory are validated
# against the rule files between here and each file's directory.
#
# include_extensions limits validation to the listed extensions.
# Uncomment and adjust as needed:
#
# include_extensions:
#   - .go
#   - .java
#
# exclude_dirs skips directory names anywhere in the tree:
#
# exclude_dirs:
#   - vendor
#   - node_modules
`

// ruleTemplate is written by `reclint add`.
const ruleTemplate = `# Rules for this directory and everything beneath it.
# Parent directory rules still apply; rules are additive.
#
# required:
#   - type: require_doc
#     label: doc-public
#     message: document public declarations
#     doc:
#       lang: go
#       targets:
#         func: public
#     match:
#       - pattern: file_ends_with
#         keywords: [.go]
#
# deny:
#   - type: forbidden_texts
#     label: no-todo
#     message: do not leave TODOs
#     keywords: [TODO, FIXME]
#     match:
#       - pattern: file_ends_with
#         keywords: [.go]
#
# review:
#   - message: check error wrapping on new code paths
#
# guideline:
#   - message: keep handlers thin, push logic into packages
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [DIR]",
		Short: "Create a root marker file for a new project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return scaffold(cmd, targetDir(args), rules.RootFileName, rootTemplate)
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add [DIR]",
		Short: "Create a rule file in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return scaffold(cmd, targetDir(args), rules.ConfigFileName, ruleTemplate)
		},
	}
}

// scaffold writes a template file, refusing to overwrite an existing one.
func scaffold(cmd *cobra.Command, dir, name, content string) error {
	cc := NewCommandContext(cmd)

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	styles := cc.Renderer.Styles()
	cc.Renderer.Println(styles.Success.Render("Created:") + " " + styles.FilePath.Render(path))
	return nil
}
