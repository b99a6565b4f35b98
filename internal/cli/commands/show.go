package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reclint-labs/reclint/pkg/rules"
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [DIR]",
		Short: "Show the rules and guidelines in effect for a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)

			collected, err := rules.Collect(targetDir(args))
			if err != nil {
				return err
			}

			styles := cc.Renderer.Styles()
			for _, cat := range []rules.Category{rules.CategoryRequired, rules.CategoryDeny} {
				for _, sr := range collected.Rules(cat) {
					line := fmt.Sprintf("[ %s ]%s %s%s",
						cat,
						sourceSuffix(collected, sr.SourceDir),
						sr.Rule.Label(),
						keywordSuffix(sr.Rule),
					)
					cc.Renderer.Println(styles.Bold.Render(line))
				}
			}
			for _, cat := range []rules.Category{rules.CategoryReview, rules.CategoryGuideline} {
				style := styles.Info
				if cat == rules.CategoryGuideline {
					style = styles.Muted
				}
				for _, si := range collected.Items(cat) {
					line := fmt.Sprintf("[ %s ]%s %s",
						cat,
						sourceSuffix(collected, si.SourceDir),
						si.Item.Message,
					)
					cc.Renderer.Println(style.Render(line))
				}
			}
			return nil
		},
	}
}

// sourceSuffix renders the source directory of an inherited entry as a
// root-relative prefix. Entries defined at the root carry no suffix.
func sourceSuffix(collected *rules.Collected, sourceDir string) string {
	if sourceDir == collected.RootDir {
		return ""
	}
	rel, err := filepath.Rel(collected.RootDir, sourceDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return " " + filepath.ToSlash(rel) + ":"
}

// keywordSuffix lists the keywords or patterns a rule matches on.
func keywordSuffix(r rules.Rule) string {
	var parts []string
	switch r := r.(type) {
	case rules.TextRule:
		parts = r.Keywords
	case rules.RegexRule:
		parts = r.Keywords
	default:
		return ""
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" [ %s ]", strings.Join(parts, ", "))
}
