package commands

import (
	"github.com/reclint-labs/reclint/pkg/rules"
	"github.com/spf13/cobra"
)

// NewGuidelineCommand creates the guideline command.
func NewGuidelineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "guideline [DIR]",
		Short: "Show the implementation guidelines for a directory",
		Long: `Guideline prints the review and guideline checklist items that apply
to a directory. These items are advisory; validate never enforces them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)

			collected, err := rules.Collect(targetDir(args))
			if err != nil {
				return err
			}

			for _, cat := range []rules.Category{rules.CategoryReview, rules.CategoryGuideline} {
				for _, si := range collected.Items(cat) {
					cc.Renderer.Printf("[ %s ]%s %s\n",
						cat,
						sourceSuffix(collected, si.SourceDir),
						si.Item.Message,
					)
				}
			}
			return nil
		},
	}
}
