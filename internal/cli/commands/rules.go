package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/reclint-labs/reclint/internal/cli/output"
	"github.com/reclint-labs/reclint/pkg/comment"
	"github.com/reclint-labs/reclint/pkg/rules"
	"github.com/reclint-labs/reclint/pkg/validate"
	"github.com/spf13/cobra"
)

// ruleKindDoc describes one rule type for the rules command.
type ruleKindDoc struct {
	Kind        string `json:"type"`
	Fields      string `json:"fields"`
	Description string `json:"description"`
}

// ruleKindDocs lists every rule type in rule file declaration order.
var ruleKindDocs = []ruleKindDoc{
	{rules.KindText, "keywords", "flag lines containing any of the listed keywords"},
	{rules.KindRegex, "keywords", "flag lines matching any of the listed regular expressions"},
	{rules.KindExec, "exec", "run a command per file ({file} expands to the path) and flag non-zero exits"},
	{rules.KindDoc, "doc.lang, doc.targets", "require doc comments on declarations (go, java)"},
	{rules.KindEnglishComment, "comment.lang or comment.custom", "flag comments written in Japanese"},
	{rules.KindJapaneseComment, "comment.lang or comment.custom", "flag comments not written in Japanese"},
	{rules.KindTestName, "test.framework", "require Japanese test function names (go)"},
	{rules.KindTestExistence, "test.framework, test.require", "require a matching test file, optionally covering all public functions (go)"},
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Describe the available rule types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			return renderRuleKinds(cc.Renderer)
		},
	}
}

func renderRuleKinds(r *output.Renderer) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(ruleKindDocs)
	}

	registered := make(map[string]bool)
	for _, kind := range validate.Kinds() {
		registered[kind] = true
	}

	styles := r.Styles()
	r.Println(styles.Header1.Render("Rule types"))

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"Type", "Fields", "Description"})
	for _, doc := range ruleKindDocs {
		// Only list kinds that have a registered validator.
		if !registered[doc.Kind] {
			continue
		}
		t.AppendRow(table.Row{doc.Kind, doc.Fields, doc.Description})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.SetStyle(table.StyleLight)
		t.Render()
	}
	r.Println(styles.Muted.Render("comment languages: " + strings.Join(comment.Languages(), ", ")))
	return nil
}
