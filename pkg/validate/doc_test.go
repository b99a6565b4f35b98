package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reclint-labs/reclint/pkg/rules"
)

func docRule(lang string, targets map[string]rules.Visibility) rules.DocRule {
	return rules.DocRule{
		Base:    rules.Base{RuleLabel: "require-doc", RuleMessage: "missing doc comment"},
		Lang:    lang,
		Targets: targets,
	}
}

func TestGoDocUndocumentedExportedDeclarations(t *testing.T) {
	content := `package demo

type Widget struct{}

// Gear is documented.
type Gear struct{}

func Spin() {}

// Stop is documented.
func Stop() {}
`
	rule := docRule("go", map[string]rules.Visibility{
		"type": rules.VisibilityPublic,
		"func": rules.VisibilityPublic,
	})

	findings := runRule(t, content, rule)
	require.Len(t, findings, 2)
	assert.Equal(t, "type Widget", findings[0].Found)
	assert.Equal(t, 3, findings[0].Line)
	assert.Equal(t, "func Spin", findings[1].Found)
	assert.Equal(t, 8, findings[1].Line)
}

func TestGoDocPublicScopeSkipsUnexported(t *testing.T) {
	content := "package demo\n\nfunc helper() {}\n"

	public := docRule("go", map[string]rules.Visibility{"func": rules.VisibilityPublic})
	assert.Empty(t, runRule(t, content, public))

	all := docRule("go", map[string]rules.Visibility{"func": rules.VisibilityAll})
	require.Len(t, runRule(t, content, all), 1)
}

func TestGoDocMethodReceiverIsSkippedInName(t *testing.T) {
	content := "package demo\n\nfunc (w *Widget) Turn() {}\n"
	rule := docRule("go", map[string]rules.Visibility{"func": rules.VisibilityPublic})

	findings := runRule(t, content, rule)
	require.Len(t, findings, 1)
	assert.Equal(t, "func Turn", findings[0].Found)
}

func TestGoDocIgnoresIndentedDeclarations(t *testing.T) {
	content := "package demo\n\nfunc Outer() {\n\ttype local struct{}\n}\n"
	rule := docRule("go", map[string]rules.Visibility{"type": rules.VisibilityAll})

	assert.Empty(t, runRule(t, content, rule))
}

func TestJavaDocClassAndMethod(t *testing.T) {
	content := `package demo;

public class Account {
    /**
     * Documented.
     */
    public void close() {}

    public void open() {}
}
`
	rule := docRule("java", map[string]rules.Visibility{
		"class":  rules.VisibilityPublic,
		"method": rules.VisibilityPublic,
	})

	findings := runRule(t, content, rule)
	require.Len(t, findings, 2)
	assert.Equal(t, "class Account", findings[0].Found)
	assert.Equal(t, "method open", findings[1].Found)
	assert.Equal(t, 9, findings[1].Line)
}

func TestJavaDocDocumentedClassPasses(t *testing.T) {
	content := "/** An account. */\npublic class Account {}\n"
	rule := docRule("java", map[string]rules.Visibility{"class": rules.VisibilityPublic})

	assert.Empty(t, runRule(t, content, rule))
}

func TestJavaDocJavadocSkipsAnnotations(t *testing.T) {
	content := "/** Documented. */\n@Deprecated\npublic class Old {}\n"
	rule := docRule("java", map[string]rules.Visibility{"class": rules.VisibilityPublic})

	assert.Empty(t, runRule(t, content, rule))
}

func TestJavaDocConstructorsAndFieldsAreSkipped(t *testing.T) {
	content := `public class Account {
    public Account() {}
    private int x = compute();
}
`
	rule := docRule("java", map[string]rules.Visibility{"method": rules.VisibilityAll})
	assert.Empty(t, runRule(t, content, rule))
}

func TestDocUnknownLanguageIsAnError(t *testing.T) {
	rule := docRule("fortran", map[string]rules.Visibility{"type": rules.VisibilityAll})
	_, err := Run(context.Background(), &Request{Content: "x"}, rule)
	require.Error(t, err)
}
