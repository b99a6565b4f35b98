package validate

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/reclint-labs/reclint/pkg/rules"
)

func init() {
	Register(rules.KindExec, execValidator{})
}

// execValidator runs the rule's external command with every {file}
// placeholder replaced by the file path. A non-zero exit status is the
// violation signal; the command's combined output becomes the finding
// detail. Failing to start the command at all is an error, not a
// finding.
type execValidator struct{}

func (execValidator) Validate(ctx context.Context, req *Request, rule rules.Rule) ([]Finding, error) {
	r, ok := rule.(rules.ExecRule)
	if !ok {
		return nil, badRuleType(rules.KindExec, rule)
	}

	parts := strings.Fields(strings.ReplaceAll(r.Exec, "{file}", req.FilePath))
	if len(parts) == 0 {
		return nil, nil
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// The command never ran: missing binary, permission, context
		// cancellation.
		return nil, err
	}

	detail := strings.TrimSpace(stdout.String() + stderr.String())
	return []Finding{{Line: 0, Col: 0, Detail: detail}}, nil
}
