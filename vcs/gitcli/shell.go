package gitcli

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

var CommandContext = exec.CommandContext

// commandError is returned when git exits unsuccessfully.
type commandError struct {
	args   []string
	stderr string
}

func (e *commandError) Error() string {
	return "exec: git " + ArgsString(e.args) + " failed: " + strings.TrimSpace(e.stderr)
}

func (g *Git) call(ctx context.Context, args []string) ([]byte, error) {
	g.cfg.Debugf("+ git %s", ArgsString(args))
	cmd := CommandContext(ctx, "git", args...)
	cmd.Dir = g.wd

	eb := &bytes.Buffer{}
	ob := &bytes.Buffer{}
	cmd.Stderr = eb
	cmd.Stdout = ob

	if err := cmd.Run(); err != nil {
		return nil, errors.WithSecondaryError(&commandError{args: args, stderr: eb.String()}, err)
	}
	return ob.Bytes(), nil
}

func isUnknownRevision(err error) bool {
	var cerr *commandError
	if !errors.As(err, &cerr) {
		return false
	}
	return strings.Contains(cerr.stderr, "bad revision") ||
		strings.Contains(cerr.stderr, "unknown revision") ||
		strings.Contains(cerr.stderr, "does not have any commits")
}

// ArgsString returns a string suitable for copy/paste into the terminal.
func ArgsString(args []string) string {
	b := &bytes.Buffer{}

	for i, arg := range args {
		if strings.ContainsAny(arg, " %") {
			b.WriteString(`"`)
			b.WriteString(arg)
			b.WriteString(`"`)
		} else {
			b.WriteString(arg)
		}

		if i < len(args)-1 {
			b.WriteString(" ")
		}
	}

	return b.String()
}
