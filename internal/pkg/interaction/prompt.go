// Package interaction provides user prompts for the CLI.
// In a non-interactive terminal no prompt is shown and defaults are used.
package interaction

import (
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
)

type Prompt struct {
	stdin       terminal.FileReader
	stdout      terminal.FileWriter
	stderr      io.Writer
	interactive bool
}

// Confirm is a yes/no question.
type Confirm struct {
	Label   string
	Default bool
}

func NewPrompt(stdin terminal.FileReader, stdout terminal.FileWriter, stderr io.Writer) *Prompt {
	return &Prompt{
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		interactive: isInteractiveTerminal(stdin, stdout),
	}
}

func isInteractiveTerminal(stdin terminal.FileReader, stdout terminal.FileWriter) bool {
	return isatty.IsTerminal(stdin.Fd()) && isatty.IsTerminal(stdout.Fd())
}

func (p *Prompt) IsInteractive() bool {
	return p.interactive
}

// Confirm asks the user a yes/no question.
// In a non-interactive terminal the default answer is returned without asking.
func (p *Prompt) Confirm(c *Confirm) bool {
	if !p.interactive {
		return c.Default
	}

	result := c.Default
	err := survey.AskOne(
		&survey.Confirm{Message: c.Label, Default: c.Default},
		&result,
		survey.WithStdio(p.stdin, p.stdout, p.stderr),
	)
	if err != nil {
		return false
	}
	return result
}

// ValueRequired is a prompt answer validator.
func ValueRequired(val any) error {
	str, ok := val.(string)
	if !ok || strings.TrimSpace(str) == "" {
		return errors.New("value is required")
	}
	return nil
}
