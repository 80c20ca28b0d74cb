// Package thunderbird serializes a mail draft into Thunderbird's -compose
// argument and dispatches it, either by spawning the client or by printing
// the command in dry-run mode.
package thunderbird

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/example/mail-composer/internal/apperror"
	"github.com/example/mail-composer/internal/message"
)

// Runner spawns the mail client and waits for it. It exists so tests can
// observe dispatches without launching anything.
type Runner interface {
	Run(name string, args ...string) error
}

// ExecRunner launches the client as a subprocess.
type ExecRunner struct{}

// Run spawns the program and waits for it. Spawn and wait failures carry
// distinct messages. A non-zero exit from the client is not a launch
// failure; only OS-level wait errors are surfaced.
func (ExecRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return apperror.New(apperror.InternalServerError,
			"failed to launch the mail client").
			WithHint("check that the configured thunderbird_exe path is correct").
			WithCause(err)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return apperror.New(apperror.InternalServerError,
			"failed waiting for the mail client").
			WithHint("check system resources").
			WithCause(err)
	}
	return nil
}

// EscapeQuotes is the quoting step applied to every compose-argument field.
// It is a pass-through: single quotes are not escaped, and a value
// containing one may break the client's parsing of the argument. Kept as-is
// for compatibility with the established wire format.
func EscapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "'")
}

// Launcher dispatches drafts to a mail client executable.
type Launcher struct {
	exe    string
	out    io.Writer
	runner Runner
}

// NewLauncher builds a launcher for the given executable. A nil writer
// defaults to stdout and a nil runner to ExecRunner.
func NewLauncher(exe string, out io.Writer, runner Runner) *Launcher {
	if out == nil {
		out = os.Stdout
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Launcher{exe: exe, out: out, runner: runner}
}

// ComposeArg renders the draft as the single argument handed to the
// client's -compose flag. Recipient lists render as empty quoted values
// when empty; the body uses the CRLF form.
func (l *Launcher) ComposeArg(draft message.Draft) string {
	return fmt.Sprintf("format=plain,to='%s',cc='%s',subject='%s',body='%s'",
		EscapeQuotes(draft.ToLine()),
		EscapeQuotes(draft.CcLine()),
		EscapeQuotes(draft.Subject().String()),
		EscapeQuotes(draft.Body().CRLF()),
	)
}

// Compose dispatches the draft. In dry-run mode the command line is printed
// and nothing is spawned.
func (l *Launcher) Compose(draft message.Draft, dryRun bool) error {
	composeArg := l.ComposeArg(draft)

	if dryRun {
		fmt.Fprintf(l.out, "[DRY-RUN] %s -compose %s\n", l.exe, composeArg)
		return nil
	}

	return l.runner.Run(l.exe, "-compose", composeArg)
}
