package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/mail-composer/internal/addressbook"
	"github.com/example/mail-composer/internal/apperror"
	"github.com/example/mail-composer/internal/application"
	"github.com/example/mail-composer/internal/config"
	"github.com/example/mail-composer/internal/history"
	historysqlite "github.com/example/mail-composer/internal/history/sqlite"
	"github.com/example/mail-composer/internal/logging"
	"github.com/example/mail-composer/internal/templates"
	"github.com/example/mail-composer/internal/thunderbird"
	"github.com/example/mail-composer/internal/timelog"
)

const usageText = `Usage: mailcomposer [-C dir] <command> [-dry-run]

Commands:
  start    compose the work-start mail and record the clock-in time
  end      compose the work-end mail with the day's worked hours

Options:
  -C dir   use dir as the workspace root instead of discovering it
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the testable shell of the program. Diagnostics go to stderr; stdout
// carries only the dry-run command line.
func run(args []string, stdout, stderr io.Writer) int {
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	flags := flag.NewFlagSet("mailcomposer", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { fmt.Fprint(stderr, usageText) }
	rootDir := flags.String("C", "", "workspace root directory")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return 2
	}

	command := rest[0]
	var send func(*application.MailService, context.Context, bool) error
	switch command {
	case "start":
		send = (*application.MailService).SendWorkStart
	case "end":
		send = (*application.MailService).SendWorkEnd
	default:
		fmt.Fprintf(stderr, "error: unknown command %q\n", command)
		flags.Usage()
		return 2
	}

	sub := flag.NewFlagSet(command, flag.ContinueOnError)
	sub.SetOutput(stderr)
	sub.Usage = func() { fmt.Fprint(stderr, usageText) }
	dryRun := sub.Bool("dry-run", false, "print the compose command instead of launching the client")
	if err := sub.Parse(rest[1:]); err != nil {
		return 2
	}

	baseDir, err := config.ResolveRoot(*rootDir)
	if err != nil {
		return reportError(stderr, logger, err)
	}
	if !config.Exists(baseDir) {
		err := apperror.Newf(apperror.NotFound,
			"no configuration found under %s", baseDir).
			WithHint("create config/app.json, or point -C at a workspace root")
		return reportError(stderr, logger, err)
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		return reportError(stderr, logger, err)
	}
	logger = logger.With("command", command, "root", baseDir)

	service, cleanup := buildService(cfg, stdout, logger)
	defer cleanup()
	ctx := logging.ContextWithLogger(context.Background(), logger)

	if err := send(service, ctx, *dryRun); err != nil {
		if apperror.KindOf(err) == apperror.NotFound {
			logBookContents(logger, cfg.AddressBookPath())
		}
		return reportError(stderr, logger, err)
	}
	return 0
}

// logBookContents reports what the address book actually holds, so a failed
// name lookup can be checked against the registered entries.
func logBookContents(logger *slog.Logger, path string) {
	book, err := addressbook.Load(path)
	if err != nil {
		return
	}
	logger.Warn("address book contents", "entries", book.Len(), "names", strings.Join(book.Names(), ","))
}

// buildService wires the file-backed collaborators for one invocation. The
// history journal is best-effort: an unopenable database is logged and the
// run proceeds without it. The returned cleanup closes the journal.
func buildService(cfg config.Config, stdout io.Writer, logger *slog.Logger) (*application.MailService, func()) {
	book := addressbook.NewSource(cfg.AddressBookPath())
	store := timelog.NewFileStore(cfg.StartTimeStorePath(), time.Now)
	client := thunderbird.NewLauncher(cfg.ThunderbirdExe, stdout, nil)

	cleanup := func() {}
	var recorder history.Recorder
	if journal, err := historysqlite.Open(filepath.Join(cfg.OutputDirPath(), "history.db")); err != nil {
		logger.Warn("compose history unavailable", "error", err)
	} else {
		recorder = journal
		cleanup = func() {
			if cerr := journal.Close(); cerr != nil {
				logger.Warn("failed to close the history database", "error", cerr)
			}
		}
	}

	service := application.NewMailServiceWithLogger(
		config.NewSource(cfg.BaseDir()),
		templates.NewSource(cfg.BaseDir()),
		book,
		store,
		client,
		recorder,
		uuid.NewString,
		time.Now,
		logger,
	)
	return service, cleanup
}

func reportError(stderr io.Writer, logger *slog.Logger, err error) int {
	logger.Error("run failed", "error", err, "kind", apperror.KindOf(err).String())
	fmt.Fprintf(stderr, "error: %s\n", err)
	if hint := apperror.HintOf(err); hint != "" {
		fmt.Fprintf(stderr, "hint: %s\n", hint)
	}
	return 1
}
