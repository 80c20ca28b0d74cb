// Package application orchestrates the remote-work mail flows: it resolves
// configuration, templates, and recipients, records the day's start time,
// assembles the draft, and hands it to the mail client.
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/mail-composer/internal/apperror"
	"github.com/example/mail-composer/internal/config"
	"github.com/example/mail-composer/internal/history"
	"github.com/example/mail-composer/internal/message"
	"github.com/example/mail-composer/internal/templates"
)

// ConfigSource loads the validated application configuration.
type ConfigSource interface {
	Load() (config.Config, error)
}

// TemplateSource loads the mail-type template set.
type TemplateSource interface {
	Load() (*templates.Set, error)
}

// AddressBook resolves recipient names into validated addresses.
type AddressBook interface {
	Resolve(name string) (message.Address, error)
	ResolveMany(names []string) ([]message.Address, error)
}

// StartTimeStore persists the day's work-start time across invocations.
type StartTimeStore interface {
	SaveTodayStart(start message.WorkTime) error
	LoadTodayStart() (message.WorkTime, bool, error)
}

// MailClient dispatches an assembled draft, or prints it in dry-run mode.
type MailClient interface {
	Compose(draft message.Draft, dryRun bool) error
}

// MailService implements the two top-level operations. One operation runs
// per process; nothing here is safe for concurrent use against the same
// start-time file.
type MailService struct {
	configs   ConfigSource
	templates TemplateSource
	book      AddressBook
	times     StartTimeStore
	client    MailClient
	journal   history.Recorder
	newID     func() string
	now       func() time.Time
	logger    *slog.Logger
}

// NewMailService wires the composer's collaborators. The journal may be nil;
// nil newID and now fall back to empty ids and time.Now.
func NewMailService(configs ConfigSource, tmpls TemplateSource, book AddressBook, times StartTimeStore, client MailClient, journal history.Recorder, newID func() string, now func() time.Time) *MailService {
	return NewMailServiceWithLogger(configs, tmpls, book, times, client, journal, newID, now, nil)
}

// NewMailServiceWithLogger wires the composer's collaborators with an
// explicit logger.
func NewMailServiceWithLogger(configs ConfigSource, tmpls TemplateSource, book AddressBook, times StartTimeStore, client MailClient, journal history.Recorder, newID func() string, now func() time.Time, logger *slog.Logger) *MailService {
	if newID == nil {
		newID = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &MailService{
		configs:   configs,
		templates: tmpls,
		book:      book,
		times:     times,
		client:    client,
		journal:   journal,
		newID:     newID,
		now:       now,
		logger:    logger,
	}
}

// SendWorkStart composes and dispatches the work-start mail. The clock-in is
// persisted before recipients are resolved, so a broken address book cannot
// lose the start time.
func (s *MailService) SendWorkStart(ctx context.Context, dryRun bool) error {
	logger := serviceLogger(ctx, s.logger, "SendWorkStart", "mail_type", templates.TypeWorkStart, "dry_run", dryRun)

	cfg, typeCfg, err := s.loadMailType(templates.TypeWorkStart)
	if err != nil {
		logger.Error("failed to load configuration", "error", err, "kind", apperror.KindOf(err).String())
		return err
	}

	now := message.Now(s.now)

	if err := s.times.SaveTodayStart(now); err != nil {
		logger.Error("failed to record the start time", "error", err, "kind", apperror.KindOf(err).String())
		return err
	}
	logger.Info("recorded the work-start time", "time", now.String())

	draft, err := s.assembleDraft(cfg, typeCfg, now, nil)
	if err != nil {
		logger.Error("failed to assemble the draft", "error", err, "kind", apperror.KindOf(err).String())
		return err
	}

	if err := s.client.Compose(draft, dryRun); err != nil {
		logger.Error("failed to dispatch the draft", "error", err, "kind", apperror.KindOf(err).String())
		return err
	}

	s.journalDispatch(ctx, logger, templates.TypeWorkStart, draft, dryRun)
	logger.Info("work-start mail composed", "to", len(draft.To()), "cc", len(draft.Cc()))
	return nil
}

// SendWorkEnd composes and dispatches the work-end mail. When no start was
// recorded today, the worked-hours range uses the "--:--" sentinel.
func (s *MailService) SendWorkEnd(ctx context.Context, dryRun bool) error {
	logger := serviceLogger(ctx, s.logger, "SendWorkEnd", "mail_type", templates.TypeWorkEnd, "dry_run", dryRun)

	cfg, typeCfg, err := s.loadMailType(templates.TypeWorkEnd)
	if err != nil {
		logger.Error("failed to load configuration", "error", err, "kind", apperror.KindOf(err).String())
		return err
	}

	end := message.Now(s.now)

	start, ok, err := s.times.LoadTodayStart()
	if err != nil {
		logger.Error("failed to load the start time", "error", err, "kind", apperror.KindOf(err).String())
		return err
	}
	if !ok {
		start = message.SentinelWorkTime()
		logger.Warn("no start time recorded today, using the sentinel")
	}

	workRange := message.NewWorkTimeRange(start, end).String()
	draft, err := s.assembleDraft(cfg, typeCfg, end, &workRange)
	if err != nil {
		logger.Error("failed to assemble the draft", "error", err, "kind", apperror.KindOf(err).String())
		return err
	}

	if err := s.client.Compose(draft, dryRun); err != nil {
		logger.Error("failed to dispatch the draft", "error", err, "kind", apperror.KindOf(err).String())
		return err
	}

	s.journalDispatch(ctx, logger, templates.TypeWorkEnd, draft, dryRun)
	logger.Info("work-end mail composed", "worked", workRange, "to", len(draft.To()), "cc", len(draft.Cc()))
	return nil
}

func (s *MailService) loadMailType(key string) (config.Config, templates.TypeConfig, error) {
	cfg, err := s.configs.Load()
	if err != nil {
		return config.Config{}, templates.TypeConfig{}, err
	}

	set, err := s.templates.Load()
	if err != nil {
		return config.Config{}, templates.TypeConfig{}, err
	}

	typeCfg, ok := set.Type(key)
	if !ok {
		return config.Config{}, templates.TypeConfig{}, apperror.Newf(apperror.NotFound,
			"mail type %q is not configured", key).
			WithHint("add the mail type to config/mail_templates.json")
	}
	return cfg, typeCfg, nil
}

// assembleDraft resolves recipients and renders subject and body. A nil
// workRange leaves the body template's {work_time} token untouched.
func (s *MailService) assembleDraft(cfg config.Config, typeCfg templates.TypeConfig, tm message.WorkTime, workRange *string) (message.Draft, error) {
	to, err := s.book.ResolveMany(typeCfg.ToNames)
	if err != nil {
		return message.Draft{}, err
	}
	cc, err := s.book.ResolveMany(typeCfg.CcNames)
	if err != nil {
		return message.Draft{}, err
	}

	subject, err := message.NewSubject(typeCfg.FormatSubject(cfg.Department, cfg.From, tm.String()))
	if err != nil {
		return message.Draft{}, err
	}
	body := message.NewBody(typeCfg.FormatBody(workRange))

	return message.NewDraft(to, cc, subject, body), nil
}

// journalDispatch appends the dispatch to the compose history. Failures are
// logged and swallowed: the mail went out, and bookkeeping must not turn
// that into an error.
func (s *MailService) journalDispatch(ctx context.Context, logger *slog.Logger, mailType string, draft message.Draft, dryRun bool) {
	if s.journal == nil {
		return
	}

	entry := history.Entry{
		ID:         s.newID(),
		ComposedAt: s.now(),
		MailType:   mailType,
		Subject:    draft.Subject().String(),
		To:         addressStrings(draft.To()),
		Cc:         addressStrings(draft.Cc()),
		DryRun:     dryRun,
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		logger.Warn("failed to record compose history", "error", err)
	}
}

func addressStrings(addrs []message.Address) []string {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return out
}
