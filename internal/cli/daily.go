package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/amirbrooks/tpm/internal/config"
	"github.com/amirbrooks/tpm/internal/notify"
	"github.com/amirbrooks/tpm/internal/review"
	"github.com/amirbrooks/tpm/internal/store"
	"github.com/amirbrooks/tpm/internal/taskpaper"
)

type dailyOptions struct {
	Backup bool
	DryRun bool
	NoMail bool
	NoPush bool
}

func addDailyFlags(fs *pflag.FlagSet, o *dailyOptions) {
	fs.BoolVar(&o.Backup, "backup", false, "Copy the todo file to backup/<name>_<date> before rewriting it")
	fs.BoolVarP(&o.DryRun, "dry-run", "n", false, "Print the result instead of writing files or sending notifications")
	fs.BoolVar(&o.NoMail, "no-mail", false, "Skip the digest mail")
	fs.BoolVar(&o.NoPush, "no-push", false, "Skip the push message")
}

func (a *app) dailyCmd() *cobra.Command {
	var o dailyOptions
	cmd := &cobra.Command{
		Use:   "daily <todo-file>",
		Short: "Run the daily pass: tag, archive, defer, repeat, sort and notify",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.daily(cmd.Context(), args[0], o)
		},
	}
	addDailyFlags(cmd.Flags(), &o)
	return cmd
}

func (a *app) daily(ctx context.Context, path string, o dailyOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	ws, err := store.Open(path)
	if err != nil {
		return err
	}
	input, err := ws.ReadInput()
	if err != nil {
		return err
	}
	opts, err := cfg.Options(a.now())
	if err != nil {
		return err
	}
	res, err := taskpaper.Process(bytes.NewReader(input), opts)
	if err != nil {
		return err
	}
	a.debugf("today %s, due window %s", taskpaper.FormatDate(opts.Today), opts.Delta)
	a.debugf("%d tasks: %d archived, %d deferred, %d spawned", len(res.Doc.Tasks), len(res.Archived), len(res.Deferred), len(res.Spawned))
	for _, e := range res.Doc.Errors {
		a.log.Printf("%s: %v", ws.InputPath(), e)
	}

	if o.DryRun {
		fmt.Fprint(a.out, renderPreview(res, opts))
		return nil
	}

	report, err := ws.Commit(store.Output{
		Outline: res.Outline,
		Archive: res.Archive,
		Maybe:   res.Maybe,
	}, store.CommitOptions{Backup: o.Backup, Today: opts.Today})
	if err != nil {
		return err
	}
	if report.Backup != "" {
		a.debugf("backup %s", report.Backup)
	}
	for _, p := range report.Written {
		a.debugf("wrote %s", p)
	}

	return a.notify(ctx, cfg, res, opts, o)
}

func (a *app) notify(ctx context.Context, cfg config.Config, res *taskpaper.Result, opts taskpaper.Options, o dailyOptions) error {
	var errs []error
	if cfg.Mail.Enabled && !o.NoMail {
		digest := taskpaper.DailyDigest(res.Doc.Tasks, opts.Today)
		html, err := review.ToHTML(cfg.Mail.Subject, digest)
		if err != nil {
			return err
		}
		msg := notify.Message{Subject: cfg.Mail.Subject, Text: digest, HTML: html}
		if err := a.newMailer(cfg.Mail).Send(ctx, msg); err != nil {
			errs = append(errs, err)
		} else {
			a.debugf("digest mailed to %s", cfg.Mail.To)
		}
	}
	if cfg.Pushover.Enabled && !o.NoPush {
		msg := notify.Message{Text: taskpaper.PushMessage(res.Doc.Tasks, opts.Today)}
		if err := a.newPusher(cfg.Pushover).Send(ctx, msg); err != nil {
			errs = append(errs, err)
		} else {
			a.debugf("push message sent")
		}
	}
	return errors.Join(errs...)
}
