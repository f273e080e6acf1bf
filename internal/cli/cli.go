package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/amirbrooks/tpm/internal/config"
	"github.com/amirbrooks/tpm/internal/notify"
	"github.com/amirbrooks/tpm/internal/store"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitNotFound = 3
	ExitInternal = 10
)

var Version = "dev"

type GlobalFlags struct {
	Config  string
	Today   string
	Verbose bool
}

type app struct {
	gf     GlobalFlags
	out    io.Writer
	errOut io.Writer
	log    *log.Logger
	now    func() time.Time

	newMailer func(config.MailConfig) notify.Sender
	newPusher func(config.PushoverConfig) notify.Sender
}

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func Run(args []string) int {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	a.log.Println(err)
	return exitCode(err)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		out:    stdout,
		errOut: stderr,
		log:    log.New(stderr, "tpm: ", 0),
		now:    time.Now,
		newMailer: func(c config.MailConfig) notify.Sender {
			return &notify.Mailer{
				Host:     c.Server,
				Port:     c.Port,
				User:     c.User,
				Password: c.Password,
				From:     c.From,
				To:       splitList(c.To),
			}
		},
		newPusher: func(c config.PushoverConfig) notify.Sender {
			return &notify.Pushover{Token: c.Token, User: c.User, Endpoint: c.Endpoint, Limit: c.Limit}
		},
	}
}

func exitCode(err error) int {
	var ue usageError
	switch {
	case errors.As(err, &ue):
		return ExitUsage
	case errors.Is(err, store.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, store.ErrInvalid), errors.Is(err, config.ErrInvalid):
		return ExitUsage
	case strings.HasPrefix(err.Error(), "unknown command"):
		return ExitUsage
	default:
		return ExitInternal
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tpm",
		Short: "TaskPaper lifecycle manager",
		Long: `tpm keeps a TaskPaper todo file tidy: it tags due and overdue tasks,
archives done tasks, parks @maybe tasks, spawns recurring tasks and
produces a daily digest and a periodic review.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.debugf("tpm %s", Version)
		},
	}
	addGlobalFlags(root.PersistentFlags(), &a.gf)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	root.AddCommand(a.dailyCmd(), a.reviewCmd(), a.exportCmd(), a.versionCmd())
	return root
}

func addGlobalFlags(fs *pflag.FlagSet, gf *GlobalFlags) {
	fs.StringVarP(&gf.Config, "config", "c", os.Getenv("TPM_CONFIG"), "Config file (yaml, toml, ini, json, jsonc)")
	fs.StringVar(&gf.Today, "today", "", "Process as if today were this date (yyyy-mm-dd)")
	fs.BoolVarP(&gf.Verbose, "verbose", "v", false, "Log progress to stderr")
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, "tpm", Version)
			return nil
		},
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{fmt.Errorf("%s: %w (usage: %s)", cmd.Name(), err, cmd.UseLine())}
		}
		return nil
	}
}

func (a *app) loadConfig() (config.Config, error) {
	cfg, err := config.Load(a.gf.Config)
	if err != nil {
		return config.Config{}, err
	}
	if a.gf.Today != "" {
		cfg.Today = a.gf.Today
		if err := cfg.Validate(); err != nil {
			return config.Config{}, usageError{err}
		}
	}
	return cfg, nil
}

func (a *app) debugf(format string, args ...any) {
	if a.gf.Verbose {
		a.log.Printf(format, args...)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
