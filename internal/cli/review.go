package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/tpm/internal/config"
	"github.com/amirbrooks/tpm/internal/review"
	"github.com/amirbrooks/tpm/internal/store"
	"github.com/amirbrooks/tpm/internal/taskpaper"
)

type reviewOptions struct {
	OutDir string
	Watch  bool
	Stdout bool
	NoHTML bool
}

func (a *app) reviewCmd() *cobra.Command {
	var o reviewOptions
	cmd := &cobra.Command{
		Use:   "review <todo-file>",
		Short: "Write the review document (markdown and HTML) without touching the todo file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.review(cmd.Context(), args[0], o)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&o.OutDir, "out", "o", "", "Output directory (default: review.path or <todo dir>/review)")
	fs.BoolVarP(&o.Watch, "watch", "w", false, "Regenerate whenever the todo or maybe file changes")
	fs.BoolVar(&o.Stdout, "stdout", false, "Print the markdown instead of writing files")
	fs.BoolVar(&o.NoHTML, "no-html", false, "Skip the HTML rendering")
	return cmd
}

func (a *app) review(ctx context.Context, path string, o reviewOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	ws, err := store.Open(path)
	if err != nil {
		return err
	}
	generate := func() error {
		return a.writeReview(ws, cfg, o)
	}
	if err := generate(); err != nil {
		return err
	}
	if !o.Watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(a.errOut, "watching %s (ctrl-c to stop)\n", ws.InputPath())
	return review.Watch(ctx, []string{ws.InputPath(), ws.MaybePath()}, 0, a.log, generate)
}

func (a *app) writeReview(ws *store.Workspace, cfg config.Config, o reviewOptions) error {
	input, err := ws.ReadInput()
	if err != nil {
		return err
	}
	opts, err := cfg.Options(a.now())
	if err != nil {
		return err
	}
	doc, err := taskpaper.Parse(bytes.NewReader(input), opts)
	if err != nil {
		return err
	}
	maybe, err := ws.ReadMaybe()
	if err != nil {
		return err
	}
	md := review.Build(doc.Tasks, opts.Today, maybe, review.Sections{
		Agenda:    cfg.Review.Agenda,
		Waiting:   cfg.Review.Waiting,
		Customers: cfg.Review.Customers,
		Projects:  cfg.Review.Projects,
		Maybe:     cfg.Review.Maybe,
	})
	if o.Stdout {
		fmt.Fprint(a.out, md)
		return nil
	}

	dir := strings.TrimSpace(o.OutDir)
	if dir == "" {
		dir = strings.TrimSpace(cfg.Review.Path)
	}
	if dir == "" {
		dir = filepath.Join(ws.Root, "review")
	}
	files, err := review.Write(dir, opts.Today, md, cfg.Review.HTML && !o.NoHTML)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, files.Markdown)
	if files.HTML != "" {
		fmt.Fprintln(a.out, files.HTML)
	}
	return nil
}
