package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/tpm/internal/store"
	"github.com/amirbrooks/tpm/internal/taskpaper"
)

type exportOptions struct {
	Format string
	OutDir string
	Stdout bool
}

func (a *app) exportCmd() *cobra.Command {
	var o exportOptions
	cmd := &cobra.Command{
		Use:   "export <todo-file>",
		Short: "Dump the processed task records as yaml or json",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.export(args[0], o)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&o.Format, "format", "f", "yaml", "yaml|json")
	fs.StringVarP(&o.OutDir, "out", "o", "", "Export directory (default: <todo dir>/exports)")
	fs.BoolVar(&o.Stdout, "stdout", false, "Print to stdout instead of writing a file")
	return cmd
}

func (a *app) export(path string, o exportOptions) error {
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
	data, err := store.NewExport(ws.InputPath(), opts.Today, res.Doc).Marshal(o.Format)
	if err != nil {
		return err
	}
	if o.Stdout {
		_, err := a.out.Write(data)
		return err
	}
	dir := strings.TrimSpace(o.OutDir)
	if dir == "" {
		dir = ws.ExportDir()
	}
	ext := strings.ToLower(strings.TrimSpace(o.Format))
	if ext == "" || ext == "yml" {
		ext = "yaml"
	}
	out, err := store.WriteExport(dir, ws.Name, ext, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, out)
	return nil
}
