package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid")
	timeNow     = func() time.Time { return time.Now().UTC() }
)

// Workspace is the todo file and the files that live next to it:
// <name>_archive<ext>, <name>_maybe<ext> and backup/<name>_<date><ext>.
type Workspace struct {
	Root string
	Name string
	ext  string
}

// Open resolves path to an existing todo file.
func Open(path string) (*Workspace, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty todo file path", ErrInvalid)
	}
	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, abs)
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalid, abs)
	}
	base := filepath.Base(abs)
	ext := filepath.Ext(base)
	return &Workspace{
		Root: filepath.Dir(abs),
		Name: strings.TrimSuffix(base, ext),
		ext:  ext,
	}, nil
}

func (w *Workspace) InputPath() string {
	return filepath.Join(w.Root, w.Name+w.ext)
}

func (w *Workspace) ArchivePath() string {
	return filepath.Join(w.Root, w.Name+"_archive"+w.ext)
}

func (w *Workspace) MaybePath() string {
	return filepath.Join(w.Root, w.Name+"_maybe"+w.ext)
}

func (w *Workspace) BackupPath(today time.Time) string {
	return filepath.Join(w.Root, "backup", fmt.Sprintf("%s_%s%s", w.Name, today.Format("2006-01-02"), w.ext))
}

func (w *Workspace) ExportDir() string {
	return filepath.Join(w.Root, "exports")
}

func (w *Workspace) ReadInput() ([]byte, error) {
	b, err := os.ReadFile(w.InputPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, w.InputPath())
	}
	return b, err
}

// ReadMaybe returns the maybe stream, or "" when it was never written.
func (w *Workspace) ReadMaybe() (string, error) {
	b, _, err := readOptional(w.MaybePath())
	return string(b), err
}

// Output is one pipeline run ready to be written.
type Output struct {
	Outline string
	Archive string
	Maybe   string
}

type CommitOptions struct {
	Backup bool
	Today  time.Time
}

// CommitReport lists what Commit wrote.
type CommitReport struct {
	Backup  string
	Written []string
}

type stagedFile struct {
	path    string
	prev    []byte
	existed bool
}

// Commit writes the archive and maybe streams first and replaces the todo
// file last. If any write fails, files already written are restored so the
// run leaves no partial output behind.
func (w *Workspace) Commit(out Output, opts CommitOptions) (*CommitReport, error) {
	input, err := w.ReadInput()
	if err != nil {
		return nil, err
	}
	report := &CommitReport{}
	if opts.Backup {
		today := opts.Today
		if today.IsZero() {
			today = timeNow()
		}
		path := w.BackupPath(today)
		if err := atomicWriteFile(path, input); err != nil {
			return nil, fmt.Errorf("write backup: %w", err)
		}
		report.Backup = path
	}

	var staged []stagedFile
	rollback := func() {
		for i := len(staged) - 1; i >= 0; i-- {
			s := staged[i]
			if s.existed {
				_ = atomicWriteFile(s.path, s.prev)
			} else {
				_ = os.Remove(s.path)
			}
		}
	}
	appendTo := func(path, text string) error {
		if text == "" {
			return nil
		}
		prev, existed, err := readOptional(path)
		if err != nil {
			return err
		}
		next := append(append([]byte{}, prev...), text...)
		if err := atomicWriteFile(path, next); err != nil {
			return err
		}
		staged = append(staged, stagedFile{path: path, prev: prev, existed: existed})
		report.Written = append(report.Written, path)
		return nil
	}

	if err := appendTo(w.ArchivePath(), out.Archive); err != nil {
		rollback()
		return nil, fmt.Errorf("write archive: %w", err)
	}
	if err := appendTo(w.MaybePath(), out.Maybe); err != nil {
		rollback()
		return nil, fmt.Errorf("write maybe list: %w", err)
	}
	if err := atomicWriteFile(w.InputPath(), []byte(out.Outline)); err != nil {
		rollback()
		return nil, fmt.Errorf("replace todo file: %w", err)
	}
	report.Written = append(report.Written, w.InputPath())
	return report, nil
}

// WriteExport stores data under dir with a timestamped name and never
// overwrites an earlier export.
func WriteExport(dir, base, ext string, data []byte) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("export directory is empty")
	}
	ts := timeNow().Format("20060102-150405")
	name := fmt.Sprintf("%s-%s.%s", base, ts, ext)
	path := filepath.Join(dir, name)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			break
		}
		name = fmt.Sprintf("%s-%s-%d.%s", base, ts, i, ext)
		path = filepath.Join(dir, name)
	}
	if err := atomicWriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func readOptional(path string) ([]byte, bool, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || path == "~" {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func atomicWriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
