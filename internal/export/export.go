package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	fileSuffix      = "_report.md"
	maxNameAttempts = 100
)

// ErrExists is returned when every candidate file name is already taken.
var ErrExists = errors.New("export file already exists")

// FileName derives the download name from a report title: each whitespace
// run, including leading and trailing ones, becomes a single '_' and the name
// ends in _report.md.
func FileName(title string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range title {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	name := b.String()
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			return '_'
		case unicode.IsControl(r):
			return '_'
		default:
			return r
		}
	}, name)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "report"
	}
	return name + fileSuffix
}

// Exporter writes report text to a directory.
type Exporter struct {
	Dir       string
	Overwrite bool
	Logger    *zap.Logger
}

func New(dir string, overwrite bool, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{Dir: dir, Overwrite: overwrite, Logger: logger}
}

// Export writes text, byte for byte, to a file named after title and returns
// its path. The file appears atomically: it is written to a temporary name
// and renamed into place.
func (e *Exporter) Export(ctx context.Context, title, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create export directory")
	}

	target, err := e.targetPath(dir, FileName(title))
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".reportview-*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", errors.Wrap(err, "write export")
	}
	if err := tmp.Chmod(exportMode(target)); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", errors.Wrap(err, "set export permissions")
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", errors.Wrap(err, "close export")
	}
	if err := ctx.Err(); err != nil {
		cleanup()
		return "", err
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return "", errors.Wrapf(err, "move export to %s", target)
	}

	e.Logger.Info("exported report",
		zap.String("title", title),
		zap.String("path", target),
		zap.Int("bytes", len(text)))
	return target, nil
}

// exportMode keeps the mode of a file being replaced. New files get 0644.
func exportMode(target string) os.FileMode {
	if info, err := os.Stat(target); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

func (e *Exporter) targetPath(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	if e.Overwrite || !exists(path) {
		return path, nil
	}
	base := strings.TrimSuffix(name, ".md")
	for i := 1; i <= maxNameAttempts; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s-%d.md", base, i))
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", errors.Wrapf(ErrExists, "%s", path)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
