package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avstrong/pricelist/internal/logger"
)

var ErrBadFilename = errors.New("filename must be a plain file name")

type Config struct {
	L   *logger.Logger
	Dir string
}

// Sink writes export documents as indented JSON files into one directory.
type Sink struct {
	l   *logger.Logger
	dir string
}

func New(conf Config) (*Sink, error) {
	if err := os.MkdirAll(conf.Dir, 0o750); err != nil { //nolint:gomnd
		return nil, fmt.Errorf("create export dir %s: %w", conf.Dir, err)
	}

	return &Sink{
		l:   conf.L,
		dir: conf.Dir,
	}, nil
}

func (s *Sink) Save(ctx context.Context, filename string, v any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}

	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return fmt.Errorf("save %q: %w", filename, ErrBadFilename)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filename, err)
	}

	path := filepath.Join(s.dir, filename)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o640); err != nil { //nolint:gomnd
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	s.l.LogDebugf("Export written to %s", path)

	return nil
}

// Path is where Save puts filename.
func (s *Sink) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}
