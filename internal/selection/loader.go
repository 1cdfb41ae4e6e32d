package selection

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ErrInvalidName is returned for selection names that are absolute or leave the selection root.
var ErrInvalidName = errors.New("selection file name must be relative and stay inside the selection directory")

// Loader reads a gzipped file holding one product ID per line. name is relative to the loader's root.
type Loader interface {
	Load(ctx context.Context, name string) (*Set, error)
}

// CleanName normalizes a selection file name. Absolute names and names that climb out of the root
// with ".." are rejected.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return "", ErrInvalidName
	}

	cleaned := filepath.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", ErrInvalidName
	}
	return filepath.ToSlash(cleaned), nil
}

// fileLoader implements Loader for files under a local directory.
type fileLoader struct {
	dir    string
	logger zerolog.Logger
}

// NewFileLoader creates a selection loader rooted at dir.
func NewFileLoader(dir string, logger zerolog.Logger) Loader {
	return &fileLoader{
		dir:    dir,
		logger: logger.With().Str("component", "selection-loader").Logger(),
	}
}

func (l *fileLoader) Load(ctx context.Context, name string) (*Set, error) {
	cleaned, err := CleanName(name)
	if err != nil {
		l.logger.Warn().Str("file", name).Msg("rejected selection file name")
		return nil, err
	}
	path := filepath.Join(l.dir, filepath.FromSlash(cleaned))

	l.logger.Info().Str("file", path).Msg("loading selection file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open selection file")
		return nil, fmt.Errorf("failed to open selection file %s: %w", cleaned, errors.Unwrap(err))
	}
	defer file.Close()

	set, err := readIDs(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read selection file")
		return nil, fmt.Errorf("failed to read selection file %s: %w", cleaned, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("products_selected", set.Size()).
		Msg("selection file loaded")

	return set, nil
}

const cancelCheckEvery = 10_000

// readIDs decompresses r and collects one trimmed ID per non-empty line.
func readIDs(ctx context.Context, r io.Reader) (*Set, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	set := NewSet()
	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lines := 0
	for scanner.Scan() {
		if lines%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		lines++

		if id := strings.TrimSpace(scanner.Text()); id != "" {
			set.Add(id)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}
