package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Default output suffixes.
const (
	DefaultSuffix          = "fix"
	DefaultRoundtripSuffix = "rt"
)

// Config holds configuration for reading and writing timing configs.
type Config struct {
	// Suffix is appended to output filenames when not overwriting in place.
	Suffix string `mapstructure:"suffix" default:"fix"`
	// RoundtripSuffix is the suffix used by the round-trip fidelity check.
	RoundtripSuffix string `mapstructure:"roundtrip_suffix" default:"rt"`
	// Indent is the indentation width used when writing.
	Indent int `mapstructure:"indent" default:"2"`
}

// ParseError reports a document whose content is not well-formed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Store loads and saves documents on a filesystem.
//
// There is no locking: two processes rewriting the same path race, and the
// last rename wins.
type Store struct {
	fs     afero.Fs
	logger *zap.Logger
	indent int
}

// NewStore creates a store. A nil logger disables diagnostics.
func NewStore(fs afero.Fs, logger *zap.Logger, indent int) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if indent <= 0 {
		indent = DefaultIndent
	}
	return &Store{fs: fs, logger: logger, indent: indent}
}

// Load reads and decodes the document at path.
func (s *Store) Load(path string) (*Document, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	doc.path = path
	return doc, nil
}

// Save encodes doc and replaces whatever is at path. The bytes go to a
// temporary file in the same directory which is then renamed over path.
// An existing path keeps its mode; a new one takes the mode of the file doc
// was loaded from.
func (s *Store) Save(doc *Document, path string) error {
	data, err := Encode(doc, s.indent)
	if err != nil {
		return err
	}

	if ce := s.logger.Check(zap.DebugLevel, "document diff"); ce != nil {
		if d := Diff(doc.source, data); d != "" {
			ce.Write(zap.String("path", path), zap.String("diff", d))
		}
	}

	perm := s.mode(path, doc.path)

	tmp, err := afero.TempFile(s.fs, filepath.Dir(path), ".timingcfg-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := s.fs.Chmod(tmpPath, perm); err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err := s.fs.Rename(tmpPath, path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func (s *Store) mode(paths ...string) os.FileMode {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if fi, err := s.fs.Stat(p); err == nil {
			return fi.Mode().Perm()
		}
	}
	return 0o644
}

// ResolveOutputPath returns path itself when overwriting, otherwise path with
// "."+suffix appended. An empty suffix means DefaultSuffix. The original file
// is never consulted.
func ResolveOutputPath(path string, overwrite bool, suffix string) string {
	if overwrite {
		return path
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return path + "." + suffix
}
