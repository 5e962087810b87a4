package reconcile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidFilename is returned for config names that are not
// "source.type.ext" with a known TOA type.
var ErrInvalidFilename = errors.New("invalid config filename")

// ParseIdentity splits the base name of path into source, TOA type and
// extension. The type marker is matched case-insensitively.
func ParseIdentity(path string) (Identity, error) {
	base := filepath.Base(path)
	parts := strings.Split(base, ".")
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return Identity{}, fmt.Errorf("%w: %s is not source.type.ext", ErrInvalidFilename, base)
	}

	t := ToaType(strings.ToLower(parts[1]))
	if t != Narrowband && t != Wideband {
		return Identity{}, fmt.Errorf("%w: %s has unknown TOA type %q", ErrInvalidFilename, base, parts[1])
	}
	return Identity{Source: parts[0], Type: t, Ext: parts[2]}, nil
}
