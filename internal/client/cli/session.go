package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/filex"
)

const sessionFileName = "session"

// sessionStore keeps the current token on disk between runs. A zero value
// (empty dir) keeps nothing.
type sessionStore struct {
	dir string
}

func (s sessionStore) enabled() bool {
	return s.dir != ""
}

func (s sessionStore) Load() (string, error) {
	if !s.enabled() {
		return "", nil
	}
	b, err := os.ReadFile(filepath.Join(s.dir, sessionFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read session: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s sessionStore) Save(token string) error {
	if !s.enabled() {
		return nil
	}
	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return err
	}
	return filex.WriteFileAtomic(filepath.Join(dir, sessionFileName), []byte(token), 0o600)
}

func (s sessionStore) Clear() error {
	if !s.enabled() {
		return nil
	}
	return filex.RemoveIfExists(filepath.Join(s.dir, sessionFileName))
}
