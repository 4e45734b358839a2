package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// LoadPepper reads the pepper from path, creating the file with a fresh
// random secret on first start. It must run before any hashing. Losing the
// file invalidates every Argon2id hash in the database.
func LoadPepper(path string) error {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("cryptox: pepper dir: %w", err)
	}

	raw, err := os.ReadFile(path) // #nosec G304 path comes from operator config
	switch {
	case err == nil:
		setPepper(strings.TrimSpace(string(raw)))
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("cryptox: read pepper: %w", err)
	}

	buf := make([]byte, keyLength)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	value := base64.RawURLEncoding.EncodeToString(buf)

	// Another replica may be creating the file at the same moment.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) // #nosec G304
	if errors.Is(err, os.ErrExist) {
		return LoadPepper(path)
	}
	if err != nil {
		return fmt.Errorf("cryptox: create pepper: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(value); err != nil {
		return fmt.Errorf("cryptox: write pepper: %w", err)
	}
	setPepper(value)
	return nil
}

// Pepper returns the loaded pepper, or "" when LoadPepper has not run.
func Pepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}

func setPepper(v string) {
	pepperMu.Lock()
	pepper = v
	pepperMu.Unlock()
}
