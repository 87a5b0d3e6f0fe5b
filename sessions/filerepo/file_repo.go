package filerepo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/truedev-client/sessions"
)

var _ sessions.Repo = (*Repo)(nil)

// Repo stores the session keys as a single JSON object on disk. Each write
// replaces the file through a temp file and rename.
type Repo struct {
	path string
	lock sync.Mutex
}

func New(path string) *Repo {
	return &Repo{path: path}
}

func (r *Repo) Path() string {
	return r.path
}

func (r *Repo) Get(key string) (string, bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	values, err := r.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (r *Repo) Set(key, value string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	values, err := r.load()
	if err != nil {
		return err
	}
	values[key] = value
	return r.save(values)
}

func (r *Repo) Delete(key string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	values, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return r.save(values)
}

func (r *Repo) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("[filerepo load] %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("[filerepo load] corrupt session file %s: %w", r.path, err)
	}
	return values, nil
}

func (r *Repo) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("[filerepo save] %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("[filerepo save] %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".session-*.json")
	if err != nil {
		return fmt.Errorf("[filerepo save] %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("[filerepo save] %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("[filerepo save] %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[filerepo save] %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("[filerepo save] %w", err)
	}
	return nil
}
