package repofakes

import (
	"errors"
	"sync"

	"github.com/jrsteele09/truedev-client/sessions"
)

var _ sessions.Repo = (*FakeKVRepo)(nil)

var ErrFakeStorage = errors.New("fake storage failure")

// FakeKVRepo keeps the session keys in memory. FailWith makes every call
// return the given error, for exercising persistence failures.
type FakeKVRepo struct {
	values map[string]string
	err    error
	lock   sync.RWMutex
}

func NewFakeKVRepo() *FakeKVRepo {
	return &FakeKVRepo{
		values: make(map[string]string),
	}
}

// NewFakeKVRepoWith seeds the repo with values.
func NewFakeKVRepoWith(values map[string]string) *FakeKVRepo {
	r := NewFakeKVRepo()
	for k, v := range values {
		r.values[k] = v
	}
	return r
}

func (r *FakeKVRepo) FailWith(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.err = err
}

func (r *FakeKVRepo) Get(key string) (string, bool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.err != nil {
		return "", false, r.err
	}
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *FakeKVRepo) Set(key, value string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.err != nil {
		return r.err
	}
	r.values[key] = value
	return nil
}

func (r *FakeKVRepo) Delete(key string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.err != nil {
		return r.err
	}
	delete(r.values, key)
	return nil
}

// Snapshot returns a copy of everything stored.
func (r *FakeKVRepo) Snapshot() map[string]string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
