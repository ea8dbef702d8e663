// Package secrets abstracts where the token signing secret comes from.
// Production injects managed secrets through the environment; the Cached
// decorator guarantees the underlying store is consulted at most once per
// process regardless of how many goroutines race on the first read.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrSecretNotFound is returned when the named secret has no value.
var ErrSecretNotFound = errors.New("secret not found")

// Store resolves named secrets.
type Store interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// EnvStore resolves secrets from process environment variables.
type EnvStore struct{}

func NewEnvStore() *EnvStore {
	return &EnvStore{}
}

func (s *EnvStore) GetSecret(_ context.Context, name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, name)
	}
	return value, nil
}

// Cached wraps a Store and memoizes the first fetch per name. The first
// caller performs the fetch; concurrent callers block on it and share the
// result, including a failed one. A process that cannot resolve its
// signing secret must not retry into a half-configured state.
type Cached struct {
	inner Store

	mu    sync.Mutex
	cells map[string]*cell
}

type cell struct {
	once  sync.Once
	value string
	err   error
}

func NewCached(inner Store) *Cached {
	return &Cached{
		inner: inner,
		cells: make(map[string]*cell),
	}
}

func (c *Cached) GetSecret(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	cl, ok := c.cells[name]
	if !ok {
		cl = &cell{}
		c.cells[name] = cl
	}
	c.mu.Unlock()

	cl.once.Do(func() {
		cl.value, cl.err = c.inner.GetSecret(ctx, name)
	})
	return cl.value, cl.err
}
