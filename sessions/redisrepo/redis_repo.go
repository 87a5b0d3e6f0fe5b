package redisrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/truedev-client/sessions"
	"github.com/redis/go-redis/v9"
)

var _ sessions.Repo = (*Repo)(nil)

const defaultOpTimeout = 5 * time.Second

// Repo keeps the session keys in redis under a shared prefix, so several
// processes on one machine can share a login.
type Repo struct {
	client    *redis.Client
	prefix    string
	opTimeout time.Duration
}

type Option func(*Repo)

func WithOpTimeout(d time.Duration) Option {
	return func(r *Repo) {
		r.opTimeout = d
	}
}

func New(client *redis.Client, prefix string, options ...Option) *Repo {
	r := &Repo{
		client:    client,
		prefix:    prefix,
		opTimeout: defaultOpTimeout,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Dial builds a client from address settings and checks connectivity.
func Dial(ctx context.Context, addr, password string, db int, prefix string) (*Repo, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("[redisrepo Dial] ping %s: %w", addr, err)
	}
	return New(client, prefix), nil
}

func (r *Repo) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("[redisrepo Get] %s: %w", key, err)
	}
	return v, true, nil
}

func (r *Repo) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("[redisrepo Set] %s: %w", key, err)
	}
	return nil
}

func (r *Repo) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("[redisrepo Delete] %s: %w", key, err)
	}
	return nil
}

func (r *Repo) Close() error {
	return r.client.Close()
}
