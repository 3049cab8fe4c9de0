package credstore

import (
	"fmt"
	"strings"
	"time"
)

// Package credstore persists bearer tokens for the CLI, keyed by target.

// Store holds bearer tokens per API target.
type Store interface {
	Close() error
	Token(target string) (string, bool, error)
	SetToken(target, token string) error
	DeleteToken(target string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	TokenTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTokenTTL        = 24 * time.Hour
	defaultCleanupInterval = time.Hour
)

// NewStore creates the configured credential backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt credstore requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported credstore type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                       { return nil }
func (noopStore) Token(string) (string, bool, error) { return "", false, nil }
func (noopStore) SetToken(string, string) error      { return nil }
func (noopStore) DeleteToken(string) error           { return nil }
