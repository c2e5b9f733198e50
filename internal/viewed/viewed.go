// Package viewed remembers which directory links the user has opened.
package viewed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/nikbrunner/linkdir/internal/storage"
)

const (
	// DefaultKey is the storage key holding the serialized link set.
	DefaultKey = "viewedLinks"
	// DefaultTTL matches the 365-day cookie the web version used.
	DefaultTTL = 365 * 24 * time.Hour
)

// Options configures a Tracker.
type Options struct {
	Key    string
	TTL    time.Duration
	Logger *zap.Logger
}

// Tracker is the set of viewed links, persisted as a JSON array of strings.
type Tracker struct {
	kv     storage.KV // nil keeps the set in memory only
	key    string
	ttl    time.Duration
	links  map[string]struct{}
	logger *zap.Logger
}

// New creates an empty Tracker backed by kv.
func New(kv storage.KV, opts Options) *Tracker {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Tracker{
		kv:     kv,
		key:    opts.Key,
		ttl:    opts.TTL,
		links:  make(map[string]struct{}),
		logger: opts.Logger,
	}
}

// LoadPersisted replaces the in-memory set with the persisted one.
// Missing, expired or unreadable values yield an empty set.
func (t *Tracker) LoadPersisted(ctx context.Context) map[string]struct{} {
	t.links = make(map[string]struct{})
	if t.kv == nil {
		return t.snapshot()
	}

	raw, err := t.kv.Get(ctx, t.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.logger.Warn("viewed links unreadable, starting empty", zap.Error(err))
		}
		return t.snapshot()
	}

	var links []string
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		t.logger.Warn("viewed links corrupt, starting empty", zap.Error(err))
		return t.snapshot()
	}
	for _, l := range links {
		t.links[l] = struct{}{}
	}
	t.logger.Debug("viewed links loaded", zap.Int("count", len(t.links)))
	return t.snapshot()
}

// MarkViewed adds link to the set and persists it. The in-memory set keeps
// the link even when persisting fails.
func (t *Tracker) MarkViewed(ctx context.Context, link string) error {
	t.links[link] = struct{}{}
	return t.persist(ctx)
}

// MarkAll adds every link and persists once.
func (t *Tracker) MarkAll(ctx context.Context, links []string) error {
	for _, l := range links {
		t.links[l] = struct{}{}
	}
	return t.persist(ctx)
}

// IsViewed reports whether link has been viewed.
func (t *Tracker) IsViewed(link string) bool {
	_, ok := t.links[link]
	return ok
}

// Links returns the viewed links, sorted.
func (t *Tracker) Links() []string {
	out := make([]string, 0, len(t.links))
	for l := range t.links {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of viewed links.
func (t *Tracker) Len() int {
	return len(t.links)
}

// Clear forgets every viewed link, in memory and in storage.
func (t *Tracker) Clear(ctx context.Context) error {
	t.links = make(map[string]struct{})
	if t.kv == nil {
		return nil
	}
	if err := t.kv.Delete(ctx, t.key); err != nil {
		return fmt.Errorf("clear viewed links: %w", err)
	}
	return nil
}

func (t *Tracker) persist(ctx context.Context) error {
	if t.kv == nil {
		return nil
	}
	data, err := json.Marshal(t.Links())
	if err != nil {
		return err
	}
	if err := t.kv.Set(ctx, t.key, string(data), t.ttl); err != nil {
		return fmt.Errorf("persist viewed links: %w", err)
	}
	return nil
}

func (t *Tracker) snapshot() map[string]struct{} {
	out := make(map[string]struct{}, len(t.links))
	for l := range t.links {
		out[l] = struct{}{}
	}
	return out
}
