// Package levelcache caches decoded level data in Redis in front of the
// game backend.
package levelcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/vovakirdan/toxic-turtle/internal/core"
	"github.com/vovakirdan/toxic-turtle/internal/turtle"
)

// Source loads a level from the backend.
type Source interface {
	LevelData(ctx context.Context, level int) (turtle.Level, error)
}

// entry is the cached form of a level.
type entry struct {
	Number    int      `json:"number"`
	Source    []string `json:"source"`
	Movements []string `json:"movements"`
	CursorMap []int    `json:"cursor_map"`
}

// Cache is a read-through Source. Access rules are evaluated by the backend
// per user, so keys include a fingerprint of the bearer token; errors are
// never cached.
type Cache struct {
	src    Source
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *log.Logger
}

type Option func(*Cache)

// WithTTL sets the expiration for cached levels.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// WithLogger sets the logger used for cache failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Cache) {
		c.logger = l
	}
}

// New wraps src with a cache stored through client. token identifies the
// player whose view of the levels is cached.
func New(src Source, client *redis.Client, token string, opts ...Option) *Cache {
	c := &Cache{
		src:    src,
		client: client,
		prefix: "turtle:level:",
		ttl:    time.Hour,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.prefix += fingerprint(token) + ":"
	return c
}

// Dial connects to Redis at addr and wraps src.
func Dial(ctx context.Context, src Source, addr, token string, opts ...Option) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("levelcache: ping %s: %w", addr, err)
	}
	return New(src, client, token, opts...), nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

func (c *Cache) key(level int) string {
	return fmt.Sprintf("%s%d", c.prefix, level)
}

// LevelData returns the cached level or loads it from the source. Redis
// failures fall through to the source.
func (c *Cache) LevelData(ctx context.Context, level int) (turtle.Level, error) {
	key := c.key(level)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		lvl, decErr := decode(data)
		if decErr == nil {
			return lvl, nil
		}
		c.logger.Warn("discarding cached level", "lvl", level, "err", decErr)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("level cache read failed", "lvl", level, "err", err)
	}

	lvl, err := c.src.LevelData(ctx, level)
	if err != nil {
		return turtle.Level{}, err
	}

	if data, err := encode(lvl); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("level cache write failed", "lvl", level, "err", err)
		}
	}
	return lvl, nil
}

func encode(lvl turtle.Level) ([]byte, error) {
	e := entry{Number: lvl.Number, Source: lvl.Source, CursorMap: lvl.CursorMap}
	for _, m := range lvl.Movements {
		e.Movements = append(e.Movements, m.String())
	}
	return json.Marshal(e)
}

func decode(data []byte) (turtle.Level, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return turtle.Level{}, err
	}
	lvl := turtle.Level{Number: e.Number, Source: e.Source, CursorMap: e.CursorMap}
	for _, m := range e.Movements {
		a, err := core.ParseMovement(m)
		if err != nil {
			return turtle.Level{}, err
		}
		lvl.Movements = append(lvl.Movements, a)
	}
	if err := lvl.Validate(); err != nil {
		return turtle.Level{}, err
	}
	return lvl, nil
}
