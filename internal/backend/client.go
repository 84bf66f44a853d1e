// Package backend is the HTTP client for the game backend: level data,
// progress recording and unlock state.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/toxic-turtle/internal/turtle"
)

// DefaultTimeout bounds every request when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// Progress is the player's unlock state.
type Progress struct {
	UserID string
	// CurrentLevel is the highest passed level, 0 when nothing is passed.
	CurrentLevel int
	TotalLevels  int
}

// Unlocked reports whether level may be opened from the level select.
func (p Progress) Unlocked(level int) bool {
	if level < 1 || (p.TotalLevels > 0 && level > p.TotalLevels) {
		return false
	}
	if p.CurrentLevel == 0 {
		return level == 1
	}
	return level <= p.CurrentLevel+1
}

// Passed reports whether level is at or below the highest passed level.
func (p Progress) Passed(level int) bool {
	return level >= 1 && level <= p.CurrentLevel
}

// Completion summarizes whether every level has been passed.
type Completion struct {
	UserID       string
	AllPassed    bool
	LevelsPassed int
	TotalLevels  int
}

// Options configure a Client.
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client talks to the game backend. It is safe for concurrent use.
type Client struct {
	base   *url.URL
	token  string
	http   *http.Client
	logger *log.Logger
}

// New creates a client for the backend at opts.BaseURL.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("backend: base url is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend: unsupported scheme %q", base.Scheme)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Client{base: base, token: opts.Token, http: hc, logger: logger}, nil
}

// Token returns the bearer token the client sends.
func (c *Client) Token() string {
	return c.token
}

// LevelData fetches and decodes a level.
func (c *Client) LevelData(ctx context.Context, level int) (turtle.Level, error) {
	q := url.Values{"level": {strconv.Itoa(level)}}
	var p levelPayload
	if err := c.do(ctx, "get level data", http.MethodGet, "/game/get_level_data", q, nil, &p); err != nil {
		return turtle.Level{}, err
	}
	lvl, err := p.toLevel(level)
	if err != nil {
		return turtle.Level{}, fmt.Errorf("backend: level %d: %w", level, err)
	}
	return lvl, nil
}

// PassLevel records that the current user passed level.
func (c *Client) PassLevel(ctx context.Context, level int) error {
	return c.do(ctx, "pass level", http.MethodPost, "/game/pass_level", nil, passPayload{Level: level}, nil)
}

// Progress fetches the highest passed level and the level count.
func (c *Client) Progress(ctx context.Context) (Progress, error) {
	var p progressPayload
	if err := c.do(ctx, "current level", http.MethodGet, "/game/current_level", nil, nil, &p); err != nil {
		return Progress{}, err
	}
	out := Progress{UserID: string(p.UserID), TotalLevels: p.TotalLevels}
	if p.CurrentLevel != nil {
		out.CurrentLevel = *p.CurrentLevel
	}
	return out, nil
}

// Completion reports whether every level has been passed.
func (c *Client) Completion(ctx context.Context) (Completion, error) {
	var p completionPayload
	if err := c.do(ctx, "check pass all", http.MethodGet, "/game/check_pass_all_level", nil, nil, &p); err != nil {
		return Completion{}, err
	}
	return Completion{
		UserID:       string(p.UserID),
		AllPassed:    p.AllLevelsPassed,
		LevelsPassed: p.LevelsPassed,
		TotalLevels:  p.TotalLevels,
	}, nil
}

// do sends one request. body is JSON encoded when non-nil and the response
// is decoded into out when non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: %s: encode: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("backend: %s: read body: %w", op, err)
	}
	c.logger.Debug("request", "op", op, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, Code: resp.StatusCode, Detail: decodeDetail(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("backend: %s: decode: %w", op, err)
	}
	return nil
}
