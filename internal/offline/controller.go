package offline

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State of the controller lifecycle. A superseded controller has no
// terminal state of its own; it is simply replaced by the next
// version's active instance.
type State int

const (
	StateNew State = iota
	StateInstalling
	StateWaiting
	StateActivating
	StateActive
)

func (s State) String() string {
	switch s {
	case StateInstalling:
		return "installing"
	case StateWaiting:
		return "waiting"
	case StateActivating:
		return "activating"
	case StateActive:
		return "active"
	default:
		return "new"
	}
}

// Message is a control message from a client.
type Message struct {
	Type string
}

// MessageSkipWaiting asks a waiting controller to supersede the
// previous version immediately instead of waiting for its clients.
const MessageSkipWaiting = "SKIP_WAITING"

// Config assembles a Controller.
type Config struct {
	Manifest Manifest
	Buckets  BucketStore
	Origin   string // base URL of the network ("https://host")
	Client   *http.Client
	Policy   Policy
	Logf     func(format string, args ...any)
}

// Controller owns one versioned cache bucket and resolves in-scope
// GET requests against it per the configured policy.
type Controller struct {
	manifest Manifest
	buckets  BucketStore
	origin   string
	client   *http.Client
	policy   Policy
	logf     func(string, ...any)

	mu          sync.Mutex
	state       State
	skipWaiting bool
	clients     map[uuid.UUID]bool // id → claimed
}

func New(cfg Config) (*Controller, error) {
	if cfg.Manifest.Version == "" {
		return nil, fmt.Errorf("offline: manifest version is required")
	}
	if cfg.Buckets == nil {
		return nil, fmt.Errorf("offline: bucket store is required")
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	policy := cfg.Policy
	if policy == "" {
		policy = PolicyCacheFirst
	}
	logf := cfg.Logf
	if logf == nil {
		logf = log.Printf
	}
	return &Controller{
		manifest: cfg.Manifest,
		buckets:  cfg.Buckets,
		origin:   strings.TrimRight(cfg.Origin, "/"),
		client:   client,
		policy:   policy,
		logf:     logf,
		clients:  make(map[uuid.UUID]bool),
	}, nil
}

func (c *Controller) Version() string { return c.manifest.Version }
func (c *Controller) Scope() string   { return c.manifest.Scope }
func (c *Controller) Policy() Policy  { return c.policy }

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Install populates the version bucket with the manifest assets,
// best-effort: if the full set fails, it retries with only the core
// assets, dropping the locale files. The controller signals readiness
// (StateWaiting) as soon as its own population finishes; it never
// waits on a competing instance.
func (c *Controller) Install(ctx context.Context) error {
	c.setState(StateInstalling)

	bucket, err := c.buckets.Open(ctx, c.manifest.Version)
	if err != nil {
		return fmt.Errorf("open bucket: %w", err)
	}

	if err := c.precache(ctx, bucket, c.manifest.All()); err != nil {
		c.logf("offline: full precache failed, retrying core only: %v", err)
		if err := c.precache(ctx, bucket, c.manifest.Core); err != nil {
			return fmt.Errorf("precache core assets: %w", err)
		}
	}

	c.setState(StateWaiting)
	return nil
}

func (c *Controller) precache(ctx context.Context, bucket Bucket, paths []string) error {
	for _, path := range paths {
		resp, err := c.fetchOrigin(ctx, path)
		if err != nil {
			return err
		}
		if resp.Status != http.StatusOK {
			return fmt.Errorf("precache %s: status %d", path, resp.Status)
		}
		if err := bucket.Put(ctx, path, resp); err != nil {
			return err
		}
	}
	return nil
}

// Activate evicts every bucket whose name is not the current version
// and claims all registered clients. In-scope requests are answered
// by this controller from here on.
func (c *Controller) Activate(ctx context.Context) error {
	c.setState(StateActivating)

	names, err := c.buckets.Names(ctx)
	if err != nil {
		return fmt.Errorf("list buckets: %w", err)
	}
	for _, name := range names {
		if name == c.manifest.Version {
			continue
		}
		if err := c.buckets.Delete(ctx, name); err != nil {
			return fmt.Errorf("evict bucket %s: %w", name, err)
		}
		c.logf("offline: evicted stale cache %s", name)
	}

	c.mu.Lock()
	for id := range c.clients {
		c.clients[id] = true
	}
	c.state = StateActive
	c.mu.Unlock()
	return nil
}

// HandleMessage processes a client control message.
func (c *Controller) HandleMessage(msg Message) {
	if msg.Type != MessageSkipWaiting {
		return
	}
	c.mu.Lock()
	c.skipWaiting = true
	c.mu.Unlock()
}

// SkipWaitingRequested reports whether supersession should bypass the
// wait-for-clients step.
func (c *Controller) SkipWaitingRequested() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.skipWaiting
}

// RegisterClient adds a controlled client; Activate claims them all.
func (c *Controller) RegisterClient() uuid.UUID {
	id := uuid.New()
	c.mu.Lock()
	c.clients[id] = c.state == StateActive
	c.mu.Unlock()
	return id
}

// Claimed reports whether the client is controlled by this instance.
func (c *Controller) Claimed(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clients[id]
}

// InScope reports whether the controller intercepts this request:
// GET only, and only paths under the manifest scope. Everything else
// passes through to the network untouched.
func (c *Controller) InScope(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	return strings.HasPrefix(r.URL.Path, c.manifest.Scope)
}

// Resolve answers an in-scope GET for the given path. It always
// produces a response: network failures degrade to the cache, the
// fallback document, or a synthetic offline placeholder. Cache writes
// complete before the response is released to the caller.
func (c *Controller) Resolve(ctx context.Context, path string) (*Response, error) {
	bucket, err := c.buckets.Open(ctx, c.manifest.Version)
	if err != nil {
		return nil, fmt.Errorf("open bucket: %w", err)
	}
	switch c.policy {
	case PolicyNetworkFirst:
		return c.resolveNetworkFirst(ctx, bucket, path), nil
	default:
		return c.resolveCacheFirst(ctx, bucket, path), nil
	}
}

func (c *Controller) resolveCacheFirst(ctx context.Context, bucket Bucket, path string) *Response {
	if cached, err := bucket.Get(ctx, path); err == nil {
		return cached
	}

	resp, err := c.fetchOrigin(ctx, path)
	if err != nil {
		return offlinePlaceholder()
	}
	if resp.Status != http.StatusOK {
		return resp
	}
	// One copy to the cache, the original to the caller.
	if err := bucket.Put(ctx, path, resp.Clone()); err != nil {
		c.logf("offline: cache write for %s failed: %v", path, err)
	}
	return resp
}

func (c *Controller) resolveNetworkFirst(ctx context.Context, bucket Bucket, path string) *Response {
	resp, err := c.fetchOrigin(ctx, path)
	if err == nil {
		if resp.Status == http.StatusOK {
			if err := bucket.Put(ctx, path, resp.Clone()); err != nil {
				c.logf("offline: cache write for %s failed: %v", path, err)
			}
		}
		return resp
	}

	if cached, err := bucket.Get(ctx, path); err == nil {
		return cached
	}
	if fallback, err := bucket.Get(ctx, c.manifest.Fallback); err == nil {
		return fallback
	}
	return offlinePlaceholder()
}

// fetchOrigin performs the network request and materializes the body.
// Response bodies are single-use streams, so the body is read exactly
// once here and duplicated downstream.
func (c *Controller) fetchOrigin(ctx context.Context, path string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.origin+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body}, nil
}

func offlinePlaceholder() *Response {
	h := http.Header{}
	h.Set("Content-Type", "text/plain; charset=utf-8")
	return &Response{
		Status: http.StatusOK,
		Header: h,
		Body:   []byte("Offline - Using cached data"),
	}
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
