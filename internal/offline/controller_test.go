package offline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func testManifest() Manifest {
	return Manifest{
		Version:  "app-v1",
		Scope:    "/app/",
		Fallback: "/app/index.html",
		Core:     []string{"/app/index.html", "/app/app.js"},
		Locales:  []string{"/app/locales/en.json", "/app/locales/ko.json"},
	}
}

// countingOrigin serves every path with a body equal to the path and
// counts hits. Paths in fail get a 500.
type countingOrigin struct {
	hits atomic.Int64
	fail map[string]bool
}

func (o *countingOrigin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	o.hits.Add(1)
	if o.fail[r.URL.Path] {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	w.Write([]byte("origin:" + r.URL.Path))
}

func newController(t *testing.T, origin string, buckets BucketStore, policy Policy) *Controller {
	t.Helper()
	ctrl, err := New(Config{
		Manifest: testManifest(),
		Buckets:  buckets,
		Origin:   origin,
		Policy:   policy,
		Logf:     t.Logf,
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

func TestInstallPrecachesAllManifestAssets(t *testing.T) {
	origin := &countingOrigin{}
	srv := httptest.NewServer(origin)
	defer srv.Close()

	buckets := NewMemoryBuckets()
	ctrl := newController(t, srv.URL, buckets, PolicyCacheFirst)

	if err := ctrl.Install(context.Background()); err != nil {
		t.Fatalf("install: %v", err)
	}
	if got := ctrl.State(); got != StateWaiting {
		t.Fatalf("state after install = %s, want waiting", got)
	}

	bucket, _ := buckets.Open(context.Background(), "app-v1")
	for _, path := range testManifest().All() {
		resp, err := bucket.Get(context.Background(), path)
		if err != nil {
			t.Fatalf("%s not precached: %v", path, err)
		}
		if string(resp.Body) != "origin:"+path {
			t.Fatalf("%s body = %q", path, resp.Body)
		}
	}
}

func TestInstallRetriesCoreOnlyWhenLocalesFail(t *testing.T) {
	origin := &countingOrigin{fail: map[string]bool{"/app/locales/ko.json": true}}
	srv := httptest.NewServer(origin)
	defer srv.Close()

	buckets := NewMemoryBuckets()
	ctrl := newController(t, srv.URL, buckets, PolicyCacheFirst)

	if err := ctrl.Install(context.Background()); err != nil {
		t.Fatalf("install must succeed with core assets only: %v", err)
	}

	bucket, _ := buckets.Open(context.Background(), "app-v1")
	for _, path := range testManifest().Core {
		if _, err := bucket.Get(context.Background(), path); err != nil {
			t.Fatalf("core asset %s missing after retry: %v", path, err)
		}
	}
	if _, err := bucket.Get(context.Background(), "/app/locales/ko.json"); !errors.Is(err, ErrMiss) {
		t.Fatal("failing locale must not be cached")
	}
}

func TestInstallFailsWhenCoreAssetUnavailable(t *testing.T) {
	origin := &countingOrigin{fail: map[string]bool{"/app/index.html": true}}
	srv := httptest.NewServer(origin)
	defer srv.Close()

	ctrl := newController(t, srv.URL, NewMemoryBuckets(), PolicyCacheFirst)
	if err := ctrl.Install(context.Background()); err == nil {
		t.Fatal("install must fail when a core asset cannot be fetched")
	}
}

func TestActivateEvictsStaleBucketsAndClaimsClients(t *testing.T) {
	ctx := context.Background()
	buckets := NewMemoryBuckets()
	// Leftovers from two earlier versions.
	old, _ := buckets.Open(ctx, "app-v0")
	old.Put(ctx, "/app/index.html", &Response{Status: 200})
	buckets.Open(ctx, "legacy")
	buckets.Open(ctx, "app-v1")

	ctrl := newController(t, "http://unused", buckets, PolicyCacheFirst)
	id := ctrl.RegisterClient()
	if ctrl.Claimed(id) {
		t.Fatal("client must not be claimed before activation")
	}

	if err := ctrl.Activate(ctx); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if got := ctrl.State(); got != StateActive {
		t.Fatalf("state = %s, want active", got)
	}

	names, _ := buckets.Names(ctx)
	if len(names) != 1 || names[0] != "app-v1" {
		t.Fatalf("buckets after activate = %v, want only app-v1", names)
	}
	if !ctrl.Claimed(id) {
		t.Fatal("activation must claim registered clients")
	}
	// Clients registered after activation are claimed immediately.
	if late := ctrl.RegisterClient(); !ctrl.Claimed(late) {
		t.Fatal("late client not claimed")
	}
}

func TestCacheFirstServesHitWithoutNetwork(t *testing.T) {
	origin := &countingOrigin{}
	srv := httptest.NewServer(origin)
	defer srv.Close()

	ctx := context.Background()
	ctrl := newController(t, srv.URL, NewMemoryBuckets(), PolicyCacheFirst)

	first, err := ctrl.Resolve(ctx, "/app/app.js")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if string(first.Body) != "origin:/app/app.js" {
		t.Fatalf("first body = %q", first.Body)
	}
	before := origin.hits.Load()

	second, err := ctrl.Resolve(ctx, "/app/app.js")
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if origin.hits.Load() != before {
		t.Fatal("cache hit must not touch the network")
	}
	if string(second.Body) != string(first.Body) {
		t.Fatal("cached body differs")
	}
}

func TestCacheFirstDegradesToPlaceholderWhenOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // origin is down

	ctrl := newController(t, srv.URL, NewMemoryBuckets(), PolicyCacheFirst)
	resp, err := ctrl.Resolve(context.Background(), "/app/uncached.js")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("placeholder status = %d", resp.Status)
	}
	if !strings.Contains(string(resp.Body), "Offline") {
		t.Fatalf("placeholder body = %q", resp.Body)
	}
}

func TestCacheFirstDoesNotCacheErrorResponses(t *testing.T) {
	origin := &countingOrigin{fail: map[string]bool{"/app/missing.js": true}}
	srv := httptest.NewServer(origin)
	defer srv.Close()

	ctx := context.Background()
	buckets := NewMemoryBuckets()
	ctrl := newController(t, srv.URL, buckets, PolicyCacheFirst)

	resp, err := ctrl.Resolve(ctx, "/app/missing.js")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resp.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want the origin error passed through", resp.Status)
	}

	bucket, _ := buckets.Open(ctx, "app-v1")
	if _, err := bucket.Get(ctx, "/app/missing.js"); !errors.Is(err, ErrMiss) {
		t.Fatal("error response must not be cached")
	}
}

func TestNetworkFirstRefreshesCache(t *testing.T) {
	origin := &countingOrigin{}
	srv := httptest.NewServer(origin)
	defer srv.Close()

	ctx := context.Background()
	buckets := NewMemoryBuckets()
	ctrl := newController(t, srv.URL, buckets, PolicyNetworkFirst)

	ctrl.Resolve(ctx, "/app/index.html")
	before := origin.hits.Load()
	ctrl.Resolve(ctx, "/app/index.html")
	if origin.hits.Load() != before+1 {
		t.Fatal("network-first must hit the network on every request")
	}

	bucket, _ := buckets.Open(ctx, "app-v1")
	if _, err := bucket.Get(ctx, "/app/index.html"); err != nil {
		t.Fatalf("successful fetch must refresh the cache: %v", err)
	}
}

func TestNetworkFirstFallsBackToCacheThenFallbackDocument(t *testing.T) {
	origin := &countingOrigin{}
	srv := httptest.NewServer(origin)

	ctx := context.Background()
	buckets := NewMemoryBuckets()
	ctrl := newController(t, srv.URL, buckets, PolicyNetworkFirst)

	// Warm the cache for one path plus the fallback document, then cut
	// the network.
	ctrl.Resolve(ctx, "/app/app.js")
	ctrl.Resolve(ctx, "/app/index.html")
	srv.Close()

	cached, err := ctrl.Resolve(ctx, "/app/app.js")
	if err != nil {
		t.Fatalf("resolve cached: %v", err)
	}
	if string(cached.Body) != "origin:/app/app.js" {
		t.Fatalf("expected cached copy, got %q", cached.Body)
	}

	// Uncached path degrades to the fallback document.
	fell, err := ctrl.Resolve(ctx, "/app/never-seen.js")
	if err != nil {
		t.Fatalf("resolve fallback: %v", err)
	}
	if string(fell.Body) != "origin:/app/index.html" {
		t.Fatalf("expected fallback document, got %q", fell.Body)
	}
}

func TestNetworkFirstPlaceholderWhenNothingCached(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	ctrl := newController(t, srv.URL, NewMemoryBuckets(), PolicyNetworkFirst)
	resp, err := ctrl.Resolve(context.Background(), "/app/anything")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.Contains(string(resp.Body), "Offline") {
		t.Fatalf("expected placeholder, got %q", resp.Body)
	}
}

func TestInScope(t *testing.T) {
	ctrl := newController(t, "http://unused", NewMemoryBuckets(), PolicyCacheFirst)

	cases := []struct {
		method, path string
		want         bool
	}{
		{http.MethodGet, "/app/index.html", true},
		{http.MethodGet, "/app/", true},
		{http.MethodGet, "/other/index.html", false},
		{http.MethodPost, "/app/index.html", false},
		{http.MethodHead, "/app/index.html", false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(tc.method, tc.path, nil)
		if got := ctrl.InScope(r); got != tc.want {
			t.Errorf("InScope(%s %s) = %v, want %v", tc.method, tc.path, got, tc.want)
		}
	}
}

func TestSkipWaitingMessage(t *testing.T) {
	ctrl := newController(t, "http://unused", NewMemoryBuckets(), PolicyCacheFirst)

	ctrl.HandleMessage(Message{Type: "PING"})
	if ctrl.SkipWaitingRequested() {
		t.Fatal("unrelated message must not request skip-waiting")
	}
	ctrl.HandleMessage(Message{Type: MessageSkipWaiting})
	if !ctrl.SkipWaitingRequested() {
		t.Fatal("skip-waiting message not recorded")
	}
}

func TestResponseCloneIsIndependent(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "text/html")
	orig := &Response{Status: 200, Header: h, Body: []byte("hello")}

	clone := orig.Clone()
	clone.Body[0] = 'X'
	clone.Header.Set("Content-Type", "text/plain")

	if string(orig.Body) != "hello" {
		t.Fatal("clone shares body storage")
	}
	if orig.Header.Get("Content-Type") != "text/html" {
		t.Fatal("clone shares header storage")
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy(""); err != nil || p != PolicyCacheFirst {
		t.Fatalf("empty policy = %q, %v; want default cache-first", p, err)
	}
	if p, _ := ParsePolicy("network-first"); p != PolicyNetworkFirst {
		t.Fatalf("parse = %q", p)
	}
	if _, err := ParsePolicy("stale-while-revalidate"); err == nil {
		t.Fatal("unknown policy must error")
	}
}
