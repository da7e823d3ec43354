// Package web is the edge in front of the offline cache controller:
// a gin router that answers in-scope GETs through the controller and
// proxies everything else to the origin untouched.
package web

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"taskdeck/internal/offline"
)

// Server routes requests through the current controller and supports
// swapping in a newer version (the supersession step).
type Server struct {
	mu     sync.RWMutex
	ctrl   *offline.Controller
	origin string
	client *http.Client
	logf   func(string, ...any)

	inflight sync.WaitGroup
}

func NewServer(ctrl *offline.Controller, origin string) *Server {
	return &Server{
		ctrl:   ctrl,
		origin: strings.TrimRight(origin, "/"),
		client: http.DefaultClient,
		logf:   log.Printf,
	}
}

// Router builds the gin engine. Every path funnels through one
// handler; scope and method checks belong to the controller.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.NoRoute(s.handle)
	return r
}

// Controller returns the instance currently answering requests.
func (s *Server) Controller() *offline.Controller {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctrl
}

// Swap installs and activates the next controller version. Unless the
// next instance requested skip-waiting, in-flight requests drain
// before the old version is superseded.
func (s *Server) Swap(ctx context.Context, next *offline.Controller) error {
	if err := next.Install(ctx); err != nil {
		return fmt.Errorf("install %s: %w", next.Version(), err)
	}
	if !next.SkipWaitingRequested() {
		s.inflight.Wait()
	}
	if err := next.Activate(ctx); err != nil {
		return fmt.Errorf("activate %s: %w", next.Version(), err)
	}
	s.mu.Lock()
	old := s.ctrl
	s.ctrl = next
	s.mu.Unlock()
	if old != nil {
		s.logf("web: %s superseded by %s", old.Version(), next.Version())
	}
	return nil
}

func (s *Server) handle(c *gin.Context) {
	s.inflight.Add(1)
	defer s.inflight.Done()

	ctrl := s.Controller()
	if ctrl == nil || !ctrl.InScope(c.Request) {
		s.passthrough(c)
		return
	}

	resp, err := ctrl.Resolve(c.Request.Context(), c.Request.URL.Path)
	if err != nil {
		c.String(http.StatusInternalServerError, "cache error: %v", err)
		return
	}
	writeResponse(c, resp)
}

func writeResponse(c *gin.Context, resp *offline.Response) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			c.Writer.Header().Add(k, v)
		}
	}
	c.Status(resp.Status)
	c.Writer.Write(resp.Body)
}

// passthrough forwards the request to the origin without caching.
func (s *Server) passthrough(c *gin.Context) {
	req, err := http.NewRequestWithContext(c.Request.Context(),
		c.Request.Method, s.origin+c.Request.URL.RequestURI(), c.Request.Body)
	if err != nil {
		c.String(http.StatusBadGateway, "proxy: %v", err)
		return
	}
	req.Header = c.Request.Header.Clone()

	resp, err := s.client.Do(req)
	if err != nil {
		c.String(http.StatusBadGateway, "proxy: %v", err)
		return
	}
	defer resp.Body.Close()

	for k, vs := range resp.Header {
		for _, v := range vs {
			c.Writer.Header().Add(k, v)
		}
	}
	c.Status(resp.StatusCode)
	io.Copy(c.Writer, resp.Body)
}
