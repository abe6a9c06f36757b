// Package server serves the bundled web front-end and a small JSON API over the resolver.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rko-cli/rko/history"
	"github.com/rko-cli/rko/inline"
	"github.com/rko-cli/rko/key"
	"github.com/rko-cli/rko/log"
	"github.com/rko-cli/rko/media"
	"github.com/rko-cli/rko/resolver"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

//go:embed web
var webFS embed.FS

// EnvPort overrides server.port, matching common hosting platforms.
const EnvPort = "PORT"

// pages maps front-end routes to embedded documents.
var pages = map[string]string{
	"/":                        "index.html",
	"/dark":                    "dark.html",
	"/share-handler":           "share-handler.html",
	"/VKrDownloader":           "index.html",
	"/VKrDownloader/dark.html": "dark.html",
}

// Options configures a Server.
type Options struct {
	// Resolver answers /api/resolve. It is required.
	Resolver resolver.Resolver
	// Interpreter builds sources and offers. Nil uses media.Default.
	Interpreter *media.Interpreter
	// History answers /api/history. Nil serves an empty list.
	History history.Store
	// Timeout bounds a single /api/resolve request, retries included.
	Timeout time.Duration
}

// Server serves the embedded front-end and the JSON API.
type Server struct {
	options Options
	static  fs.FS
	engine  *gin.Engine
}

// New returns a server with its routes registered.
func New(options Options) *Server {
	if options.History == nil {
		options.History = history.Discard{}
	}
	if options.Timeout <= 0 {
		options.Timeout = 2 * time.Minute
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		options: options,
		static:  lo.Must(fs.Sub(webFS, "web")),
		engine:  gin.New(),
	}

	s.engine.HandleMethodNotAllowed = true
	s.engine.Use(gin.Recovery(), requestLogger())

	api := s.engine.Group("/api", cors())
	api.GET("/resolve", s.handleResolve)
	api.GET("/history", s.handleHistory)
	api.OPTIONS("/resolve", preflight)
	api.OPTIONS("/history", preflight)

	for route, page := range pages {
		s.engine.GET(route, s.handlePage(page))
	}
	s.engine.NoRoute(s.handleStatic())
	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the listen address from config. The PORT environment variable wins over server.port.
func Addr() string {
	port := viper.GetInt(key.ServerPort)
	if env, ok := os.LookupEnv(EnvPort); ok {
		if p, err := strconv.Atoi(env); err == nil && p > 0 {
			port = p
		}
	}

	return net.JoinHostPort(viper.GetString(key.ServerHost), strconv.Itoa(port))
}

// ListenAndServe serves on addr until ctx is cancelled.
// The ready callback, if any, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(string)) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	log.Infof("serving on http://%s", listener.Addr())
	if ready != nil {
		ready(listener.Addr().String())
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handlePage(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := fs.ReadFile(s.static, page)
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}

		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
}

// handleStatic serves the remaining embedded assets; unknown paths are not found.
func (s *Server) handleStatic() gin.HandlerFunc {
	files := http.FileServer(http.FS(s.static))

	return func(c *gin.Context) {
		switch c.Request.URL.Path {
		case "/manifest.webmanifest":
			c.Header("Content-Type", "application/manifest+json")
		case "/sw.js":
			c.Header("Service-Worker-Allowed", "/")
		}

		files.ServeHTTP(c.Writer, c.Request)
	}
}

func (s *Server) handleResolve(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.options.Timeout)
	defer cancel()

	raw := c.Query("url")
	output, err := inline.Resolve(ctx, s.options.Resolver, s.options.Interpreter, raw)
	if err != nil {
		log.Warnf("resolve %q: %v", raw, err)
		status, message := describe(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, output)
}

func (s *Server) handleHistory(c *gin.Context) {
	attempts, err := s.options.History.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if attempts == nil {
		attempts = []history.Attempt{}
	}

	c.JSON(http.StatusOK, attempts)
}

// cors allows cross-origin GET requests.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Next()
	}
}

func preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debugf("server: %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// describe maps a resolve failure to an HTTP status and a user facing message.
func describe(err error) (int, string) {
	var netErr *resolver.NetworkError

	switch {
	case errors.Is(err, resolver.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &netErr):
		return http.StatusBadGateway, netErr.Cause()
	case errors.Is(err, resolver.ErrMalformedResponse):
		return http.StatusBadGateway, resolver.ErrMalformedResponse.Error()
	case errors.Is(err, media.ErrNoData):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, media.ErrNoOffers):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "resolver took too long"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
