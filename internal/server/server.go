package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codebypatrickleung/azure-playground/internal/provider"
)

//go:embed templates/*.html
var templates embed.FS

const shutdownTimeout = 10 * time.Second

// Completer produces the reply for one submitted message.
type Completer interface {
	Complete(ctx context.Context, text string) provider.Result
}

type Server struct {
	addr      string
	engine    *gin.Engine
	completer Completer
}

// page is the data rendered into index.html. An empty Response renders no
// reply block.
type page struct {
	Response string
}

func New(addr string, c Completer) *Server {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.html")))

	srv := &Server{addr: addr, engine: r, completer: c}
	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.index)
	s.engine.POST("/", s.submit)
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("listening", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", page{})
}

func (s *Server) submit(c *gin.Context) {
	message := c.PostForm("message")
	if message == "" {
		c.HTML(http.StatusOK, "index.html", page{})
		return
	}

	// The upstream call runs to completion even if the browser goes away.
	ctx := context.WithoutCancel(c.Request.Context())
	res := s.completer.Complete(ctx, message)
	if !res.IsOK() {
		slog.Warn("completion failed", "error", res.Err())
	}
	c.HTML(http.StatusOK, "index.html", page{Response: render(res)})
}

// render turns a completion result into the text shown on the page.
func render(res provider.Result) string {
	if err := res.Err(); err != nil {
		return "Error: " + err.Error()
	}
	return res.Text()
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
