// Package portal serves the Nexus landing page: the tool catalog as cards and
// a feedback form that writes into the feedback workbook.
package portal

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/phronesis/nexus-go/internal/catalog"
	"github.com/phronesis/nexus-go/pkg/nexus/models"
)

const shutdownTimeout = 5 * time.Second

// Submitter persists one feedback entry into a sheet of a workbook.
// *nexus.Store satisfies it.
type Submitter interface {
	Submit(ctx context.Context, path, sheetName string, entry models.FeedbackEntry) error
}

// Config holds page content and the workbook feedback is written to.
type Config struct {
	Title        string
	Quote        string
	QuoteAuthor  string
	Footer       string
	LogoPath     string
	IconsDir     string
	Columns      int
	WorkbookPath string
}

// Server renders the portal and accepts feedback submissions.
type Server struct {
	cfg     Config
	catalog *catalog.Catalog
	store   Submitter
	logger  *slog.Logger
	tmpl    *template.Template
	logo    template.URL
	columns [][]card
	now     func() time.Time
}

// New prepares a portal for the given catalog. Cards and the logo are
// rendered once here since the catalog does not change while serving.
func New(cfg Config, cat *catalog.Catalog, store Submitter, logger *slog.Logger) (*Server, error) {
	if cat == nil {
		return nil, errors.New("portal: catalog is required")
	}
	if store == nil {
		return nil, errors.New("portal: store is required")
	}
	if cfg.WorkbookPath == "" {
		return nil, errors.New("portal: workbook path is required")
	}
	if cfg.Columns < 1 {
		cfg.Columns = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		catalog: cat,
		store:   store,
		logger:  logger.With("component", "portal"),
		tmpl:    tmpl,
		now:     time.Now,
	}
	s.logo = s.loadLogo()

	cards := make([]card, 0, len(cat.Tools))
	for _, t := range cat.Tools {
		cards = append(cards, s.newCard(t))
	}
	s.columns = splitColumns(cards, cfg.Columns)

	return s, nil
}

// Handler returns the portal routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /feedback", s.handleFeedback)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	static, err := fs.Sub(staticFS, "static")
	if err == nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	}
	if s.cfg.IconsDir != "" {
		mux.Handle("GET /icons/", http.StripPrefix("/icons/", http.FileServer(http.Dir(s.cfg.IconsDir))))
	}
	return mux
}

// Run listens on addr and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
	case serveErr = <-errCh:
		s.logger.Error("server error", "error", serveErr)
	}

	// ctx is already done here, so shutdown gets its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}
	return serveErr
}
