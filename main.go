package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"github.com/dtrivino/portfolio/internal/content"
	"github.com/dtrivino/portfolio/internal/store"
	"github.com/dtrivino/portfolio/internal/typed"
)

// Set by ldflags during build.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagSet := pflag.NewFlagSet("portfolio", pflag.ContinueOnError)
	configPath := flagSet.String("config", "", "optional YAML config file")
	showVersion := flagSet.Bool("version", false, "print version information")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Printf("portfolio %s\n", version)
		return nil
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	s, err := newSite(cfg, st, newSMTPMailer(cfg), logger)
	if err != nil {
		return err
	}
	if len(s.phrases) == 0 {
		logger.Warn("no typed phrases configured, hero animation disabled")
	}

	// Privacy cleanup of old visitor data.
	go s.cleanupOldVisits(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// No WriteTimeout: /hero/typed is a long-lived stream.
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "db", cfg.DBPath, "mode", gin.Mode())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// site holds the dependencies shared by the handlers.
type site struct {
	cfg     appConfig
	store   *store.Store
	mailer  Mailer
	logger  *slog.Logger
	admin   *adminAuth
	phrases []string
	timing  typed.Timing
	now     func() time.Time
	// background runs work that must not hold up the response.
	background func(func())
}

func newSite(cfg appConfig, st *store.Store, mailer Mailer, logger *slog.Logger) (*site, error) {
	user, pass := cfg.adminCredentials(logger)
	admin, err := newAdminAuth(user, pass)
	if err != nil {
		return nil, err
	}
	if gin.Mode() == gin.DebugMode {
		logger.Debug("admin token (dev only)", "token", admin.token)
	}
	return &site{
		cfg:        cfg,
		store:      st,
		mailer:     mailer,
		logger:     logger,
		admin:      admin,
		phrases:    cfg.Phrases(),
		timing:     typed.DefaultTiming,
		now:        time.Now,
		background: func(f func()) { go f() },
	}, nil
}

func (s *site) router() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(s.logger), gin.Recovery())
	r.LoadHTMLGlob("templates/*")

	r.Static("/static", "./static")
	r.Use(s.visitorTrackingMiddleware())

	r.GET("/", s.handleIndex)
	r.GET("/projects", s.handleProjects)
	r.GET("/hero/typed", s.handleTyped)

	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact Me"})
	})
	r.POST("/contact", s.handleContact)

	s.setupAdminRoutes(r)
	return r
}

func (s *site) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"aboutMe":     content.AboutMe,
		"heroEnabled": len(s.phrases) > 0,
		"projects":    content.Projects,
		"categories":  content.Categories(content.Projects),
		"filter":      content.FilterAll,
	})
}

// requestLogger logs one line per request once it has been served.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
