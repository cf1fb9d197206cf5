// Command skyrouted serves the flight-route optimization API.
//
// Usage:
//
//	skyrouted [-config skyroute.yaml] [-listen :5000] [-db facts.db] [-static ./frontend]
//
// Flags override the configuration file, which overrides built-in defaults.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/skyroute/config"
	"github.com/katalvlaran/skyroute/ctxlog"
)

var version = "dev"

// shutdownTimeout bounds graceful shutdown after a signal.
const shutdownTimeout = 10 * time.Second

// options holds the command-line flags. Empty values leave the
// configuration untouched.
type options struct {
	configPath  string
	listen      string
	logLevel    string
	logFormat   string
	dbPath      string
	staticDir   string
	datasetPath string
	showVersion bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// parseFlags parses args into options.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("skyrouted", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.listen, "listen", "", "Listen address (default :5000)")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&o.logFormat, "log-format", "", "Log format: text or json")
	fs.StringVar(&o.dbPath, "db", "", "Knowledge store database path (enables source=metta)")
	fs.StringVar(&o.staticDir, "static", "", "Directory of frontend files served at /")
	fs.StringVar(&o.datasetPath, "dataset", "", "Flight dataset YAML (default: built-in sample)")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return o, nil
}

// loadConfig applies the flag layer on top of the configuration file.
func loadConfig(o options) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	for _, f := range []struct {
		val string
		dst *string
	}{
		{o.listen, &cfg.Listen},
		{o.logLevel, &cfg.LogLevel},
		{o.logFormat, &cfg.LogFormat},
		{o.dbPath, &cfg.Knowledge.DBPath},
		{o.staticDir, &cfg.StaticDir},
		{o.datasetPath, &cfg.DatasetPath},
	} {
		if f.val != "" {
			*f.dst = f.val
		}
	}
	return cfg, cfg.Validate()
}

// run returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	if o.showVersion {
		fmt.Fprintf(stdout, "skyrouted %s\n", version)
		return 0
	}

	cfg, err := loadConfig(o)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := build(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "err", err)
		return 1
	}
	defer a.Close()

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		logger.Error("listen failed", "addr", cfg.Listen, "err", err)
		return 1
	}
	if err := serve(ctx, ln, a.handler, logger); err != nil {
		logger.Error("server stopped", "err", err)
		return 1
	}
	return 0
}

// serve runs the HTTP server on ln until ctx ends, then shuts it down
// gracefully.
func serve(ctx context.Context, ln net.Listener, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", ln.Addr().String(), "version", version)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}
