// cwms is the command-line companion to the CWMS Data API client.
//
// # Usage
//
//	cwms store-file [flags] <input-file>... [output-id]
//	cwms watch -config <path>
//	cwms -version
//
// store-file uploads one or more local files as blobs. When a single input
// file is given, the trailing argument may name the blob id; otherwise ids
// are derived from the file names. Connection settings come from flags with
// environment fallbacks (CDA_API_ROOT, CDA_API_KEY, CDA_OFFICE and their
// legacy spellings), and a .env file in the working directory is loaded if
// present.
//
// watch runs a long-lived pipeline that watches directories for newly
// dropped files and uploads each one as a blob once it stops changing. An
// upload journal prevents re-sending files across restarts, and an HTTP
// server exposes /healthz, /readyz, and /metrics.
//
// # Signal Handling
//
//	SIGINT/SIGTERM → Cancel context → Watchers and workers stop → Flush journal → Exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/HydrologicEngineeringCenter/cwms-go/api"
	"github.com/HydrologicEngineeringCenter/cwms-go/internal/config"
	"github.com/HydrologicEngineeringCenter/cwms-go/internal/obs"
	"github.com/HydrologicEngineeringCenter/cwms-go/internal/uploader"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("cwms %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	// A .env in the working directory supplies connection settings for
	// interactive use. Absence is not an error.
	_ = godotenv.Load()

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "store-file":
		err = runStoreFile(flag.Args()[1:])
	case "watch":
		err = runWatch(flag.Args()[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(1)
	}
	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  cwms store-file [flags] <input-file>... [output-id]
  cwms watch -config <path>
  cwms -version

Use 'cwms <command> -h' for more information on a command.
`)
}

// newLogger builds the process-wide JSON logger at the given level.
func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// runStoreFile uploads the named files as blobs.
func runStoreFile(args []string) error {
	fs := flag.NewFlagSet("store-file", flag.ExitOnError)
	description := fs.String("description", "", "Optional description of the file")
	mediaType := fs.String("media-type", "", "Optional media type of the file")
	officeID := fs.String("office-id", config.EnvOr("OFFICE", "OFFICE_ID", "CDA_OFFICE"), "Office ID")
	apiRoot := fs.String("api-root", config.EnvOr("APIROOT", "API_ROOT", "CDA_HOST", "CDA_API_ROOT"), "API root URL")
	apiKey := fs.String("api-key", config.EnvOr("APIKEY", "API_KEY", "CDA_API_KEY"), "API key")
	logLevel := fs.String("log-level", config.EnvOr("LOG_LEVEL"), "Log output level (debug, info, warn, error)")
	concurrency := fs.Int("concurrency", 4, "Maximum simultaneous uploads")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := newLogger(*logLevel)

	paths := fs.Args()
	if len(paths) == 0 {
		return errors.New("an input file is required")
	}
	if *apiRoot == "" {
		return errors.New("API root is required. Set the CDA_API_ROOT environment variable or use -api-root")
	}
	if *apiKey == "" {
		return errors.New("API key is required. Set the CDA_API_KEY environment variable or use -api-key")
	}
	if *officeID == "" {
		return errors.New("office ID is required. Set the CDA_OFFICE environment variable or use -office-id")
	}

	// A trailing argument that is not a file names the blob id for a
	// single-file upload.
	var blobID string
	if len(paths) == 2 {
		if _, err := os.Stat(paths[1]); err != nil {
			blobID = paths[1]
			paths = paths[:1]
		}
	}
	for _, path := range paths {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return fmt.Errorf("input file is not a valid file path: %s", path)
		}
	}
	if blobID != "" && len(paths) > 1 {
		return errors.New("an explicit output id is only valid for a single input file")
	}

	session, err := api.NewSession(
		api.WithAPIRoot(*apiRoot),
		api.WithAPIKey(*apiKey),
		api.WithOffice(*officeID),
		api.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	up := uploader.New(session, *officeID, logger, nil)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return up.UploadFile(gCtx, uploader.Request{
				Path:        path,
				BlobID:      blobID,
				Description: *description,
				MediaType:   *mediaType,
			})
		})
	}
	return g.Wait()
}

// runWatch runs the directory-watch upload pipeline until interrupted.
func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", "cwms.yaml", "Path to configuration YAML file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading configuration from %s: %w", *configPath, err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("starting cwms watch",
		"version", version,
		"commit", commit,
		"build_date", buildDate,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := []api.Option{
		api.WithAPIRoot(cfg.APIRoot),
		api.WithAPIKey(cfg.APIKey),
		api.WithOffice(cfg.Office),
		api.WithTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second),
		api.WithLogger(logger),
	}
	if cfg.RateLimitRPS > 0 {
		opts = append(opts, api.WithRateLimit(cfg.RateLimitRPS))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, api.WithRetry(uint64(cfg.MaxRetries)))
	}
	session, err := api.NewSession(opts...)
	if err != nil {
		return err
	}

	journal, err := uploader.OpenJournal(cfg.Watch.JournalPath)
	if err != nil {
		return fmt.Errorf("opening upload journal: %w", err)
	}
	defer func() { _ = journal.Close() }()

	obsSrv := obs.NewServer(cfg.Observability.Addr, logger)
	defer obsSrv.SetReady(false)

	up := uploader.New(session, cfg.Office, logger, journal)
	watcher := uploader.NewWatcher(cfg.Watch.Dirs, cfg.Watch.SettleDelay.Duration, logger)
	paths := make(chan string, 64)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return obsSrv.Start(gCtx)
	})

	g.Go(func() error {
		return watcher.Run(gCtx, paths)
	})

	for i := 0; i < cfg.Watch.Concurrency; i++ {
		g.Go(func() error {
			for {
				select {
				case <-gCtx.Done():
					return gCtx.Err()
				case path := <-paths:
					req := uploader.Request{Path: path}
					if cfg.Watch.IDPrefix != "" {
						req.BlobID = cfg.Watch.IDPrefix + uploader.BlobIDForPath(path)
					}
					if err := up.UploadFile(gCtx, req); err != nil {
						logger.Error("upload failed", "path", path, "error", err)
					}
				}
			}
		})
	}

	// Periodic journal flush so progress survives a crash.
	g.Go(func() error {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case <-ticker.C:
				if err := journal.Flush(); err != nil {
					logger.Error("journal flush failed", "error", err)
				}
			}
		}
	})

	obsSrv.SetReady(true)
	logger.Info("watch pipeline is ready",
		"dirs", cfg.Watch.Dirs,
		"observability_addr", cfg.Observability.Addr,
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("performing final journal flush")
	if err := journal.Flush(); err != nil {
		logger.Error("final journal flush failed", "error", err)
	}
	logger.Info("cwms watch shutdown complete")
	return nil
}
