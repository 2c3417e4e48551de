package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/always-cache/restguard"
	"github.com/always-cache/restguard/audit"
	"github.com/always-cache/restguard/config"
	"github.com/always-cache/restguard/pkg/admin"
	"github.com/always-cache/restguard/pkg/loglevel"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	// CLI flags
	configFilenameFlag string
	portFlag           int
	originFlag         string
	addrFlag           string
	hostFlag           string
	restPrefixFlag     string
	debugFlag          bool
	logTagFlag         string
	noCacheFlag        bool
	auditDBFlag        string
	adminAddrFlag      string
	logLevelFlag       string
	verbosityTraceFlag bool
	logFilenameFlag    string

	// this is set by goreleaser
	version string
)

func init() {
	flag.StringVar(&configFilenameFlag, "config", "", "YAML config file")
	flag.StringVar(&originFlag, "origin", "", "Origin URL to proxy to (overrides addr and host)")
	flag.StringVar(&addrFlag, "addr", "", "Origin IP address to proxy to")
	flag.StringVar(&hostFlag, "host", "", "Hostname of origin")
	flag.IntVar(&portFlag, "port", 8080, "Port to listen on")
	flag.StringVar(&restPrefixFlag, "rest-prefix", "", "URL prefix of the REST API (default \"wp-json\")")
	flag.BoolVar(&debugFlag, "debug", false, "Log blocked method override attempts")
	flag.StringVar(&logTagFlag, "log-tag", "", "Tag of the blocked attempt log line (default \""+restguard.DefaultLogTag+"\")")
	flag.BoolVar(&noCacheFlag, "no-cache", true, "Send no-cache headers on all API responses")
	flag.StringVar(&auditDBFlag, "audit-db", "", "Attempt DB file name (use 'memory' for in-memory db)")
	flag.StringVar(&adminAddrFlag, "admin-addr", "", "Admin API listen address, e.g. 127.0.0.1:9090")
	flag.StringVar(&logLevelFlag, "log-level", loglevel.Default, "Log level: "+loglevel.Hint())
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
	flag.StringVar(&logFilenameFlag, "log-file", "", "Log file to use (in addition to stdout)")

	if version == "" {
		version = "DEV"
	}
}

// applyFlags overrides the config with the flags given on the command line.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = portFlag
		case "origin":
			cfg.Origin = originFlag
		case "addr":
			cfg.Addr = addrFlag
		case "host":
			cfg.Host = hostFlag
		case "rest-prefix":
			cfg.RESTPrefix = restPrefixFlag
		case "debug":
			cfg.Debug = debugFlag
		case "log-tag":
			cfg.LogTag = logTagFlag
		case "no-cache":
			cfg.ForceNoCache = &noCacheFlag
		case "audit-db":
			cfg.AuditDB = auditDBFlag
		case "admin-addr":
			cfg.AdminAddr = adminAddrFlag
		case "log-level":
			cfg.LogLevel = logLevelFlag
		case "log-file":
			cfg.LogFile = logFilenameFlag
		}
	})
	if verbosityTraceFlag {
		cfg.LogLevel = loglevel.Trace
	}
}

func main() {
	flag.Parse()

	cfg, err := config.Load(configFilenameFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load config")
	}
	applyFlags(&cfg)

	// set log level
	logLevel, err := loglevel.Parse(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid log level")
	}

	// set up log output to stdout
	// also output to logfile if specified
	logOutputs := make([]io.Writer, 0)
	logOutputs = append(logOutputs, zerolog.ConsoleWriter{Out: os.Stdout})
	if cfg.LogFile != "" {
		if logFileOutput, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			log.Fatal().Err(err).Msg("Cannot open log file")
		} else {
			defer logFileOutput.Close()
			logOutputs = append(logOutputs, logFileOutput)
		}
	}
	multiWriter := zerolog.MultiLevelWriter(logOutputs...)
	log.Logger = log.Level(logLevel).Output(multiWriter).
		With().Timestamp().Str("version", version).Logger()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	originURL, originHost, err := cfg.OriginURL()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not parse origin")
	}

	if err := run(cfg, *originURL, originHost); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
	log.Info().Msg("Shut down")
}

// run opens the attempt store and serves the proxy (and the admin API if
// configured) until SIGINT or SIGTERM.
func run(cfg config.Config, originURL url.URL, originHost string) error {
	guardConfig := restguard.Config{
		OriginURL:             originURL,
		OriginHost:            originHost,
		RESTPrefix:            cfg.RESTPrefix,
		Namespaces:            cfg.Namespaces,
		Debug:                 cfg.Debug,
		LogTag:                cfg.LogTag,
		DisableNoCacheHeaders: !cfg.NoCacheHeaders(),
		Logger:                &log.Logger,
	}

	// attempt store, shared with the admin API
	var store audit.Store
	if cfg.AuditDB != "" {
		sqliteStore, err := audit.NewSQLiteStore(cfg.AuditDB)
		if err != nil {
			return fmt.Errorf("open attempt database: %w", err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
		guardConfig.Audit = store
	}

	guard := restguard.CreateGuard(guardConfig)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	servers := []*http.Server{
		{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: guard},
	}
	if cfg.AdminAddr != "" {
		servers = append(servers, &http.Server{Addr: cfg.AdminAddr, Handler: admin.NewRouter(store, log.Logger)})
	}

	log.Info().Msgf("Proxying port %v to %s (with hostname '%s')", cfg.Port, originURL.String(), originHost)
	if cfg.AdminAddr != "" {
		log.Info().Msgf("Admin API listening on %s", cfg.AdminAddr)
	}

	return serve(ctx, servers)
}

// serve runs the servers until ctx is done or one of them fails, then shuts
// all of them down.
func serve(ctx context.Context, servers []*http.Server) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Str("addr", srv.Addr).Msg("Graceful shutdown failed")
			}
		}
		return nil
	})
	return g.Wait()
}
