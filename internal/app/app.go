package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	servernet "voidwake/mobs/internal/net"
	"voidwake/mobs/internal/observability"
	"voidwake/mobs/logging"
	loggingSinks "voidwake/mobs/logging/sinks"
	"voidwake/mobs/mobdef"
)

type Config struct {
	Logger        *log.Logger
	ClientDir     string
	Observability observability.Config
}

// Run wires the registry, logging router and HTTP surface together and
// serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	logConfig := logging.DefaultConfig()
	if raw := os.Getenv("MOBS_LOG_SINKS"); raw != "" {
		var enabled []string
		for _, name := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				enabled = append(enabled, trimmed)
			}
		}
		logConfig.EnabledSinks = enabled
	}

	var namedSinks []logging.NamedSink
	for _, name := range logConfig.EnabledSinks {
		switch name {
		case "console":
			namedSinks = append(namedSinks, logging.NamedSink{
				Name: name,
				Sink: loggingSinks.NewConsoleSink(os.Stdout, logConfig.Console),
			})
		case "json":
			path := logConfig.JSON.FilePath
			file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				logger.Printf("skipping json sink, cannot open %s: %v", path, err)
				continue
			}
			namedSinks = append(namedSinks, logging.NamedSink{
				Name: name,
				Sink: loggingSinks.NewJSON(file, logConfig.JSON.FlushInterval),
			})
		default:
			logger.Printf("unknown log sink %q", name)
		}
	}

	router, err := logging.NewRouter(nil, logConfig, namedSinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if cerr := router.Close(closeCtx); cerr != nil {
			logger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	registry := mobdef.NewRegistry(mobdef.Config{
		ExtendedDir: os.Getenv("MOBS_EXTENDED_DIR"),
		Log:         router,
	})
	if err := registry.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load mob definitions: %w", err)
	}

	observabilityCfg := cfg.Observability
	if raw := os.Getenv("ENABLE_PPROF_TRACE"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			observabilityCfg.EnablePprofTrace = value
		} else {
			logger.Printf("invalid ENABLE_PPROF_TRACE=%q: %v", raw, err)
		}
	}

	handler := servernet.NewHTTPHandler(registry, servernet.HTTPHandlerConfig{
		ClientDir:     cfg.ClientDir,
		Logger:        logger,
		Publisher:     router,
		Observability: observabilityCfg,
	})

	addr := os.Getenv("MOBS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{Addr: addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
