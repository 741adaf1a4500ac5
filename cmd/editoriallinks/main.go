package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Shiningstar2501/editoriallinks/internal/adapter/editorial"
	"github.com/Shiningstar2501/editoriallinks/internal/adapter/gdocs"
	httpAdapter "github.com/Shiningstar2501/editoriallinks/internal/adapter/http"
	"github.com/Shiningstar2501/editoriallinks/internal/adapter/pdfscan"
	"github.com/Shiningstar2501/editoriallinks/internal/adapter/xlsx"
	"github.com/Shiningstar2501/editoriallinks/internal/config"
	"github.com/Shiningstar2501/editoriallinks/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", "err", err)
	}

	log.Info("starting editoriallinks", "port", cfg.Port)
	log.Info("scan settings", "marker", cfg.Marker, "text_link_filter", cfg.TextLinkFilter, "verify_remote", cfg.VerifyRemote)

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	fetcher := gdocs.New(client)
	scanner := pdfscan.New(cfg.Marker, cfg.TextLinkFilter)

	var checker domain.UsageChecker
	if cfg.VerifyRemote {
		checker = editorial.New(client, cfg.Marker)
	}

	collector := domain.NewCollector(fetcher, scanner, checker)
	source := xlsx.New()

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := httpAdapter.NewServer(collector, source, addr, cfg.MaxUploadBytes, cfg.MaxRows)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "err", err)
		}
	}()

	sig := <-sigCh
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "err", err)
	}

	log.Info("shutdown complete")
}
