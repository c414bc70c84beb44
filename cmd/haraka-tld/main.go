package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlerHTTP "github.com/ekzyis/haraka-tld/handler/http"
	"github.com/ekzyis/haraka-tld/refresh"
	"github.com/ekzyis/haraka-tld/repository"
	"github.com/ekzyis/haraka-tld/tld"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("could not load .env file, continuing with the environment: %v", err)
	}

	env := fromEnv("ENV", "dev")
	httpAddr := fromEnv("HTTP_ADDR", "127.0.0.1:8053")
	dataDir := fromEnv("DATA_DIR", "./config")
	dbFile := fromEnv("DB_FILE", "./repository/_db/db.sqlite3")
	pslURL := fromEnv("PUBLIC_SUFFIX_URL", refresh.DefaultPublicSuffixURL)
	refreshInterval := fromEnvDuration("REFRESH_INTERVAL", time.Hour*72)

	/*
		Logging
	*/
	var logger *zap.SugaredLogger
	var err error
	switch env {
	case "prod":
		gin.SetMode(gin.ReleaseMode)
		logger, err = newProductionLogger()
	default:
		logger, err = newDevelopmentLogger()
	}
	if err != nil {
		log.Fatalf("could not init logger: %v", err)
	}
	defer logger.Sync() // nolint

	/*
		Repository
	*/
	repo, err := repository.NewRepo(repository.Config{
		DBFile: dbFile,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("could not init repository: %v", err)
	}
	registerOnClose(repo)

	/*
		TLD tables
	*/
	registry := tld.NewRegistry()
	loader := refresh.NewLoader(dataDir, logger)
	downloader := refresh.NewDownloader(dataDir, map[string]string{
		refresh.FilePublicSuffix: pslURL,
	}, logger)
	source := refresh.NewService(downloader, loader)

	// Serve from the on-disk rule files right away; the background refresh
	// swaps in a new snapshot whenever an updated list lands.
	snap, err := loader.Load()
	if err != nil {
		logger.Fatalf("could not load rule files from (%v): %v", dataDir, err)
	}
	registry.Reload(snap)

	/*
		HTTP API
	*/
	h := handlerHTTP.New(handlerHTTP.Config{
		Logger:     logger,
		Registry:   registry,
		Repository: repo,
		Reloader:   source,
	})
	router := gin.New()
	router.Use(gin.Recovery())
	h.Register(router)

	srv := &http.Server{
		Addr:    httpAddr,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return refresh.Start(ctx, refresh.Config{Interval: refreshInterval}, source, registry, logger)
	})
	g.Go(func() error {
		logger.Infof("Started HTTP API on (%v)", httpAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-sig
		logger.Infof("Received signal (%v), shutting down...", s)
		cancel()
	}()

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("stopped with error: %v", err)
	}

	closeAll()
	logger.Info("Stopped gracefully.")
}
