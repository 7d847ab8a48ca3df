package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/avstrong/pricelist/internal/config"
	"github.com/avstrong/pricelist/internal/idgen/simple"
	"github.com/avstrong/pricelist/internal/logger"
	"github.com/avstrong/pricelist/internal/migration"
	"github.com/avstrong/pricelist/internal/pricing"
	"github.com/avstrong/pricelist/internal/quote"
	"github.com/avstrong/pricelist/internal/sink/file"
	"github.com/avstrong/pricelist/internal/storage/memory"
	"github.com/avstrong/pricelist/internal/transport/web"
	"github.com/gin-gonic/gin"
)

func Run(conf config.Config, l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	storage := memory.New(memory.Config{L: l})
	idGen := simple.New()

	seed := migration.Demo()

	if conf.SeedFile != "" {
		var err error

		if seed, err = migration.LoadSeed(conf.SeedFile); err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
	}

	if err := migration.Up(ctx, l, storage, idGen, seed); err != nil {
		return fmt.Errorf("up seed migration: %w", err)
	}

	l.LogInfo("Seed migration has been applied")

	sink, err := file.New(file.Config{L: l, Dir: conf.ExportDir})
	if err != nil {
		return fmt.Errorf("init export sink: %w", err)
	}

	pricingManager := pricing.New(l, storage, idGen, quote.New(), pricing.WithSink(sink))

	if conf.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      l.StdLog(),
		Host:              conf.HTTPHost,
		Port:              conf.HTTPPort,
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		LivenessEndpoint:  conf.LivenessEndpoint,
		AllowedOrigins:    conf.AllowedOrigins,
	}

	srv, err := web.New(ctx, webConf, pricingManager)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*4) //nolint:gomnd
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	l.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		l.LogErrorf("Failed to run http server: %v", err.Error())

		cancel()
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
