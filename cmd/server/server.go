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

	"skillfactory/todo/pkg/api"
	"skillfactory/todo/pkg/config"
	"skillfactory/todo/pkg/logger"
	"skillfactory/todo/pkg/service"
	"skillfactory/todo/pkg/storage"
	"skillfactory/todo/pkg/storage/memdb"
	"skillfactory/todo/pkg/storage/mysql"
	"skillfactory/todo/pkg/storage/postgres"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Сервер приложения.
type server struct {
	db  storage.Interface
	api *api.API
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// логгер ещё не настроен
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(os.Stdout, "todo", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv server

	db, err := openStorage(ctx, cfg)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.Driver).Fatal("failed to connect to database")
	}
	srv.db = db
	defer srv.db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	srv.api = api.New(service.NewTaskService(srv.db), log, reg)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":   cfg.HTTPAddr,
			"driver": cfg.Driver,
		}).Info("server starting")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("server stopped with error")
		return
	}
	log.Info("server stopped")
}

// openStorage выбирает хранилище по схеме DATABASE_URL.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Interface, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var db storage.Interface
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = postgres.New(connectCtx, dsn)
	case config.DriverMySQL:
		db, err = mysql.New(connectCtx, dsn)
	case config.DriverMemory:
		db = memdb.New()
	default:
		err = fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return db, nil
}
