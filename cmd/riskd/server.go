package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/payday-community/riskengine/risk/engine"
	"github.com/payday-community/riskengine/risk/moderation"
	"github.com/payday-community/riskengine/risk/queue"
	"github.com/payday-community/riskengine/risk/wordlist"
	"github.com/payday-community/riskengine/store"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Server struct {
	logger    *slog.Logger
	db        *gorm.DB
	engine    *engine.Engine
	queue     queue.Queue
	words     *wordlist.CachedSource
	content   *store.ContentStore
	wordStore *store.WordStore
	workers   int
	echo      *echo.Echo
}

type Config struct {
	Logger            *slog.Logger
	DatabaseURL       string
	MaxDBConnections  int
	RedisURL          string
	ModerationHost    string
	ModerationAPIKey  string
	ModerationBizType string
	ModerationQPS     int
	ImageConcurrency  int
	RemoteTimeout     time.Duration
	Workers           int
	WordCacheTTL      time.Duration
}

func NewServer(config Config) (*Server, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	db, err := store.SetupDatabase(config.DatabaseURL, config.MaxDBConnections)
	if err != nil {
		return nil, err
	}

	contentStore := store.NewContentStore(db)
	wordStore := store.NewWordStore(db)
	notifStore := store.NewNotificationStore(db)

	var taskQueue queue.Queue
	if config.RedisURL != "" {
		rq, err := queue.NewRedisQueue(config.RedisURL)
		if err != nil {
			return nil, err
		}
		taskQueue = rq
		logger.Info("using redis task queue")
	} else {
		taskQueue = queue.NewMemQueue(0)
		logger.Info("redis not configured, using in-process task queue")
	}

	ttl := config.WordCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	words, err := wordlist.NewCachedSource(wordStore, config.RedisURL, ttl)
	if err != nil {
		return nil, err
	}

	var mod *moderation.Client
	if config.ModerationHost != "" && config.ModerationAPIKey != "" {
		logger.Info("configuring remote moderation client", "host", config.ModerationHost)
		mod = moderation.NewClient(config.ModerationHost, config.ModerationAPIKey, config.ModerationBizType, config.ModerationQPS)
	} else {
		logger.Warn("remote moderation not configured, running local-only evaluation")
	}

	workers := config.Workers
	if workers <= 0 {
		workers = 8
	}

	eng := &engine.Engine{
		Logger:           logger,
		Content:          contentStore,
		Words:            words,
		Moderation:       mod,
		Notifier:         notifStore,
		ImageConcurrency: config.ImageConcurrency,
		RemoteTimeout:    config.RemoteTimeout,
	}

	s := &Server{
		logger:    logger,
		db:        db,
		engine:    eng,
		queue:     taskQueue,
		words:     words,
		content:   contentStore,
		wordStore: wordStore,
		workers:   workers,
	}
	s.echo = s.buildAdminAPI()

	return s, nil
}

// Run consumes the task queue with a pool of evaluation workers until the
// context is canceled.
func (s *Server) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.workers; i++ {
		eg.Go(func() error {
			return s.runWorker(ctx)
		})
	}
	return eg.Wait()
}

func (s *Server) runWorker(ctx context.Context) error {
	for {
		task, err := s.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// queue hiccup; back off briefly rather than spinning
			s.logger.Error("dequeue failed", "err", err)
			time.Sleep(time.Second)
			continue
		}
		tasksDequeuedCount.Inc()
		tctx, span := tracer.Start(ctx, "processRiskTask")
		err = s.engine.ProcessTask(tctx, *task)
		span.End()
		if err != nil {
			// persistence failure; the task is droppable because any
			// re-enqueue recomputes the same verdict
			s.logger.Error("risk-check task failed", "err", err, "kind", task.Kind, "contentId", task.ContentID)
		}
	}
}

func (s *Server) RunMetrics(listen string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(listen, nil)
}

func (s *Server) RunAdminAPI(listen string) error {
	err := s.echo.Start(listen)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
