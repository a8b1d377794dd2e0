package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/venue-reservation/pkg/auth"
	"github.com/Astemirdum/venue-reservation/pkg/kafka"
	"github.com/Astemirdum/venue-reservation/pkg/logger"
	"github.com/Astemirdum/venue-reservation/pkg/mailer"
	md "github.com/Astemirdum/venue-reservation/pkg/middleware"
	"github.com/Astemirdum/venue-reservation/pkg/postgres"
	"github.com/Astemirdum/venue-reservation/pkg/upload"
	"github.com/Astemirdum/venue-reservation/reservation/config"
	"github.com/Astemirdum/venue-reservation/reservation/internal/handler"
	"github.com/Astemirdum/venue-reservation/reservation/internal/notify"
	"github.com/Astemirdum/venue-reservation/reservation/internal/repository"
	"github.com/Astemirdum/venue-reservation/reservation/internal/server"
	"github.com/Astemirdum/venue-reservation/reservation/internal/service"
	"github.com/Astemirdum/venue-reservation/reservation/migrations"
)

type notifier interface {
	service.Notifier
	Wait()
}

func Run(cfg config.Config) error {
	log := logger.NewLogger(cfg.Log, "reservation")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	defer db.Close()
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo %v", err)
	}

	mail, err := mailer.New(cfg.Mail, log)
	if err != nil {
		return fmt.Errorf("mailer %v", err)
	}
	dispatcher := notify.NewDispatcher(repo, mail, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	var events notifier
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka.NewProducer %v", err)
		}
		kn := notify.NewKafkaNotifier(producer, cfg.Kafka.Topic, log)
		defer func() {
			if err := kn.Close(); err != nil {
				log.Error("producer close", zap.Error(err))
			}
		}()
		events = kn

		group, err := kafka.NewConsumer(cfg.Kafka, kafka.NotificationConsumerGroup)
		if err != nil {
			return fmt.Errorf("kafka.NewConsumer %v", err)
		}
		g.Go(func() error {
			return kafka.Consume(gctx, group, notify.NewConsumer(dispatcher.Handle, log), cfg.Kafka.Topic)
		})
	} else {
		log.Info("kafka not configured, notifications are sent in-process")
		events = notify.NewLocalNotifier(dispatcher, log)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	svc := service.NewService(repo, events, tokens, log, service.WithBcryptCost(cfg.Auth.BcryptCost))
	if cfg.Auth.AdminUser != "" {
		if err := svc.EnsureAdmin(ctx, cfg.Auth.AdminUser, cfg.Auth.AdminPassword); err != nil {
			return fmt.Errorf("ensure admin %v", err)
		}
	}

	uploads, err := upload.NewStore(cfg.Upload)
	if err != nil {
		return err
	}

	var loginStore middleware.RateLimiterStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping %v", err)
		}
		loginStore = md.NewRedisLimiterStore(rdb, cfg.Redis.LoginLimit, cfg.Redis.LoginWindow, log)
	} else {
		loginStore = md.NewMemoryLimiterStore(cfg.Redis.LoginLimit, cfg.Redis.LoginWindow)
	}

	h := handler.New(svc, tokens, uploads, loginStore, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		log.Debug("Graceful shutdown", zap.NamedError("cause", context.Cause(gctx)))

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	err = g.Wait()
	events.Wait()
	log.Info("Graceful shutdown finished")
	return err
}
