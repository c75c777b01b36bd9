package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lottoops/unclaimed-tracker/backend/internal/config"
	"github.com/lottoops/unclaimed-tracker/backend/internal/digest"
	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/feed"
	"github.com/lottoops/unclaimed-tracker/backend/internal/handler"
	"github.com/lottoops/unclaimed-tracker/backend/internal/mailer"
	"github.com/lottoops/unclaimed-tracker/backend/internal/pending"
	"github.com/lottoops/unclaimed-tracker/backend/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	// a missing .env is fine, the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Error("cannot read .env", "error", err)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load configuration", "error", err)
		return
	}

	loc, err := time.LoadLocation(cfg.Feed.Location)
	if err != nil {
		logger.Error("unknown FEED_LOCATION", "location", cfg.Feed.Location, "error", err)
		return
	}

	/**********************************************
	 * database
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("cannot create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect, ping once to fail fast
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("cannot connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	if err := repo.Migrate(ctx); err != nil {
		logger.Error("cannot migrate database", "error", err)
		return
	}

	/**********************************************
	 * initial administrator
	 **********************************************/
	if err := ensureInitialAdmin(ctx, cfg, repo); err != nil {
		logger.Error("cannot create initial administrator", "error", err)
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("cannot connect to rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("cannot open channel", "error", err)
		return
	}
	defer ch.Close()

	if err := mailer.DeclareQueue(ch); err != nil {
		logger.Error("cannot declare mail queue", "error", err)
		return
	}
	publisher := mailer.NewPublisher(ch, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)

	/**********************************************
	 * redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:    cfg.Redis.Password,
		DB:          0,
		DialTimeout: time.Duration(cfg.Redis.ConnectTimeout) * time.Second,
	})
	defer rdb.Close()

	/**********************************************
	 * pending aggregator
	 **********************************************/
	feedClient := feed.NewClient(time.Duration(cfg.Feed.Timeout) * time.Second)
	aggregator := pending.New(pending.Config{
		Endpoints: cfg.Feed.Endpoints,
		Location:  loc,
	}, repo, feedClient, logger)
	logger.Info("pending feeds configured", "count", len(aggregator.Endpoints()))

	/**********************************************
	 * handler
	 **********************************************/
	h, err := handler.NewHandler(cfg, repo, publisher, rdb, aggregator)
	if err != nil {
		logger.Error("cannot create handler", "error", err)
		return
	}
	h.RegisterRoutes()

	/**********************************************
	 * overdue digest
	 **********************************************/
	c := cron.New(cron.WithLocation(loc))
	if cfg.Digest.Enabled {
		job := digest.New(cfg.Digest.Size, time.Duration(cfg.Server.WriteTimeout)*time.Second, aggregator, repo, publisher, logger)
		if _, err := job.Schedule(c, cfg.Digest.Schedule); err != nil {
			logger.Error("cannot schedule overdue digest", "schedule", cfg.Digest.Schedule, "error", err)
			return
		}
		c.Start()
		logger.Info("overdue digest scheduled", "schedule", cfg.Digest.Schedule)
	}

	/**********************************************
	 * http server
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      h.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", slog.String("error", err.Error()))
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("shutting down")

	// waits for a digest that is already running
	<-c.Stop().Done()

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}

func ensureInitialAdmin(ctx context.Context, cfg *config.Config, repo *repository.Repository) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:     cfg.InitialAdmin.Username,
		PasswordHash: string(passwordHash),
		FullName:     cfg.InitialAdmin.FullName,
		Email:        cfg.InitialAdmin.Email,
		Role:         domain.RoleAdmin,
		Status:       domain.UserStatusActive,
	}
	if err := repo.CreateUser(ctx, admin); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "users_username_key" {
			// already there from an earlier start
			return nil
		}
		return err
	}

	return nil
}
