package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lottoops/unclaimed-tracker/backend/internal/config"
	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/repository"
	"github.com/lottoops/unclaimed-tracker/backend/internal/seed"
	"github.com/lottoops/unclaimed-tracker/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var maxAge int
	var file string
	var emailDomain string

	flag.IntVar(&op, "op", 0, "operation (1: random users, 2: random unclaimed records, 3: import unclaimed records from CSV)")
	flag.IntVar(&n, "n", 5, "number of rows to insert")
	flag.IntVar(&maxAge, "max-age", 30, "oldest draw date of random records, in days")
	flag.StringVar(&file, "file", "", "CSV file for -op 3")
	flag.StringVar(&emailDomain, "email-domain", "example.ph", "mail domain of random users")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Error("cannot read .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Feed.Location)
	if err != nil {
		logger.Error("unknown FEED_LOCATION", "location", cfg.Feed.Location, "error", err)
		os.Exit(1)
	}

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

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("cannot connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	if err := repo.Migrate(ctx); err != nil {
		logger.Error("cannot migrate database", "error", err)
		return
	}

	// inserts below run one query at a time, each with its own timeout
	ctx = context.Background()

	switch op {
	case 0:
		slog.Error("no operation given, see -h")
	case 1:
		if n <= 0 {
			slog.Error("-n must be positive")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, emailDomain)
			if err != nil {
				slog.Error("cannot generate user", slog.String("error", err.Error()))
				continue
			}
			if err := repo.CreateUser(ctx, user); err != nil {
				slog.Error("cannot insert user", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("users inserted", slog.Int("count", cnt))
	case 2:
		if n <= 0 || maxAge <= 0 {
			slog.Error("-n and -max-age must be positive")
			return
		}

		collectors, err := repo.GetActiveUsersByRoles(ctx, []domain.Role{domain.RoleCollector})
		if err != nil {
			slog.Error("cannot list collectors", slog.String("error", err.Error()))
			return
		}
		names := make([]string, 0, len(collectors))
		for _, c := range collectors {
			names = append(names, c.FullName)
		}

		areas, err := repo.GetAllAreas(ctx)
		if err != nil {
			slog.Error("cannot list areas", slog.String("error", err.Error()))
			return
		}
		areaNames := make([]string, 0, len(areas))
		for _, a := range areas {
			areaNames = append(areaNames, a.Name)
		}

		cnt := 0
		for i := 0; i < n; i++ {
			rec := utils.GenerateRandomUnclaimed(names, areaNames, maxAge)
			if err := repo.CreateUnclaimed(ctx, rec); err != nil {
				slog.Error("cannot insert record", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("unclaimed records inserted", slog.Int("count", cnt))
	case 3:
		if file == "" {
			slog.Error("-file is required")
			return
		}

		var createdBy *int64
		if admin, err := repo.GetUserByUsername(ctx, cfg.InitialAdmin.Username); err == nil {
			createdBy = &admin.ID
		}

		cnt, err := seed.ImportUnclaimedFile(ctx, repo, file, loc, createdBy)
		if err != nil {
			slog.Error("cannot import file", "file", file, slog.String("error", err.Error()))
			return
		}

		slog.Info("unclaimed records imported", "file", file, slog.Int("count", cnt))
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}
