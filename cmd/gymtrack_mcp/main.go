// Package main runs the gymtrack MCP server over stdio. Reports come either from
// the local SQLite database of the CLI or, for one user, from the server's Postgres.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtrack/internal/config"
	"github.com/2beens/gymtrack/internal/db"
	"github.com/2beens/gymtrack/internal/gymtrack/analytics"
	"github.com/2beens/gymtrack/internal/gymtrack/local"
	gymtrackmcp "github.com/2beens/gymtrack/internal/gymtrack/mcp"
	"github.com/2beens/gymtrack/internal/gymtrack/reports"
	"github.com/2beens/gymtrack/internal/gymtrack/workouts"
	"github.com/2beens/gymtrack/internal/logging"
	"github.com/2beens/gymtrack/pkg"
)

func main() {
	dbPath := flag.String("db", local.DefaultDBPath(), "path of the local SQLite database")
	usePostgres := flag.Bool("postgres", false, "read workouts from the server database instead of SQLite")
	userID := flag.String("user", "", "user id whose workouts are reported (with -postgres)")
	env := flag.String("env", "development", "environment [prod | production | dev | development] (with -postgres)")
	configPath := flag.String("config", "./config.toml", "path to the server TOML config (with -postgres)")
	tz := flag.String("tz", "", "time zone for dates and weeks (default: device local time, or server_timezone with -postgres)")
	logLevel := flag.String("log-level", "warn", "log level, logs go to stderr")
	flag.Parse()

	// stdout carries the protocol
	logging.Setup(logging.LoggerSetupParams{
		LogLevel: *logLevel,
		Stdout:   os.Stderr,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var server *mcp.Server
	if *usePostgres {
		if *userID == "" {
			log.Fatalln("-user is required with -postgres")
		}

		cfg, err := config.Load(*env, *configPath)
		if err != nil {
			log.Fatalf("load config: %s", err)
		}
		loc, err := cfg.Location()
		if err != nil {
			log.Fatalf("server timezone: %s", err)
		}
		if loc, err = overrideLocation(*tz, loc); err != nil {
			log.Fatalf("time zone: %s", err)
		}

		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			TracingEnabled: false,
		})
		if err != nil {
			log.Fatalf("db pool: %s", err)
		}
		defer dbPool.Close()

		service := reports.NewService(
			workouts.NewRepo(dbPool),
			analytics.NewEngine(analytics.WithLocation(loc)),
		)
		server = gymtrackmcp.NewServer(service.ForUser(*userID))
	} else {
		loc, err := overrideLocation(*tz, time.Local)
		if err != nil {
			log.Fatalf("time zone: %s", err)
		}

		// local.Open would create an empty database
		exists, err := pkg.PathExists(*dbPath, false)
		if err != nil {
			log.Fatalf("local database: %s", err)
		}
		if !exists {
			log.Fatalf("no local database at %s, log a workout with the gymtrack CLI first", *dbPath)
		}

		store, err := local.Open(*dbPath, local.WithEngine(analytics.NewEngine(analytics.WithLocation(loc))))
		if err != nil {
			log.Fatalf("open local store: %s", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Errorf("close local store: %s", err)
			}
		}()
		server = gymtrackmcp.NewServer(store)
	}

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.Errorf("mcp server: %s", err)
	}
}

func overrideLocation(name string, fallback *time.Location) (*time.Location, error) {
	if name == "" {
		return fallback, nil
	}
	return time.LoadLocation(name)
}
