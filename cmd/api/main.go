package main

import (
	"context"
	"flag"
	"os"
	"time"

	"movielib/proj/internal/api/tasks"
	"movielib/proj/internal/config"
	"movielib/proj/internal/lib/logger"
	"movielib/proj/internal/mails"
	"movielib/proj/internal/services"
	"movielib/proj/internal/services/auth"
	"movielib/proj/internal/storage/postgres"
	"movielib/proj/internal/storage/revocations"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	godotenv.Load()
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		panic(err)
	}
	defer storage.Conn.Close()
	log.Info("database connection established")

	var revocationStore auth.RevocationStore
	if cfg.Redis.Addr != "" {
		redisStore, err := revocations.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			panic(err)
		}
		defer redisStore.Close()
		revocationStore = redisStore
		log.Info("redis connection established", "addr", cfg.Redis.Addr)
	} else {
		revocationStore = revocations.NewMemory()
		log.Warn("no redis address configured, using in-memory revocation store")
	}

	var mailer auth.MailProvider
	if cfg.SMTPServer.Enabled {
		mailer = mails.New(
			cfg.SMTPServer.Host,
			cfg.SMTPServer.Port,
			cfg.SMTPServer.Timeout,
			cfg.SMTPServer.Username,
			cfg.SMTPServer.Password,
			cfg.SMTPServer.Sender,
			cfg.SMTPServer.RetriesCount,
		)
	}

	bgTasks := tasks.New(log, cfg.Tasks.MaxWorkers, cfg.Tasks.MaxQueueSize)
	bgTasks.Run()

	app := NewApplication(cfg, log, services.New(log, cfg, storage, revocationStore, mailer, bgTasks))
	if err := app.serve(); err != nil {
		log.Error("server stopped with error", "reason", err.Error())
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := bgTasks.Shutdown(shutdownCtx); err != nil {
		log.Error("background tasks shutdown failed", "reason", err.Error())
	}
}
