package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"anoa.com/freshwash/internal/bootstrap"
	"anoa.com/freshwash/internal/config"
	auditService "anoa.com/freshwash/internal/modules/audit/service"
	"anoa.com/freshwash/internal/server"
	"anoa.com/freshwash/pkg/database"
	"anoa.com/freshwash/pkg/storage"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	identityDB, err := database.Connect("identity", cfg.IdentityDatabaseURL)
	if err != nil {
		slog.Error("identity store unavailable", "error", err)
		os.Exit(1)
	}
	defer database.Close(identityDB)

	laundryDB, err := database.Connect("laundry", cfg.LaundryDatabaseURL)
	if err != nil {
		slog.Error("laundry store unavailable", "error", err)
		os.Exit(1)
	}
	defer database.Close(laundryDB)

	if err := bootstrap.MigrateIdentity(identityDB); err != nil {
		slog.Error("identity migration failed", "error", err)
		os.Exit(1)
	}
	if err := bootstrap.MigrateLaundry(laundryDB); err != nil {
		slog.Error("laundry migration failed", "error", err)
		os.Exit(1)
	}
	if err := bootstrap.SeedItems(laundryDB); err != nil {
		slog.Error("failed to seed items", "error", err)
		os.Exit(1)
	}

	if cfg.IsDevelopment() {
		if err := bootstrap.SeedAdminMember(identityDB, laundryDB, time.Now()); err != nil {
			slog.Error("failed to seed admin member", "error", err)
			os.Exit(1)
		}
	}

	deps := server.Dependencies{
		IdentityDB: identityDB,
		LaundryDB:  laundryDB,
		Redis:      connectRedis(cfg.RedisURL),
	}

	if cfg.CloudinaryURL != "" {
		imageStorage, err := storage.NewCloudinaryStorage(cfg.CloudinaryURL, cfg.CloudinaryUploadFolder)
		if err != nil {
			slog.Error("failed to initialize cloudinary storage", "error", err)
			os.Exit(1)
		}
		deps.ImageStorage = imageStorage
	} else {
		slog.Warn("CLOUDINARY_URL not set, profile image uploads are disabled")
	}

	trail, closer, err := auditService.OpenTrail(cfg.AuditLogPath)
	if err != nil {
		slog.Warn("request audit file disabled", "path", cfg.AuditLogPath, "error", err)
	} else {
		defer closer.Close()
		deps.AuditTrail = trail
	}

	srv := server.NewServer(cfg, deps)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
	if err := srv.Run(":" + cfg.Port); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// connectRedis returns nil when REDIS_URL is unset or unreachable; staff
// notifications are then stored but not streamed.
func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		slog.Warn("REDIS_URL not set, live staff notifications are disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("invalid REDIS_URL, live staff notifications are disabled", "error", err)
		return nil
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, live staff notifications are disabled", "error", err)
		_ = client.Close()
		return nil
	}

	slog.Info("connected to redis")
	return client
}
