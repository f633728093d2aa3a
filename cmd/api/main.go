package main

import (
	"Followdesk/internal/api/config"
	"Followdesk/internal/pkg/clock"
	"Followdesk/internal/pkg/database"
	"Followdesk/internal/pkg/kafka"
	"Followdesk/internal/pkg/logger"
	"Followdesk/internal/pkg/mongo"
	"Followdesk/internal/pkg/redis"
	"Followdesk/internal/pkg/security"
	"Followdesk/internal/service"
	"Followdesk/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg

	// 初始化日志
	logger.InitLogger(cfg.Logstash)
	security.Setup(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	clk, err := clock.New(cfg.Business.Timezone)
	if err != nil {
		log.Error("Fatal error: invalid business timezone", "err", err)
		panic(err)
	}

	// 数据库连接
	dbCfg := cfg.DB
	db, err := database.Open(&dbCfg)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}

	// Redis 可选，不可用时黑名单退回内存
	if cfg.Redis.Addr != "" {
		if err = redis.InitRedis(cfg.Redis); err != nil {
			log.Warn("redis unavailable, continuing without it", "err", err)
		}
	}
	defer func() { _ = redis.Close() }()

	// 审计镜像
	var mirrors []service.AuditMirror
	if cfg.Audit.MongoMirror {
		mongoDB, err := mongo.InitMongo(cfg.Mongo)
		if err != nil {
			log.Error("Fatal error: failed to create mongo connection", "err", err)
			panic(err)
		}
		mirror := mongo.NewAuditMirror(mongoDB)
		if err = mirror.EnsureIndexes(context.Background()); err != nil {
			log.Warn("ensure audit mirror indexes failed", "err", err)
		}
		mirrors = append(mirrors, mirror)
	}
	if cfg.Audit.KafkaMirror {
		producer, err := kafka.NewAuditProducer(cfg.Kafka, cfg.Audit.KafkaTopic)
		if err != nil {
			log.Error("Fatal error: failed to create kafka producer", "err", err)
			panic(err)
		}
		defer func() { _ = producer.Close() }()
		mirrors = append(mirrors, producer)
	}

	// 依赖注入
	app := wire.BuildApplication(db, cfg, clk, mirrors...)

	// 初始管理员
	created, err := app.AuthSvc.EnsureAdmin(context.Background(), cfg.Business.AdminUsername, cfg.Business.AdminPassword)
	if err != nil {
		log.Error("Fatal error: failed to bootstrap admin", "err", err)
		panic(err)
	}
	if created {
		log.Info("initial admin account created, change its password", "username", cfg.Business.AdminUsername)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	if err = app.CronMgr.RegisterJobs(); err != nil {
		log.Error("Fatal error: failed to register cron jobs", "err", err)
		panic(err)
	}
	app.CronMgr.Start()
	g.Go(func() error {
		<-ctx.Done()
		app.CronMgr.Stop()
		return nil
	})

	// HTTP 服务器
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
		case sig := <-quit:
			log.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server shutdown failed", "err", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("App exited with error", "err", err)
	}

	// 等待审计镜像投递完成
	app.AuditSvc.Wait()
	log.Info("App exited successfully.")
}
