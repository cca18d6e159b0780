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

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"miwalavie-store/internal/core/auth"
	"miwalavie-store/internal/core/cache"
	"miwalavie-store/internal/core/config"
	"miwalavie-store/internal/core/database"
	"miwalavie-store/internal/core/logger"
	"miwalavie-store/internal/core/server"
	"miwalavie-store/internal/domain"
	"miwalavie-store/internal/repo"
	"miwalavie-store/internal/service"
	"miwalavie-store/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{}, &domain.Product{},
			&domain.Order{}, &domain.OrderItem{}, &domain.OrderMessage{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// 仓储 + 服务
	userRepo := repo.NewUserRepo(db)
	productRepo := repo.NewProductRepo(db)
	orderRepo := repo.NewOrderRepo(db)
	messageRepo := repo.NewMessageRepo(db)

	catalogSvc := service.NewCatalogService(productRepo)

	// redis 配了就用：购物车会话 + 商品列表缓存；没配退进程内存
	var cartStore domain.CartStore = repo.NewMemCartStore()
	if cfg.Redis.Addr != "" {
		cc := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cartStore = repo.NewRedisCartStore(cc.RDB, time.Duration(cfg.Store.CartTTLMin)*time.Minute)
		catalogSvc = catalogSvc.WithCache(cc, time.Duration(cfg.Store.CatalogCacheSec)*time.Second)
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	} else {
		log.Warn("redis not configured, cart kept in process memory")
	}

	deps := router.Deps{
		Log:       log,
		JWT:       jwter,
		Users:     service.NewUserService(userRepo),
		Catalog:   catalogSvc,
		Cart:      service.NewCartService(cartStore, productRepo),
		Orders:    service.NewOrderService(db, orderRepo),
		Messages:  service.NewMessageService(orderRepo, messageRepo),
		UploadDir: cfg.Store.UploadDir,
	}

	r := router.NewAPIEngine(deps)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("store api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("store api start FAILED", zap.Error(err))
		}
	}()
	log.Info("store api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("store api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
