package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/cache"
	"storefront/internal/server"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := newLogger(cfg)
	log.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//ストア接続
	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	productCache, closeCache := newProductCache(ctx, cfg, logger)
	defer closeCache()

	//usecaseに渡す部品
	idGen := auth.UUIDGenerator{}
	clock := auth.SystemClock{}
	hasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(st.users, hasher, idGen, clock)
	loginUC := auth.NewLoginUsecase(st.users, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(st.products, productCache)
	cartUC := usecase.NewCartUsecase(st.carts)
	orderUC := usecase.NewOrderUsecase(st.orders)

	//Handler生成
	e := server.New(server.Handlers{
		Auth:    handler.NewAuthHandler(registerUC, loginUC),
		Product: handler.NewProductHandler(productUC),
		Cart:    handler.NewCartHandler(cartUC),
		Order:   handler.NewOrderHandler(orderUC),
	}, server.Options{
		JWTSecret:    cfg.JWTSecret,
		AuthRequired: cfg.AuthRequired,
		Logger:       logger,
		Ping:         st.ping,
	})

	//Server起動
	addr := ":" + cfg.Port
	go func() {
		logger.Info().Str("addr", addr).Str("driver", cfg.StoreDriver).Bool("auth_required", cfg.AuthRequired).Msg("server started")
		if err := server.Start(e, addr); err != nil {
			logger.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	if err := server.Shutdown(e, 10*time.Second); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.GoEnv == "dev" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// REDIS_ADDRが無い or 繋がらないときはキャッシュ無しで動かす
func newProductCache(ctx context.Context, cfg config.Config, logger zerolog.Logger) (usecase.ProductCache, func()) {
	if cfg.RedisAddr == "" {
		return cache.NoopProductCache{}, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, product cache disabled")
		_ = client.Close()
		return cache.NoopProductCache{}, func() {}
	}

	return cache.NewProductRedisCache(client, cfg.ProductCacheTTL), func() { _ = client.Close() }
}
