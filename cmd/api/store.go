package main

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

// ストアの実装一式
type stores struct {
	users    repository.UserRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	orders   repository.OrderRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		gormDB, err := db.ConnectPostgres(cfg.PostgresDSN())
		if err != nil {
			return stores{}, err
		}
		return gormStores(gormDB)
	case config.StoreSQLite:
		gormDB, err := db.ConnectSQLite(cfg.SQLitePath)
		if err != nil {
			return stores{}, err
		}
		return gormStores(gormDB)
	default:
		return mongoStores(ctx, cfg)
	}
}

func gormStores(gormDB *gorm.DB) (stores, error) {
	if err := db.AutoMigrate(gormDB); err != nil {
		_ = db.Close(gormDB)
		return stores{}, fmt.Errorf("failed to migrate: %w", err)
	}

	return stores{
		users:    infraRepo.NewUserGormRepository(gormDB),
		products: infraRepo.NewProductGormRepository(gormDB),
		carts:    infraRepo.NewCartGormRepository(gormDB),
		orders:   infraRepo.NewOrderGormRepository(gormDB),
		ping: func(ctx context.Context) error {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func(context.Context) error {
			return db.Close(gormDB)
		},
	}, nil
}

func mongoStores(ctx context.Context, cfg config.Config) (stores, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	mdb, err := db.ConnectMongoDB(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return stores{}, err
	}
	if err := infraRepo.EnsureMongoIndexes(connectCtx, mdb); err != nil {
		_ = mdb.Client().Disconnect(context.Background())
		return stores{}, err
	}

	client := mdb.Client()
	return stores{
		users:    infraRepo.NewUserMongoRepository(mdb),
		products: infraRepo.NewProductMongoRepository(mdb),
		carts:    infraRepo.NewCartMongoRepository(mdb),
		orders:   infraRepo.NewOrderMongoRepository(mdb),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: client.Disconnect,
	}, nil
}
