/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/vogo/pixellink/cores"
	"github.com/vogo/pixellink/gormx"
	"github.com/vogo/pixellink/mem"
	"github.com/vogo/pixellink/memx"
	"github.com/vogo/pixellink/redisx"
	"github.com/vogo/vogo/vlog"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// backends holds the connections opened for the configured components
type backends struct {
	db    *gorm.DB
	redis *redis.Client
}

func (b *backends) Close() {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			vlog.Errorf("close redis failed: %v", err)
		}
	}

	if b.db != nil {
		if sqlDB, err := b.db.DB(); err == nil {
			if err = sqlDB.Close(); err != nil {
				vlog.Errorf("close mysql failed: %v", err)
			}
		}
	}
}

func openBackends(ctx context.Context, cfg *config) (*backends, error) {
	b := &backends{}

	if cfg.needMySQL() {
		db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN()), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mysql: %w", err)
		}
		b.db = db

		if err = gormx.Migrate(ctx, db, cfg.CounterKey); err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to migrate mysql: %w", err)
		}
	}

	if cfg.needRedis() {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if _, err := b.redis.Ping(ctx).Result(); err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
	}

	return b, nil
}

func newCounter(cfg *config, b *backends) cores.IDCounter {
	switch cfg.Counter {
	case storeMySQL:
		return gormx.NewGormIDCounter(b.db, cfg.CounterKey)
	case storeRedis:
		return redisx.NewRedisIDCounter(b.redis, redisx.WithCounterKey(cfg.CounterKey))
	default:
		return memx.NewMemoryIDCounter()
	}
}

func newCache(cfg *config, b *backends) (cores.LinkCache, error) {
	switch cfg.Cache {
	case storeRedis:
		return redisx.NewRedisLinkCache(b.redis, redisx.WithCacheKeyPrefix(cfg.CacheKeyPrefix)), nil
	case storeMemory:
		return memx.NewMemoryLinkCache(cfg.CacheSize)
	default:
		return cores.NopLinkCache{}, nil
	}
}

func newLinkService(cfg *config, b *backends) (*cores.LinkService, error) {
	opts := []cores.ServiceOption{
		cores.WithCacheTTL(cfg.CacheTTL),
		cores.WithIOTimeout(cfg.IOTimeout),
		cores.WithClickQueueSize(cfg.ClickQueueSize),
		cores.WithBaseURL(cfg.BaseURL),
	}

	if cfg.Store == storeMemory && cfg.Cache == cacheNone {
		return cores.NewLinkService(memx.NewMemoryLinkRepository(), nil, memx.NewMemoryIDCounter(), opts...), nil
	}

	if cfg.Store == storeMemory {
		svc, err := mem.NewMemoryLinkService(cfg.CacheSize, opts...)
		if err != nil {
			return nil, err
		}
		return svc.LinkService, nil
	}

	cache, err := newCache(cfg, b)
	if err != nil {
		return nil, err
	}

	counter := newCounter(cfg, b)

	if cfg.Store == storeRedis {
		return redisx.NewRedisLinkService(b.redis, cache, counter, opts...).LinkService, nil
	}

	return gormx.NewGormLinkService(b.db, cache, counter, opts...).LinkService, nil
}

func run(ctx context.Context, cfg *config) error {
	b, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	svc, err := newLinkService(cfg, b)
	if err != nil {
		return err
	}
	defer svc.Close()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: cores.NewRouter(svc),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		vlog.Infof("server listen at %s, store:%s, counter:%s, cache:%s",
			server.Addr, cfg.Store, cfg.Counter, cfg.Cache)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error occurred: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		vlog.Infof("server shutting down")

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	})

	return g.Wait()
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		vlog.Fatalf("load config failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg); err != nil {
		vlog.Fatalf("server exit: %v", err)
	}

	vlog.Infof("server stopped")
}
