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
	"fmt"
	"time"

	"github.com/vogo/vogo/vos"
)

const (
	storeMySQL  = "mysql"
	storeRedis  = "redis"
	storeMemory = "memory"
	cacheNone   = "none"
)

type mysqlConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

func (c mysqlConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

type redisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c redisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type config struct {
	Port    string
	BaseURL string

	// Store holds the records, Counter allocates ids and Cache fronts the store
	Store   string
	Counter string
	Cache   string

	MySQL mysqlConfig
	Redis redisConfig

	CacheTTL        time.Duration
	CacheSize       int
	CacheKeyPrefix  string
	CounterKey      string
	IOTimeout       time.Duration
	ClickQueueSize  int
	ShutdownTimeout time.Duration
}

func loadConfig() (*config, error) {
	store := vos.GetEnvStr("STORE", storeMySQL)

	// an in-process store keeps its counter and cache in-process too
	backend := storeRedis
	if store == storeMemory {
		backend = storeMemory
	}

	cfg := &config{
		Port:    vos.GetEnvStr("PORT", "5000"),
		BaseURL: vos.GetEnvStr("BASE_URL", ""),
		Store:   store,
		Counter: vos.GetEnvStr("COUNTER", backend),
		Cache:   vos.GetEnvStr("CACHE", backend),
		MySQL: mysqlConfig{
			Host:     vos.GetEnvStr("MYSQL_HOST", "localhost"),
			Port:     vos.GetEnvStr("MYSQL_PORT", "3306"),
			User:     vos.GetEnvStr("MYSQL_USER", "root"),
			Password: vos.GetEnvStr("MYSQL_PASSWORD", ""),
			Database: vos.GetEnvStr("MYSQL_DATABASE", "pixellink"),
		},
		Redis: redisConfig{
			Host:     vos.GetEnvStr("REDIS_HOST", "localhost"),
			Port:     vos.GetEnvStr("REDIS_PORT", "6379"),
			Password: vos.GetEnvStr("REDIS_PASSWORD", ""),
			DB:       vos.GetEnvInt("REDIS_DB", 0),
		},
		CacheTTL:        time.Duration(vos.GetEnvInt64("CACHE_TTL", 3600)) * time.Second,
		CacheSize:       vos.GetEnvInt("CACHE_SIZE", 10000),
		CacheKeyPrefix:  vos.GetEnvStr("CACHE_KEY_PREFIX", "url:"),
		CounterKey:      vos.GetEnvStr("COUNTER_KEY", "url_counter"),
		IOTimeout:       time.Duration(vos.GetEnvInt64("IO_TIMEOUT_MS", 3000)) * time.Millisecond,
		ClickQueueSize:  vos.GetEnvInt("CLICK_QUEUE_SIZE", 1024),
		ShutdownTimeout: time.Duration(vos.GetEnvInt64("SHUTDOWN_TIMEOUT_MS", 5000)) * time.Millisecond,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) validate() error {
	switch c.Store {
	case storeMySQL, storeRedis, storeMemory:
	default:
		return fmt.Errorf("invalid STORE %q, want mysql, redis or memory", c.Store)
	}

	switch c.Counter {
	case storeMySQL, storeRedis, storeMemory:
	default:
		return fmt.Errorf("invalid COUNTER %q, want mysql, redis or memory", c.Counter)
	}

	switch c.Cache {
	case storeRedis, storeMemory, cacheNone:
	default:
		return fmt.Errorf("invalid CACHE %q, want redis, memory or none", c.Cache)
	}

	if c.Store == storeMemory {
		if c.Counter != storeMemory {
			return fmt.Errorf("invalid COUNTER %q for memory store, want memory", c.Counter)
		}
		if c.Cache == storeRedis {
			return fmt.Errorf("invalid CACHE %q for memory store, want memory or none", c.Cache)
		}
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("invalid CACHE_TTL %v", c.CacheTTL)
	}

	if c.IOTimeout <= 0 {
		return fmt.Errorf("invalid IO_TIMEOUT_MS %v", c.IOTimeout)
	}

	return nil
}

func (c *config) needRedis() bool {
	return c.Store == storeRedis || c.Counter == storeRedis || c.Cache == storeRedis
}

func (c *config) needMySQL() bool {
	return c.Store == storeMySQL || c.Counter == storeMySQL
}
