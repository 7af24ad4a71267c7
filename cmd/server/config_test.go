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
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "BASE_URL", "STORE", "COUNTER", "CACHE",
	"MYSQL_HOST", "MYSQL_PORT", "MYSQL_USER", "MYSQL_PASSWORD", "MYSQL_DATABASE",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	"CACHE_TTL", "CACHE_SIZE", "CACHE_KEY_PREFIX", "COUNTER_KEY",
	"IO_TIMEOUT_MS", "CLICK_QUEUE_SIZE", "SHUTDOWN_TIMEOUT_MS",
}

// clearEnv unsets the config keys for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "", cfg.BaseURL)
	assert.Equal(t, storeMySQL, cfg.Store)
	assert.Equal(t, storeRedis, cfg.Counter)
	assert.Equal(t, storeRedis, cfg.Cache)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 10000, cfg.CacheSize)
	assert.Equal(t, "url:", cfg.CacheKeyPrefix)
	assert.Equal(t, "url_counter", cfg.CounterKey)
	assert.Equal(t, 3*time.Second, cfg.IOTimeout)
	assert.Equal(t, 1024, cfg.ClickQueueSize)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "root:@tcp(localhost:3306)/pixellink?charset=utf8mb4&parseTime=True&loc=Local", cfg.MySQL.DSN())
	assert.True(t, cfg.needMySQL())
	assert.True(t, cfg.needRedis())
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("BASE_URL", "https://pix.el")
	t.Setenv("STORE", "memory")
	t.Setenv("COUNTER", "memory")
	t.Setenv("CACHE", "none")
	t.Setenv("CACHE_TTL", "60")
	t.Setenv("IO_TIMEOUT_MS", "500")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_DB", "2")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://pix.el", cfg.BaseURL)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.IOTimeout)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.False(t, cfg.needMySQL())
	assert.False(t, cfg.needRedis())
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown store", "STORE", "mongo"},
		{"unknown counter", "COUNTER", "zookeeper"},
		{"unknown cache", "CACHE", "memcached"},
		{"zero ttl", "CACHE_TTL", "0"},
		{"negative timeout", "IO_TIMEOUT_MS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := loadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMemoryStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE", "memory")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, storeMemory, cfg.Counter)
	assert.Equal(t, storeMemory, cfg.Cache)
	assert.False(t, cfg.needRedis())
	assert.False(t, cfg.needMySQL())

	svc, err := newLinkService(cfg, &backends{})
	require.NoError(t, err)
	defer svc.Close()

	link, isNew, err := svc.Shorten(context.Background(), "https://example.com/a")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, "1", link.Code)
}

func TestLoadConfigMemoryStoreRejectsExternalBackends(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"redis counter", "COUNTER", "redis"},
		{"mysql counter", "COUNTER", "mysql"},
		{"redis cache", "CACHE", "redis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("STORE", "memory")
			t.Setenv(tt.key, tt.value)

			_, err := loadConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewLinkServiceMemory(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE", "memory")
	t.Setenv("COUNTER", "memory")
	t.Setenv("CACHE", "memory")

	cfg, err := loadConfig()
	require.NoError(t, err)

	svc, err := newLinkService(cfg, &backends{})
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, time.Hour, svc.CacheTTL())
}
