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

package redisx

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultCacheKeyPrefix = "url:"

// RedisLinkCache implements cores.LinkCache interface with plain string keys
// holding the original url, expired by redis itself.
type RedisLinkCache struct {
	redis     *redis.Client
	keyPrefix string
}

type CacheOption func(c *RedisLinkCache)

func WithCacheKeyPrefix(prefix string) CacheOption {
	return func(c *RedisLinkCache) {
		c.keyPrefix = prefix
	}
}

// NewRedisLinkCache creates a new RedisLinkCache
func NewRedisLinkCache(redisClient *redis.Client, opts ...CacheOption) *RedisLinkCache {
	c := &RedisLinkCache{
		redis:     redisClient,
		keyPrefix: DefaultCacheKeyPrefix,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *RedisLinkCache) getCacheKey(code string) string {
	return c.keyPrefix + code
}

// Get implements cores.LinkCache.Get
func (c *RedisLinkCache) Get(ctx context.Context, code string) (string, bool, error) {
	link, err := c.redis.Get(ctx, c.getCacheKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}

	return link, true, nil
}

// Set implements cores.LinkCache.Set
func (c *RedisLinkCache) Set(ctx context.Context, code string, link string, ttl time.Duration) error {
	return c.redis.Set(ctx, c.getCacheKey(code), link, ttl).Err()
}

// Expire implements cores.LinkCache.Expire
func (c *RedisLinkCache) Expire(ctx context.Context, code string, ttl time.Duration) error {
	return c.redis.Expire(ctx, c.getCacheKey(code), ttl).Err()
}
