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

	"github.com/redis/go-redis/v9"
)

const DefaultCounterKey = "url_counter"

// RedisIDCounter implements cores.IDCounter with an atomic INCR on a single key.
type RedisIDCounter struct {
	redis *redis.Client
	key   string
}

type CounterOption func(c *RedisIDCounter)

func WithCounterKey(key string) CounterOption {
	return func(c *RedisIDCounter) {
		if key != "" {
			c.key = key
		}
	}
}

// NewRedisIDCounter creates a new RedisIDCounter
func NewRedisIDCounter(redisClient *redis.Client, opts ...CounterOption) *RedisIDCounter {
	c := &RedisIDCounter{
		redis: redisClient,
		key:   DefaultCounterKey,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Incr implements cores.IDCounter.Incr
func (c *RedisIDCounter) Incr(ctx context.Context) (int64, error) {
	return c.redis.Incr(ctx, c.key).Result()
}
