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
	"github.com/redis/go-redis/v9"
	"github.com/vogo/pixellink/cores"
)

// RedisLinkService is a LinkService keeping records, cache and counter in redis
type RedisLinkService struct {
	*cores.LinkService
	redis *redis.Client
}

// NewRedisLinkService creates a new RedisLinkService.
// A nil cache or counter uses the redis one with default keys.
func NewRedisLinkService(redisClient *redis.Client, cache cores.LinkCache, counter cores.IDCounter, opts ...cores.ServiceOption) *RedisLinkService {
	// Create Redis repository
	repo := NewRedisLinkRepository(redisClient)

	// Create Redis cache
	if cache == nil {
		cache = NewRedisLinkCache(redisClient)
	}

	// Create Redis counter
	if counter == nil {
		counter = NewRedisIDCounter(redisClient)
	}

	return &RedisLinkService{
		LinkService: cores.NewLinkService(repo, cache, counter, opts...),
		redis:       redisClient,
	}
}
