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

package memx

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 10000

// cacheItem represents a cached original url with its deadline
type cacheItem struct {
	Link       string
	ExpireTime time.Time
}

// MemoryLinkCache implements cores.LinkCache with a bounded in-process LRU.
// Entries past their ttl are treated as misses and evicted on read.
type MemoryLinkCache struct {
	items *lru.Cache[string, cacheItem]
	now   func() time.Time
}

type CacheOption func(*MemoryLinkCache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *MemoryLinkCache) {
		c.now = now
	}
}

// NewMemoryLinkCache creates a new MemoryLinkCache holding at most size entries
func NewMemoryLinkCache(size int, opts ...CacheOption) (*MemoryLinkCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	items, err := lru.New[string, cacheItem](size)
	if err != nil {
		return nil, err
	}

	c := &MemoryLinkCache{
		items: items,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Get implements cores.LinkCache.Get
func (c *MemoryLinkCache) Get(ctx context.Context, code string) (string, bool, error) {
	item, ok := c.items.Get(code)
	if !ok {
		return "", false, nil
	}

	if !c.now().Before(item.ExpireTime) {
		c.items.Remove(code)
		return "", false, nil
	}

	return item.Link, true, nil
}

// Set implements cores.LinkCache.Set
func (c *MemoryLinkCache) Set(ctx context.Context, code string, link string, ttl time.Duration) error {
	c.items.Add(code, cacheItem{
		Link:       link,
		ExpireTime: c.now().Add(ttl),
	})

	return nil
}

// Expire implements cores.LinkCache.Expire
func (c *MemoryLinkCache) Expire(ctx context.Context, code string, ttl time.Duration) error {
	item, ok := c.items.Peek(code)
	if !ok {
		return nil
	}

	item.ExpireTime = c.now().Add(ttl)
	c.items.Add(code, item)

	return nil
}

// Len returns the number of cached entries, expired ones included.
func (c *MemoryLinkCache) Len() int {
	return c.items.Len()
}
