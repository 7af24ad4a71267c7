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

package cores

import (
	"context"
	"time"
)

// LinkRepository is the durable record store.
type LinkRepository interface {
	// Create stores a new link, returning ErrDuplicateURL if its original url is already stored.
	Create(ctx context.Context, link *Link) error
	GetByCode(ctx context.Context, code string) (*Link, error)
	GetByOriginalURL(ctx context.Context, originalURL string) (*Link, error)
	// IncrClicks increments clicks in place, returning ErrLinkNotFound for an unknown code.
	IncrClicks(ctx context.Context, code string, delta int64) error
	// List returns all links, newest first.
	List(ctx context.Context) ([]*Link, error)
}

// LinkCache is the derived code -> original url mapping. A miss returns ("", false, nil).
type LinkCache interface {
	Get(ctx context.Context, code string) (string, bool, error)
	Set(ctx context.Context, code string, link string, ttl time.Duration) error
	Expire(ctx context.Context, code string, ttl time.Duration) error
}

// IDCounter is the shared atomic counter behind the id allocator.
type IDCounter interface {
	Incr(ctx context.Context) (int64, error)
}

// NopLinkCache disables caching, every Get is a miss.
type NopLinkCache struct{}

func (NopLinkCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (NopLinkCache) Set(context.Context, string, string, time.Duration) error { return nil }

func (NopLinkCache) Expire(context.Context, string, time.Duration) error { return nil }
