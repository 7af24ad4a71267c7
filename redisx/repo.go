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
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vogo/pixellink/cores"
)

const (
	// Redis key formats, prefixed by the repository key prefix
	linkKeyFormat     = "%slink:%s"  // Hash of one link by code
	urlIndexKeyFormat = "%surl2code" // Hash mapping original url to code
	linksKeyFormat    = "%slinks"    // ZSet of codes scored by id

	DefaultRepoKeyPrefix = "pixellink:"
)

// createScript stores a link unless its url is already indexed.
// KEYS: url index, link hash, links zset. ARGV: url, code, id, created unix ms.
var createScript = redis.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2]) == 0 then
	return redis.call('HGET', KEYS[1], ARGV[1])
end
redis.call('HSET', KEYS[2], 'id', ARGV[3], 'code', ARGV[2], 'url', ARGV[1], 'clicks', 0, 'created', ARGV[4])
redis.call('ZADD', KEYS[3], ARGV[3], ARGV[2])
return ''
`)

// incrScript increments clicks of an existing link, returning -1 if absent.
var incrScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
return redis.call('HINCRBY', KEYS[1], 'clicks', ARGV[1])
`)

// linkHash is the stored form of a link
type linkHash struct {
	ID          int64  `redis:"id"`
	Code        string `redis:"code"`
	OriginalURL string `redis:"url"`
	Clicks      int64  `redis:"clicks"`
	Created     int64  `redis:"created"`
}

func (h *linkHash) toCore() *cores.Link {
	return &cores.Link{
		ID:          h.ID,
		Code:        h.Code,
		OriginalURL: h.OriginalURL,
		Clicks:      h.Clicks,
		CreateTime:  time.UnixMilli(h.Created),
	}
}

// RedisLinkRepository implements cores.LinkRepository interface with Redis storage
type RedisLinkRepository struct {
	redis     *redis.Client
	keyPrefix string
}

type RepoOption func(r *RedisLinkRepository)

func WithRepoKeyPrefix(prefix string) RepoOption {
	return func(r *RedisLinkRepository) {
		r.keyPrefix = prefix
	}
}

// NewRedisLinkRepository creates a new RedisLinkRepository
func NewRedisLinkRepository(redisClient *redis.Client, opts ...RepoOption) *RedisLinkRepository {
	r := &RedisLinkRepository{
		redis:     redisClient,
		keyPrefix: DefaultRepoKeyPrefix,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *RedisLinkRepository) linkKey(code string) string {
	return fmt.Sprintf(linkKeyFormat, r.keyPrefix, code)
}

func (r *RedisLinkRepository) urlIndexKey() string {
	return fmt.Sprintf(urlIndexKeyFormat, r.keyPrefix)
}

func (r *RedisLinkRepository) linksKey() string {
	return fmt.Sprintf(linksKeyFormat, r.keyPrefix)
}

// Create implements cores.LinkRepository.Create
func (r *RedisLinkRepository) Create(ctx context.Context, link *cores.Link) error {
	keys := []string{r.urlIndexKey(), r.linkKey(link.Code), r.linksKey()}

	existing, err := createScript.Run(ctx, r.redis, keys,
		link.OriginalURL, link.Code, link.ID, link.CreateTime.UnixMilli()).Text()
	if err != nil {
		return err
	}

	if existing != "" {
		return fmt.Errorf("%w: stored as code %s", cores.ErrDuplicateURL, existing)
	}

	return nil
}

// GetByCode implements cores.LinkRepository.GetByCode
func (r *RedisLinkRepository) GetByCode(ctx context.Context, code string) (*cores.Link, error) {
	return r.load(r.redis.HGetAll(ctx, r.linkKey(code)))
}

// GetByOriginalURL implements cores.LinkRepository.GetByOriginalURL
func (r *RedisLinkRepository) GetByOriginalURL(ctx context.Context, originalURL string) (*cores.Link, error) {
	code, err := r.redis.HGet(ctx, r.urlIndexKey(), originalURL).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cores.ErrLinkNotFound
		}
		return nil, err
	}

	return r.GetByCode(ctx, code)
}

// IncrClicks implements cores.LinkRepository.IncrClicks
func (r *RedisLinkRepository) IncrClicks(ctx context.Context, code string, delta int64) error {
	clicks, err := incrScript.Run(ctx, r.redis, []string{r.linkKey(code)}, delta).Int64()
	if err != nil {
		return err
	}

	if clicks < 0 {
		return cores.ErrLinkNotFound
	}

	return nil
}

// List implements cores.LinkRepository.List
func (r *RedisLinkRepository) List(ctx context.Context) ([]*cores.Link, error) {
	codes, err := r.redis.ZRevRange(ctx, r.linksKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(codes) == 0 {
		return []*cores.Link{}, nil
	}

	// Use a pipeline to load all hashes in one round trip
	pipe := r.redis.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(codes))
	for i, code := range codes {
		cmds[i] = pipe.HGetAll(ctx, r.linkKey(code))
	}

	if _, err = pipe.Exec(ctx); err != nil {
		return nil, err
	}

	links := make([]*cores.Link, 0, len(cmds))
	for _, cmd := range cmds {
		link, loadErr := r.load(cmd)
		if loadErr != nil {
			if errors.Is(loadErr, cores.ErrLinkNotFound) {
				continue
			}
			return nil, loadErr
		}
		links = append(links, link)
	}

	sort.SliceStable(links, func(i, j int) bool {
		if !links[i].CreateTime.Equal(links[j].CreateTime) {
			return links[i].CreateTime.After(links[j].CreateTime)
		}
		return links[i].ID > links[j].ID
	})

	return links, nil
}

func (r *RedisLinkRepository) load(cmd *redis.MapStringStringCmd) (*cores.Link, error) {
	values, err := cmd.Result()
	if err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, cores.ErrLinkNotFound
	}

	var h linkHash
	if err = cmd.Scan(&h); err != nil {
		return nil, err
	}

	return h.toCore(), nil
}
