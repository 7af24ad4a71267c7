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
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vogo/vogo/vlog"
)

var validate = validator.New()

type LinkService struct {
	Repo  LinkRepository
	Cache LinkCache

	allocator *IDAllocator
	clicks    *clickRecorder

	cacheTTL       time.Duration
	ioTimeout      time.Duration
	clickQueueSize int
	baseURL        string
}

// NewLinkService creates the link service. A nil cache disables caching.
func NewLinkService(repo LinkRepository, cache LinkCache, counter IDCounter, opts ...ServiceOption) *LinkService {
	if cache == nil {
		cache = NopLinkCache{}
	}

	svc := &LinkService{
		Repo:           repo,
		Cache:          cache,
		cacheTTL:       DefaultCacheTTL,
		ioTimeout:      DefaultIOTimeout,
		clickQueueSize: DefaultClickQueueSize,
	}

	for _, opt := range opts {
		opt(svc)
	}

	svc.allocator = NewIDAllocator(counter, svc.ioTimeout)
	svc.clicks = newClickRecorder(repo, svc.clickQueueSize, svc.ioTimeout)

	return svc
}

// Close waits for pending background click increments.
func (s *LinkService) Close() {
	s.clicks.Close()
}

func (s *LinkService) CacheTTL() time.Duration {
	return s.cacheTTL
}

// ValidateURL checks that link is an absolute http or https url.
func ValidateURL(link string) error {
	if err := validate.Var(link, "required,http_url"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidURL, link)
	}
	return nil
}

// Shorten returns the link for originalURL, creating it if needed.
// The bool result reports whether a new link was created.
func (s *LinkService) Shorten(ctx context.Context, originalURL string) (*Link, bool, error) {
	// 1. validate
	if err := ValidateURL(originalURL); err != nil {
		return nil, false, err
	}

	// 2. dedup
	existing, err := s.getByOriginalURL(ctx, originalURL)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrLinkNotFound) {
		return nil, false, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	// 3. allocate
	id, err := s.allocator.Next(ctx)
	if err != nil {
		return nil, false, err
	}

	// 4. save link
	link := &Link{
		ID:          id,
		Code:        Encode(id),
		OriginalURL: originalURL,
		CreateTime:  time.Now(),
	}

	if err = s.create(ctx, link); err != nil {
		if !errors.Is(err, ErrDuplicateURL) {
			return nil, false, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
		}

		// lost a concurrent first submission of the same url, id is left unused
		existing, err = s.getByOriginalURL(ctx, originalURL)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
		}

		vlog.Infof("shorten raced on same url, reuse code:%s, unused id:%d", existing.Code, id)
		return existing, false, nil
	}

	// 5. prime cache
	s.cacheSet(ctx, link.Code, link.OriginalURL)

	return link, true, nil
}

// Resolve returns the original url of code and counts the click.
func (s *LinkService) Resolve(ctx context.Context, code string) (string, error) {
	if _, err := Decode(code); err != nil {
		return "", fmt.Errorf("%w: %w", ErrLinkNotFound, err)
	}

	if link, ok := s.cacheGet(ctx, code); ok {
		s.cacheExpire(ctx, code)
		s.clicks.Record(code)
		return link, nil
	}

	link, err := s.getByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	s.cacheSet(ctx, code, link.OriginalURL)

	if err = s.incrClicks(ctx, code); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	return link.OriginalURL, nil
}

// Stats reads the link of code from the repository, bypassing the cache.
func (s *LinkService) Stats(ctx context.Context, code string) (*Link, error) {
	if _, err := Decode(code); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLinkNotFound, err)
	}

	link, err := s.getByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	return link, nil
}

// List returns all links newest first with totals.
func (s *LinkService) List(ctx context.Context) (*LinkList, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	links, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	return NewLinkList(links), nil
}

func (s *LinkService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.ioTimeout)
}

func (s *LinkService) getByOriginalURL(ctx context.Context, originalURL string) (*Link, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Repo.GetByOriginalURL(ctx, originalURL)
}

func (s *LinkService) getByCode(ctx context.Context, code string) (*Link, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Repo.GetByCode(ctx, code)
}

func (s *LinkService) create(ctx context.Context, link *Link) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Repo.Create(ctx, link)
}

func (s *LinkService) incrClicks(ctx context.Context, code string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Repo.IncrClicks(ctx, code, 1)
}

// cache failures are logged and treated as a miss

func (s *LinkService) cacheGet(ctx context.Context, code string) (string, bool) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	link, ok, err := s.Cache.Get(ctx, code)
	if err != nil {
		vlog.Warnf("%v, get code:%s, err: %v", ErrCacheUnavailable, code, err)
		return "", false
	}

	return link, ok && link != ""
}

func (s *LinkService) cacheSet(ctx context.Context, code, link string) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.Cache.Set(ctx, code, link, s.cacheTTL); err != nil {
		vlog.Warnf("%v, set code:%s, err: %v", ErrCacheUnavailable, code, err)
	}
}

func (s *LinkService) cacheExpire(ctx context.Context, code string) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.Cache.Expire(ctx, code, s.cacheTTL); err != nil {
		vlog.Warnf("%v, refresh code:%s, err: %v", ErrCacheUnavailable, code, err)
	}
}
