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
	"fmt"
	"sort"
	"sync"

	"github.com/vogo/pixellink/cores"
)

// MemoryLinkRepository implements cores.LinkRepository interface with in-memory storage
type MemoryLinkRepository struct {
	mutex     sync.RWMutex
	links     map[string]*cores.Link // Code -> Link
	urlToCode map[string]string      // OriginalURL -> Code
}

// NewMemoryLinkRepository creates a new MemoryLinkRepository
func NewMemoryLinkRepository() *MemoryLinkRepository {
	return &MemoryLinkRepository{
		links:     make(map[string]*cores.Link),
		urlToCode: make(map[string]string),
	}
}

// Create implements cores.LinkRepository.Create
func (r *MemoryLinkRepository) Create(ctx context.Context, link *cores.Link) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if code, exists := r.urlToCode[link.OriginalURL]; exists {
		return fmt.Errorf("%w: stored as code %s", cores.ErrDuplicateURL, code)
	}

	if _, exists := r.links[link.Code]; exists {
		return fmt.Errorf("code %s already exists", link.Code)
	}

	stored := *link
	r.links[link.Code] = &stored
	r.urlToCode[link.OriginalURL] = link.Code

	return nil
}

// GetByCode implements cores.LinkRepository.GetByCode
func (r *MemoryLinkRepository) GetByCode(ctx context.Context, code string) (*cores.Link, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	link, exists := r.links[code]
	if !exists {
		return nil, cores.ErrLinkNotFound
	}

	found := *link
	return &found, nil
}

// GetByOriginalURL implements cores.LinkRepository.GetByOriginalURL
func (r *MemoryLinkRepository) GetByOriginalURL(ctx context.Context, originalURL string) (*cores.Link, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	code, exists := r.urlToCode[originalURL]
	if !exists {
		return nil, cores.ErrLinkNotFound
	}

	found := *r.links[code]
	return &found, nil
}

// IncrClicks implements cores.LinkRepository.IncrClicks
func (r *MemoryLinkRepository) IncrClicks(ctx context.Context, code string, delta int64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	link, exists := r.links[code]
	if !exists {
		return cores.ErrLinkNotFound
	}

	link.Clicks += delta

	return nil
}

// List implements cores.LinkRepository.List
func (r *MemoryLinkRepository) List(ctx context.Context) ([]*cores.Link, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*cores.Link, 0, len(r.links))
	for _, link := range r.links {
		found := *link
		result = append(result, &found)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreateTime.Equal(result[j].CreateTime) {
			return result[i].CreateTime.After(result[j].CreateTime)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}
