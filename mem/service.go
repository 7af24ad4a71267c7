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

package mem

import (
	"github.com/vogo/pixellink/cores"
	"github.com/vogo/pixellink/memx"
)

// MemoryLinkService is a memory-based LinkService, for tests and single-process demos
type MemoryLinkService struct {
	*cores.LinkService
	Repo    *memx.MemoryLinkRepository
	Cache   *memx.MemoryLinkCache
	Counter *memx.MemoryIDCounter
}

// NewMemoryLinkService creates a new MemoryLinkService with in-memory implementations
// of repository, cache and counter
func NewMemoryLinkService(cacheSize int, opts ...cores.ServiceOption) (*MemoryLinkService, error) {
	repo := memx.NewMemoryLinkRepository()
	counter := memx.NewMemoryIDCounter()

	cache, err := memx.NewMemoryLinkCache(cacheSize)
	if err != nil {
		return nil, err
	}

	return &MemoryLinkService{
		LinkService: cores.NewLinkService(repo, cache, counter, opts...),
		Repo:        repo,
		Cache:       cache,
		Counter:     counter,
	}, nil
}
