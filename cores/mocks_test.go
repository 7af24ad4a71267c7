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

package cores_test

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vogo/pixellink/cores"
)

type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) Create(ctx context.Context, link *cores.Link) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkRepository) GetByCode(ctx context.Context, code string) (*cores.Link, error) {
	args := m.Called(ctx, code)
	link, _ := args.Get(0).(*cores.Link)
	return link, args.Error(1)
}

func (m *MockLinkRepository) GetByOriginalURL(ctx context.Context, originalURL string) (*cores.Link, error) {
	args := m.Called(ctx, originalURL)
	link, _ := args.Get(0).(*cores.Link)
	return link, args.Error(1)
}

func (m *MockLinkRepository) IncrClicks(ctx context.Context, code string, delta int64) error {
	args := m.Called(ctx, code, delta)
	return args.Error(0)
}

func (m *MockLinkRepository) List(ctx context.Context) ([]*cores.Link, error) {
	args := m.Called(ctx)
	links, _ := args.Get(0).([]*cores.Link)
	return links, args.Error(1)
}

type MockLinkCache struct {
	mock.Mock
}

func (m *MockLinkCache) Get(ctx context.Context, code string) (string, bool, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockLinkCache) Set(ctx context.Context, code string, link string, ttl time.Duration) error {
	args := m.Called(ctx, code, link, ttl)
	return args.Error(0)
}

func (m *MockLinkCache) Expire(ctx context.Context, code string, ttl time.Duration) error {
	args := m.Called(ctx, code, ttl)
	return args.Error(0)
}

type MockIDCounter struct {
	mock.Mock
}

func (m *MockIDCounter) Incr(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// countingRepository counts store reads of a wrapped repository
type countingRepository struct {
	cores.LinkRepository
	getByCode atomic.Int32
}

func (r *countingRepository) GetByCode(ctx context.Context, code string) (*cores.Link, error) {
	r.getByCode.Add(1)
	return r.LinkRepository.GetByCode(ctx, code)
}
