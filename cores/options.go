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
	"strings"
	"time"
)

const (
	DefaultCacheTTL       = time.Hour
	DefaultIOTimeout      = 3 * time.Second
	DefaultClickQueueSize = 1024
)

type ServiceOption func(s *LinkService)

// WithCacheTTL sets the ttl applied when a cache entry is written or refreshed.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(s *LinkService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithIOTimeout bounds every counter, repository and cache call.
func WithIOTimeout(timeout time.Duration) ServiceOption {
	return func(s *LinkService) {
		if timeout > 0 {
			s.ioTimeout = timeout
		}
	}
}

func WithClickQueueSize(size int) ServiceOption {
	return func(s *LinkService) {
		if size > 0 {
			s.clickQueueSize = size
		}
	}
}

// WithBaseURL sets the prefix of returned short urls, e.g. https://pix.el
func WithBaseURL(baseURL string) ServiceOption {
	return func(s *LinkService) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}
