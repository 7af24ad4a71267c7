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

import "errors"

var (
	// ErrInvalidURL is returned when the submitted url is not an absolute http(s) url.
	ErrInvalidURL = errors.New("invalid url")

	// ErrLinkNotFound is returned when no link exists for a short code or original url.
	ErrLinkNotFound = errors.New("short link not found")

	// ErrDuplicateURL is returned by repositories when the original url is already stored.
	ErrDuplicateURL = errors.New("original url already exists")

	// ErrInvalidEncoding is returned when a short code is not a canonical base62 string.
	ErrInvalidEncoding = errors.New("invalid short code encoding")

	// ErrAllocatorUnavailable is returned when the shared id counter cannot be incremented.
	ErrAllocatorUnavailable = errors.New("id allocator unavailable")

	// ErrPersistenceFailed is returned when the link store fails to read or write.
	ErrPersistenceFailed = errors.New("link persistence failed")

	// ErrCacheUnavailable is logged when the cache fails, requests fall back to the store.
	ErrCacheUnavailable = errors.New("link cache unavailable")
)
