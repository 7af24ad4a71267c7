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
	"fmt"
	"time"
)

// IDAllocator hands out unique, increasing ids drawn from a shared counter.
// It never falls back to a locally generated value.
type IDAllocator struct {
	counter IDCounter
	timeout time.Duration
}

func NewIDAllocator(counter IDCounter, timeout time.Duration) *IDAllocator {
	return &IDAllocator{
		counter: counter,
		timeout: timeout,
	}
}

// Next returns the next id, or an error wrapping ErrAllocatorUnavailable.
func (a *IDAllocator) Next(ctx context.Context) (int64, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	id, err := a.counter.Incr(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrAllocatorUnavailable, err)
	}

	if id <= 0 {
		return 0, fmt.Errorf("%w: counter returned non-positive id %d", ErrAllocatorUnavailable, id)
	}

	return id, nil
}
