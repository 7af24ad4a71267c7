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
	"sync"
	"time"

	"github.com/vogo/vogo/vlog"
)

// clickRecorder applies cache-hit click increments in the background.
// Record never blocks: when the queue is full the click is dropped and logged.
type clickRecorder struct {
	repo    LinkRepository
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	in     chan string
	done   chan struct{}
}

func newClickRecorder(repo LinkRepository, queueSize int, timeout time.Duration) *clickRecorder {
	c := &clickRecorder{
		repo:    repo,
		timeout: timeout,
		in:      make(chan string, queueSize),
		done:    make(chan struct{}),
	}

	go c.run()

	return c
}

func (c *clickRecorder) Record(code string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		vlog.Warnf("click recorder closed, dropped click, code:%s", code)
		return
	}

	select {
	case c.in <- code:
	default:
		vlog.Warnf("click queue full, dropped click, code:%s", code)
	}
}

func (c *clickRecorder) run() {
	defer close(c.done)

	for code := range c.in {
		c.flush(code)
	}
}

func (c *clickRecorder) flush(code string) {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.repo.IncrClicks(ctx, code, 1); err != nil {
		vlog.Errorf("record click failed, code:%s, err: %v", code, err)
	}
}

// Close stops accepting clicks and waits for queued ones to be applied.
func (c *clickRecorder) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.in)
	c.mu.Unlock()

	<-c.done
}
