/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package stress runs a fixed number of workers draining a task queue,
// used to hammer a Synchronized heap from many goroutines in tests and
// benchmarks. It is a trimmed worker pool, not a general-purpose one: a
// stress run has a known task count up front, so there is no idle-worker
// aging or unbounded-growth fallback to manage.
package stress

import (
	"log"
	"runtime/debug"
	"sync"
)

// Pool runs tasks across a fixed set of worker goroutines.
type Pool struct {
	tasks   chan func()
	wg      sync.WaitGroup
	onPanic func(r interface{})
}

// New starts a Pool with the given number of workers. Workers exit once
// Close is called and the task channel drains.
func New(workers int) *Pool {
	p := &Pool{tasks: make(chan func(), workers*4)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.runWorker()
	}
	return p
}

// SetPanicHandler overrides the default log.Printf-and-continue behavior
// for panics recovered from submitted tasks.
func (p *Pool) SetPanicHandler(f func(r interface{})) {
	p.onPanic = f
}

// Go submits f to run on some worker. It blocks if all workers are busy
// and the queue is full — a stress run wants backpressure, not an
// ever-growing goroutine count.
func (p *Pool) Go(f func()) {
	p.tasks <- f
}

// Close stops accepting new tasks and waits for all submitted tasks to
// finish.
func (p *Pool) Close() {
	close(p.tasks)
	p.wg.Wait()
}

func (p *Pool) runWorker() {
	defer p.wg.Done()
	for f := range p.tasks {
		p.runTask(f)
	}
}

func (p *Pool) runTask(f func()) {
	defer func() {
		if r := recover(); r != nil {
			if p.onPanic != nil {
				p.onPanic(r)
			} else {
				log.Printf("stress: panic in pool: %v: %s", r, debug.Stack())
			}
		}
	}()
	f()
}
