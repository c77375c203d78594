// Copyright ©2024 The gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixing

import (
	"runtime"
	"sync"
)

// runParallel calls fn(i) for every i in [0, n), dispatching across
// runtime.GOMAXPROCS(0) worker goroutines that pull instance indices off
// a shared channel. Because per-instance cost varies with niter, this
// gives dynamic work-stealing for free: a worker that finishes early
// simply pulls the next index rather than sitting idle on a fixed
// partition, in the spirit of the teacher's fd.jacobianConcurrent job
// channel, generalized from matrix columns to batch instances.
//
// fn must touch only buffers partitioned by i; it must not write S or
// Snrms. Within a single call to fn, all work is single-threaded and
// synchronous — the W = Vᵀ S invariant is not preserved under concurrent
// updates to different coordinates of the same instance.
func runParallel(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	nWorkers := runtime.GOMAXPROCS(0)
	if nWorkers > n {
		nWorkers = n
	}
	if nWorkers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(nWorkers)
	for w := 0; w < nWorkers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}
	wg.Wait()
}
